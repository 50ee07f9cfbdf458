package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/kvcache"
	"github.com/unkn0wn-root/kvcache/codec"
	"github.com/unkn0wn-root/kvcache/internal/config"
	kvzap "github.com/unkn0wn-root/kvcache/log/zap"
	"github.com/unkn0wn-root/kvcache/storage"
	"github.com/unkn0wn-root/kvcache/storage/file"
	"github.com/unkn0wn-root/kvcache/storage/redis"
	"github.com/unkn0wn-root/kvcache/storage/sqlite"
)

const redisPrefix = "kvcache:"

// resolveConfig reads the environment and lets non-empty flags override it.
func resolveConfig() (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagDSN != "" {
		cfg.DSN = flagDSN
	}
	if flagNamespace != "" {
		cfg.Namespace = flagNamespace
	}
	if flagCodec != "" {
		cfg.Codec = flagCodec
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagSize != 0 {
		cfg.Size = flagSize
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

func openStorage(cfg config.Config) (storage.Storage, error) {
	switch cfg.Backend {
	case "file":
		return file.Open(cfg.DSN)
	case "sqlite":
		return sqlite.Open(cfg.DSN)
	case "redis":
		return redis.Dial(cfg.DSN, redisPrefix)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func newCodec(name string) (codec.Codec[any], error) {
	switch name {
	case "json":
		return codec.JSON[any]{}, nil
	case "msgpack":
		return codec.Msgpack[any]{}, nil
	case "cbor":
		return codec.NewCBOR[any](false)
	case "protobuf":
		return codec.Protobuf{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// withCache opens the configured cache, runs fn and releases everything.
// Failures after the config is accepted are reported as runtime errors.
func withCache(ctx context.Context, fn func(*kvcache.Cache[any]) error) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("%w: open %s storage: %v", errRuntime, cfg.Backend, err)
	}
	cd, err := newCodec(cfg.Codec)
	if err != nil {
		_ = st.Close(ctx)
		return err
	}
	c, err := kvcache.New(ctx, kvcache.Options[any]{
		Size:         cfg.Size,
		Namespace:    cfg.Namespace,
		Storage:      st,
		Codec:        cd,
		CloseStorage: true,
		Logger:       kvzap.New(logger),
	})
	if err != nil {
		_ = st.Close(ctx)
		return fmt.Errorf("%w: %v", errRuntime, err)
	}
	defer func() { _ = c.Close(ctx) }()

	if err := fn(c); err != nil {
		return fmt.Errorf("%w: %v", errRuntime, err)
	}
	return nil
}
