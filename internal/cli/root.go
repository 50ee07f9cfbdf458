package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitMiss         = 1
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:           "kvcache",
	Short:         "Inspect and edit a persisted kvcache namespace",
	Long:          "kvcache reads and writes entries of a size-bounded cache whose snapshot lives in a file, sqlite or redis store.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagBackend   string
	flagDSN       string
	flagNamespace string
	flagCodec     string
	flagLogLevel  string
	flagSize      int
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// errRuntime marks failures that happen after arguments were accepted.
var errRuntime = errors.New("runtime error")

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBackend, "backend", "", "storage backend: file, sqlite or redis (env KVCACHE_BACKEND)")
	pf.StringVar(&flagDSN, "dsn", "", "directory, database path or redis:// URL (env KVCACHE_DSN)")
	pf.StringVarP(&flagNamespace, "namespace", "n", "", "cache namespace (env KVCACHE_NAMESPACE)")
	pf.StringVar(&flagCodec, "codec", "", "snapshot codec: json, msgpack, cbor or protobuf (env KVCACHE_CODEC)")
	pf.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (env KVCACHE_LOG_LEVEL)")
	pf.IntVar(&flagSize, "size", 0, "maximum number of entries (env KVCACHE_SIZE)")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command and returns an exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, os.Args[1:])
}

func execute(ctx context.Context, args []string) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "kvcache:", err)
		if errors.Is(err, errRuntime) {
			return ExitRuntimeError
		}
		return ExitUsageError
	}
	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print kvcache version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kvcache version %s\n", version)
	},
}
