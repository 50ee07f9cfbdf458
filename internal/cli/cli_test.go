package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// resetFlags resets all package-level flag variables to their zero values.
func resetFlags() {
	flagBackend = ""
	flagDSN = ""
	flagNamespace = ""
	flagCodec = ""
	flagLogLevel = ""
	flagSize = 0
	flagDefault = ""
	getCmd.Flags().Lookup("default").Changed = false
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("KVCACHE_BACKEND", "file")
	t.Setenv("KVCACHE_DSN", dir)
	t.Setenv("KVCACHE_NAMESPACE", "test")
	t.Setenv("KVCACHE_SIZE", "30")
	t.Setenv("KVCACHE_CODEC", "json")
	t.Setenv("KVCACHE_LOG_LEVEL", "error")
	return dir
}

// run executes the command tree and returns exit code, stdout and stderr.
func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	resetFlags()
	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	code := execute(context.Background(), args)
	return code, strings.TrimSpace(out.String()), strings.TrimSpace(errb.String())
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	code, out, errs := run(t, args...)
	if code != ExitSuccess {
		t.Fatalf("%v: exit %d stderr %q", args, code, errs)
	}
	return out
}

func TestVersion(t *testing.T) {
	if out := mustRun(t, "version"); out != "kvcache version "+version {
		t.Fatalf("got %q", out)
	}
}

func TestSetGetCompositeKey(t *testing.T) {
	setupEnv(t)
	mustRun(t, "set", "user", "42", `{"name":"ada"}`)
	if out := mustRun(t, "get", "user", "42"); out != `{"name":"ada"}` {
		t.Fatalf("get=%q", out)
	}
	if out := mustRun(t, "dump"); out != `{"user_42":{"name":"ada"}}` {
		t.Fatalf("dump=%q", out)
	}
}

func TestGetMiss(t *testing.T) {
	setupEnv(t)
	code, out, errs := run(t, "get", "nope")
	if code != ExitMiss || out != "" || errs != "miss" {
		t.Fatalf("code=%d out=%q err=%q", code, out, errs)
	}
}

func TestGetDefaultFillsAndPersists(t *testing.T) {
	setupEnv(t)
	if out := mustRun(t, "get", "--default", "7", "hits"); out != "7" {
		t.Fatalf("get --default=%q", out)
	}
	if out := mustRun(t, "get", "hits"); out != "7" {
		t.Fatalf("second get=%q", out)
	}
	if out := mustRun(t, "size"); out != "1" {
		t.Fatalf("size=%q", out)
	}
}

func TestDumpOrderAndEviction(t *testing.T) {
	setupEnv(t)
	for _, kv := range [][]string{{"b", "1"}, {"a", "two"}, {"c", "true"}} {
		mustRun(t, "--size", "2", "set", kv[0], kv[1])
	}
	if out := mustRun(t, "dump"); out != `{"a":"two","c":true}` {
		t.Fatalf("dump=%q", out)
	}
}

func TestRemove(t *testing.T) {
	setupEnv(t)
	mustRun(t, "set", "x", "1")
	mustRun(t, "set", "y", "2")
	mustRun(t, "rm", "x")
	mustRun(t, "rm", "missing")
	if out := mustRun(t, "dump"); out != `{"y":2}` {
		t.Fatalf("dump=%q", out)
	}
}

func TestNamespacesAreIsolated(t *testing.T) {
	setupEnv(t)
	mustRun(t, "-n", "one", "set", "k", "1")
	if code, _, _ := run(t, "-n", "two", "get", "k"); code != ExitMiss {
		t.Fatalf("namespace two saw key from one (exit %d)", code)
	}
}

func TestSQLiteMsgpack(t *testing.T) {
	dir := setupEnv(t)
	db := filepath.Join(dir, "kv.db")
	flags := []string{"--backend", "sqlite", "--dsn", db, "--codec", "msgpack"}
	mustRun(t, append(flags, "set", "cfg", `{"debug":true,"level":3}`)...)
	if out := mustRun(t, append(flags, "get", "cfg")...); out != `{"debug":true,"level":3}` {
		t.Fatalf("get=%q", out)
	}
}

func TestCBORAndProtobufCodecs(t *testing.T) {
	for _, name := range []string{"cbor", "protobuf"} {
		t.Run(name, func(t *testing.T) {
			setupEnv(t)
			mustRun(t, "--codec", name, "set", "m", `{"ok":"yes"}`)
			if out := mustRun(t, "--codec", name, "get", "m"); out != `{"ok":"yes"}` {
				t.Fatalf("get=%q", out)
			}
		})
	}
}

func TestUsageErrors(t *testing.T) {
	setupEnv(t)
	cases := [][]string{
		{"get"},
		{"set", "only-key"},
		{"--backend", "memory", "size"},
		{"--codec", "xml", "size"},
		{"--log-level", "loud", "size"},
		{"dump", "extra"},
	}
	for _, args := range cases {
		if code, _, _ := run(t, args...); code != ExitUsageError {
			t.Errorf("%v: exit %d want %d", args, code, ExitUsageError)
		}
	}
}

func TestRuntimeError(t *testing.T) {
	setupEnv(t)
	code, _, errs := run(t, "--backend", "redis", "--dsn", "not-a-url", "size")
	if code != ExitRuntimeError {
		t.Fatalf("exit %d stderr %q", code, errs)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"42", float64(42)},
		{"true", true},
		{`"quoted"`, "quoted"},
		{"plain text", "plain text"},
		{`{"a":[1,"b"]}`, map[string]any{"a": []any{float64(1), "b"}}},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q)=%#v want %#v", tt.in, got, tt.want)
		}
	}
}

func TestKeyArg(t *testing.T) {
	if got := keyArg([]string{"a"}); got != "a" {
		t.Fatalf("single=%#v", got)
	}
	if got := keyArg([]string{"a", "b"}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("multi=%#v", got)
	}
}
