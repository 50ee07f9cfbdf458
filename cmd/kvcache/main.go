// Kvcache inspects and edits a persisted kvcache namespace.
//
// Usage:
//
//	kvcache set user 42 '{"name":"ada"}'   # composite key user_42
//	kvcache get user 42
//	kvcache get --default 0 hits           # fill on miss
//	kvcache rm user 42
//	kvcache dump
//
// Settings come from KVCACHE_* environment variables and can be overridden
// with flags; see kvcache --help.
package main

import (
	"os"

	"github.com/unkn0wn-root/kvcache/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
