// Package cli implements the kvcache command tree: reading, writing and
// inspecting a durable cache namespace from the shell.
package cli
