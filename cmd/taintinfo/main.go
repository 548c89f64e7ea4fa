// Package main is the entrypoint for the taintinfo CLI.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/taintinfo-labs/taintinfo/internal/cli"
)

// Version information (set at build time via -ldflags)
var (
	version   = ""
	gitCommit = ""
	buildDate = ""
)

func main() {
	cli.SetVersionInfo(version, gitCommit, buildDate)
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			if isOutOfMemory(r) {
				fmt.Fprintln(os.Stderr, "taintinfo: out of memory")
				code = cli.ExitMemAlloc
				return
			}
			panic(r)
		}
	}()
	return cli.New().Execute()
}

// isOutOfMemory reports whether a recovered panic came from the runtime
// failing an allocation. Full heap exhaustion aborts the process before
// any handler runs, but oversized single allocations do surface as
// recoverable runtime errors.
func isOutOfMemory(r interface{}) bool {
	err, ok := r.(runtime.Error)
	return ok && strings.Contains(err.Error(), "out of memory")
}
