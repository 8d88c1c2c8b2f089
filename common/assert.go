package common

import (
	"runtime"

	"github.com/devlights/gomy/output"
)

// SH_Assert panics with msg when condition is false.
// On debug builds stacks of all goroutines are dumped before panicking.
func SH_Assert(condition bool, msg string) {
	if !condition {
		if EnableDebug {
			DumpGoroutineStacks()
		}
		panic(msg)
	}
}

// DumpGoroutineStacks prints stack traces of all goroutines to stdout.
// REFERENCES
//   - https://pkg.go.dev/runtime#Stack
func DumpGoroutineStacks() {
	buf := make([]byte, 1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}
	output.Stdoutl("=== stack-all   ", string(buf))
}
