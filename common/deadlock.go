package common

import "github.com/sasha-s/go-deadlock"

func init() {
	// deadlock detection of latches runs only on debug builds
	deadlock.Opts.Disable = !EnableDebug
}
