package common

import (
	"testing"

	"github.com/sasha-s/go-deadlock"
	testingpkg "github.com/karthik-ir/bustub/testing/testing_assert"
)

func TestSHAssert(t *testing.T) {
	SH_Assert(true, "must not panic")

	defer func() {
		r := recover()
		testingpkg.Equals(t, "broken invariant", r)
	}()
	SH_Assert(false, "broken invariant")
	t.Fatal("SH_Assert(false, ...) must panic")
}

func TestRWLatchDummy(t *testing.T) {
	latch := NewRWLatchDummy()
	latch.RLock()
	latch.RLock()
	latch.RUnlock()
	latch.RUnlock()
	latch.WLock()
	latch.WUnlock()

	defer func() {
		testingpkg.Assert(t, recover() != nil, "second WLock must panic")
	}()
	latch.WLock()
	latch.WLock()
}

func TestRWLatch(t *testing.T) {
	latch := NewRWLatch()
	latch.RLock()
	latch.RLock()
	latch.RUnlock()
	latch.RUnlock()
	latch.WLock()
	latch.WUnlock()
}

func TestLogLevel(t *testing.T) {
	testingpkg.Assert(t, IsLogLevelActive(ERROR), "ERROR is enabled by default")
	testingpkg.AssertFalse(t, IsLogLevelActive(DEBUG_INFO_DETAIL), "DEBUG_INFO_DETAIL is disabled by default")
}

func TestDeadlockDetectionFollowsDebugFlag(t *testing.T) {
	testingpkg.Equals(t, !EnableDebug, deadlock.Opts.Disable)
}
