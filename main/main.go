package main

import (
	"os"

	"github.com/karthik-ir/bustub/common"
	"github.com/karthik-ir/bustub/instance"
)

// this entry point runs a small eviction scenario on a buffer pool
// which has only two frames and prints its internal state.
func main() {
	if err := run(); err != nil {
		common.ShPrintf(common.FATAL, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	bi, err := instance.NewBustubInstance("demo", common.BufferPoolFrameNumForDemo)
	if err != nil {
		return err
	}
	bpm := bi.GetBufferPoolManager()
	dm := bi.GetDiskManager()

	page0, err := bpm.NewPage()
	if err != nil {
		return err
	}
	page0.Copy(0, []byte("Hello"))
	// a page handle is valid only while it is pinned. keep the id
	pageID0 := page0.GetPageId()
	page1, err := bpm.NewPage()
	if err != nil {
		return err
	}
	common.ShPrintf(common.INFO, "created pages %d and %d\n", pageID0, page1.GetPageId())
	bpm.PrintBufferUsageState("after two NewPage:")

	if err = bpm.UnpinPage(pageID0, true); err != nil {
		return err
	}
	bpm.PrintReplacerInternalState()

	// page 0 is the only evictable page. it is written back before its frame is reused
	page2, err := bpm.NewPage()
	if err != nil {
		return err
	}
	common.ShPrintf(common.INFO, "created page %d. disk writes so far: %d\n", page2.GetPageId(), dm.GetNumWrites())
	bpm.PrintBufferUsageState("after eviction:")

	if _, err = bpm.FetchPage(pageID0); err != nil {
		common.ShPrintf(common.INFO, "fetch of page %d failed as expected: %v\n", pageID0, err)
	}

	if err = bpm.UnpinPage(page1.GetPageId(), false); err != nil {
		return err
	}
	fetched, err := bpm.FetchPage(pageID0)
	if err != nil {
		return err
	}
	common.ShPrintf(common.INFO, "page %d read back: %s\n", pageID0, string(fetched.Data()[:len("Hello")]))
	bpm.PrintBufferUsageState("after fetch:")

	return bi.Shutdown(true)
}
