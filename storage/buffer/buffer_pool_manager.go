// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/devlights/gomy/output"
	"github.com/golang-collections/collections/queue"
	"github.com/karthik-ir/bustub/common"
	"github.com/karthik-ir/bustub/errors"
	"github.com/karthik-ir/bustub/storage/disk"
	"github.com/karthik-ir/bustub/storage/page"
	"github.com/karthik-ir/bustub/types"
	"github.com/ncw/directio"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const PoolExhaustedErr = errors.Error("all frames are pinned. no frame can be cached out.")
const PageNotResidentErr = errors.Error("page is not resident in buffer pool.")
const PageInUseErr = errors.Error("page is pinned and can't be deleted.")
const InvalidFrameIDErr = errors.Error("frame id is out of range of buffer pool.")

// BufferPoolManager represents the buffer pool manager
type BufferPoolManager struct {
	diskManager disk.DiskManager
	pages       []*page.Page // index is FrameID
	replacer    *ClockReplacer
	freeList    *queue.Queue // FrameIDs which hold no page
	pageTable   map[types.PageID]FrameID
	mutex       *deadlock.Mutex
}

// FetchPage fetches the requested page from the buffer pool.
// returned page is pinned and caller must call UnpinPage after use.
func (b *BufferPoolManager) FetchPage(pageID types.PageID) (*page.Page, error) {
	if !pageID.IsValid() {
		return nil, types.InvalidPageIDErr
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	// if it is on buffer pool return it
	if frameID, ok := b.pageTable[pageID]; ok {
		pg := b.pages[frameID]
		pg.IncPinCount()
		b.replacer.Pin(frameID)
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG_INFO, "FetchPage: PageId=%d PinCount=%d\n", pg.GetPageId(), pg.PinCount())
		}
		return pg, nil
	}

	frameID, err := b.acquireFrame(pageID)
	if err != nil {
		return nil, err
	}

	pg := b.pages[frameID]
	if common.EnableDebug {
		common.ShPrintf(common.CACHE_OUT_IN_INFO, "BPM::FetchPage Cache in occurs! requested pageId:%d frame:%d\n", pageID, frameID)
	}
	data := pg.Data()
	if err := b.diskManager.ReadPage(pageID, data[:]); err != nil {
		b.releaseFrame(frameID)
		return nil, fmt.Errorf("FetchPage: read of page %d failed: %w", pageID, err)
	}

	pg.SetPageId(pageID)
	pg.SetPinCount(1)
	pg.SetIsDirty(false)
	b.pageTable[pageID] = frameID

	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO, "FetchPage: PageId=%d PinCount=%d\n", pg.GetPageId(), pg.PinCount())
	}
	return pg, nil
}

// UnpinPage unpins the target page from the buffer pool.
// isDirty only sets dirty flag. it never clears the flag.
// unpinning a page whose pin count is already zero has no effect.
func (b *BufferPoolManager) UnpinPage(pageID types.PageID, isDirty bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		if common.EnableDebug {
			common.ShPrintf(common.DEBUG_INFO, "UnpinPage: could not find page! PageId=%d\n", pageID)
		}
		return PageNotResidentErr
	}

	pg := b.pages[frameID]
	if !pg.DecPinCount() {
		return nil
	}
	if isDirty {
		pg.SetIsDirty(true)
	}
	if pg.PinCount() == 0 {
		b.replacer.Unpin(frameID)
	}

	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO, "UnpinPage: PageId=%d PinCount=%d\n", pg.GetPageId(), pg.PinCount())
	}
	return nil
}

// FlushPage Flushes the target page to disk.
// pin count of the page is not changed.
func (b *BufferPoolManager) FlushPage(pageID types.PageID) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.flushPageLocked(pageID)
}

func (b *BufferPoolManager) flushPageLocked(pageID types.PageID) error {
	frameID, ok := b.pageTable[pageID]
	if !ok {
		return PageNotResidentErr
	}

	pg := b.pages[frameID]
	data := pg.Data()
	if err := b.diskManager.WritePage(pageID, data[:]); err != nil {
		return fmt.Errorf("FlushPage: write of page %d failed: %w", pageID, err)
	}
	pg.SetIsDirty(false)
	return nil
}

// FlushAllPages flushes all the pages in the buffer pool to disk.
// pages are written in ascending page id order and it stops at the first failure.
func (b *BufferPoolManager) FlushAllPages() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.flushPagesLocked(func(*page.Page) bool { return true })
}

// FlushAllDirtyPages flushes all dirty pages in the buffer pool to disk.
func (b *BufferPoolManager) FlushAllDirtyPages() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.flushPagesLocked((*page.Page).IsDirty)
}

func (b *BufferPoolManager) flushPagesLocked(filter func(*page.Page) bool) error {
	pageIDs := maps.Keys(b.pageTable)
	slices.Sort(pageIDs)

	for _, pageID := range pageIDs {
		if !filter(b.pages[b.pageTable[pageID]]) {
			continue
		}
		if err := b.flushPageLocked(pageID); err != nil {
			return err
		}
	}
	return nil
}

// NewPage allocates a new page in the buffer pool with the disk manager help.
// page id is allocated only after a frame is secured.
func (b *BufferPoolManager) NewPage() (*page.Page, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, err := b.acquireFrame(types.InvalidPageID)
	if err != nil {
		return nil, err
	}

	// allocates new page
	pageID := b.diskManager.AllocatePage()
	common.SH_Assert(pageID.IsValid(), fmt.Sprintf("BPM::NewPage disk manager returned invalid page id %d", pageID))

	pg := b.pages[frameID]
	pg.ResetMemory()
	pg.SetPageId(pageID)
	pg.SetPinCount(1)
	pg.SetIsDirty(false)
	b.pageTable[pageID] = frameID

	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO, "NewPage: returned pageID: %d\n", pageID)
	}
	return pg, nil
}

// DeletePage deletes a page from the buffer pool and deallocates it on disk.
// deleting a page which is not resident succeeds without doing anything.
func (b *BufferPoolManager) DeletePage(pageID types.PageID) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return nil
	}

	pg := b.pages[frameID]
	if pg.PinCount() > 0 {
		return PageInUseErr
	}

	b.diskManager.DeallocatePage(pageID)
	delete(b.pageTable, pageID)
	b.replacer.Pin(frameID)
	b.releaseFrame(frameID)

	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO, "DeletePage: page=%d is removed. frame=%d\n", pageID, frameID)
	}
	return nil
}

// acquireFrame returns a frame which holds no page.
// free list is used first. otherwise a victim is cached out.
// requestedPageID is used only for logging.
func (b *BufferPoolManager) acquireFrame(requestedPageID types.PageID) (FrameID, error) {
	if b.freeList.Len() > 0 {
		return b.freeList.Dequeue().(FrameID), nil
	}

	frameID, ok := b.replacer.Victim()
	if !ok {
		if common.IsLogLevelActive(common.BUFFER_INTERNAL_STATE) {
			output.Stdoutl("BPM::acquireFrame ", b.bufferUsageStateLocked())
		}
		return 0, PoolExhaustedErr
	}

	// remove page from current frame
	victim := b.pages[frameID]
	common.SH_Assert(victim.PinCount() == 0,
		fmt.Sprintf("BPM::acquireFrame pin count of page to be cache out must be zero!!!. pageId:%d PinCount:%d", victim.GetPageId(), victim.PinCount()))

	if common.EnableDebug {
		common.ShPrintf(common.CACHE_OUT_IN_INFO, "BPM::acquireFrame Cache out occurs! pageId:%d requested pageId:%d\n", victim.GetPageId(), requestedPageID)
	}
	if victim.IsDirty() {
		victim.RLatch()
		data := victim.Data()
		err := b.diskManager.WritePage(victim.GetPageId(), data[:])
		victim.RUnlatch()
		if err != nil {
			// victim stays resident and evictable
			b.replacer.Unpin(frameID)
			return 0, fmt.Errorf("write back of page %d failed: %w", victim.GetPageId(), err)
		}
		victim.SetIsDirty(false)
	}

	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO, "acquireFrame: page=%d is removed from pageTable.\n", victim.GetPageId())
	}
	delete(b.pageTable, victim.GetPageId())
	victim.SetPageId(types.InvalidPageID)
	return frameID, nil
}

// releaseFrame clears metadata of the frame and returns it to free list.
// caller must have removed the page table entry.
func (b *BufferPoolManager) releaseFrame(frameID FrameID) {
	pg := b.pages[frameID]
	pg.SetPageId(types.InvalidPageID)
	pg.SetPinCount(0)
	pg.SetIsDirty(false)
	b.freeList.Enqueue(frameID)
}

// GetPoolSize returns the number of frames
func (b *BufferPoolManager) GetPoolSize() uint32 {
	return uint32(len(b.pages))
}

// FrameAt returns the frame which is identified by frameID.
// returned page is not pinned. it is meant for inspection and its metadata
// can be changed by concurrent FetchPage/NewPage/DeletePage calls.
func (b *BufferPoolManager) FrameAt(frameID FrameID) (*page.Page, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if int(frameID) >= len(b.pages) {
		return nil, InvalidFrameIDErr
	}
	return b.pages[frameID], nil
}

func (b *BufferPoolManager) PrintReplacerInternalState() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.replacer.PrintList()
}

func (b *BufferPoolManager) PrintBufferUsageState(callerAdditionalInfo string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	output.Stdoutl(fmt.Sprintf("BPM::PrintBufferUsageState %s ", callerAdditionalInfo), b.bufferUsageStateLocked())
}

// bufferUsageStateLocked formats pinned pages as (pageID,pinCount) pairs in page id order
func (b *BufferPoolManager) bufferUsageStateLocked() string {
	var pinnedIDs []types.PageID
	for pageID, frameID := range b.pageTable {
		if !b.replacer.isContain(frameID) {
			// when page is Pinned (= not allocated on frames in list of replacer)
			pinnedIDs = append(pinnedIDs, pageID)
		}
	}
	slices.Sort(pinnedIDs)

	var sb strings.Builder
	fmt.Fprintf(&sb, "frames:%d resident:%d free:%d evictable:%d pinned:%s ",
		len(b.pages), len(b.pageTable), b.freeList.Len(), b.replacer.Size(),
		humanize.IBytes(uint64(len(pinnedIDs))*common.PageSize))
	for _, pageID := range pinnedIDs {
		fmt.Fprintf(&sb, "(%d,%d)-", pageID, b.pages[b.pageTable[pageID]].PinCount())
	}
	return sb.String()
}

// NewBufferPoolManager returns a empty buffer pool manager
func NewBufferPoolManager(poolSize uint32, diskManager disk.DiskManager) *BufferPoolManager {
	common.SH_Assert(poolSize > 0, "BPM::NewBufferPoolManager pool size must be positive")

	freeList := queue.New()
	pages := make([]*page.Page, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		block := directio.AlignedBlock(common.PageSize)
		pages[i] = page.NewFrame((*[common.PageSize]byte)(block))
		freeList.Enqueue(FrameID(i))
	}

	replacer := NewClockReplacer(poolSize)
	return &BufferPoolManager{diskManager, pages, replacer, freeList, make(map[types.PageID]FrameID), new(deadlock.Mutex)}
}
