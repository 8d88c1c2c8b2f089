// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"sync/atomic"

	"github.com/karthik-ir/bustub/common"
	"github.com/karthik-ir/bustub/types"
)

/**
 * Page is the basic unit of storage within the database system. Page provides a wrapper for actual data pages being
 * held in main memory. Page also contains book-keeping information that is used by the buffer pool manager, e.g.
 * pin count, dirty flag, page id, etc.
 */
type Page struct {
	id       types.PageID           // idenfies the page. It is used to find the offset of the page on disk
	pinCount int32                  // counts how many goroutines are acessing it
	isDirty  bool                   // the page was modified but not flushed
	data     *[common.PageSize]byte // bytes stored in disk
	rwlatch_ common.ReaderWriterLatch
}

// IncPinCount increments pin count
func (p *Page) IncPinCount() {
	atomic.AddInt32(&p.pinCount, 1)
}

// DecPinCount decrements pin count. It never goes below zero and
// reports whether a pin was actually released.
func (p *Page) DecPinCount() bool {
	for {
		cur := atomic.LoadInt32(&p.pinCount)
		if cur <= 0 {
			return false
		}
		if atomic.CompareAndSwapInt32(&p.pinCount, cur, cur-1) {
			return true
		}
	}
}

// PinCount returns the pin count
func (p *Page) PinCount() int32 {
	return atomic.LoadInt32(&p.pinCount)
}

func (p *Page) SetPinCount(pinCount int32) {
	common.SH_Assert(pinCount >= 0, "Page::SetPinCount pin count must not be negative")
	atomic.StoreInt32(&p.pinCount, pinCount)
}

// GetPageId returns the page id
func (p *Page) GetPageId() types.PageID {
	return p.id
}

func (p *Page) SetPageId(id types.PageID) {
	p.id = id
}

// Data returns the data of the page
func (p *Page) Data() *[common.PageSize]byte {
	return p.data
}

// SetIsDirty sets the isDirty bit
func (p *Page) SetIsDirty(isDirty bool) {
	p.isDirty = isDirty
}

// IsDirty check if the page is dirty
func (p *Page) IsDirty() bool {
	return p.isDirty
}

// Copy copies data to the page's data
func (p *Page) Copy(offset uint32, data []byte) {
	copy(p.data[offset:], data)
}

// ResetMemory zero clears the page's data
func (p *Page) ResetMemory() {
	for i := range p.data {
		p.data[i] = 0
	}
}

/** Acquire the page write latch. */
func (p *Page) WLatch() {
	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO_DETAIL, "WLatch: pageId=%d\n", p.GetPageId())
	}
	p.rwlatch_.WLock()
}

/** Release the page write latch. */
func (p *Page) WUnlatch() {
	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO_DETAIL, "WUnlatch: pageId=%d\n", p.GetPageId())
	}
	p.rwlatch_.WUnlock()
}

/** Acquire the page read latch. */
func (p *Page) RLatch() {
	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO_DETAIL, "RLatch: pageId=%d\n", p.GetPageId())
	}
	p.rwlatch_.RLock()
}

/** Release the page read latch. */
func (p *Page) RUnlatch() {
	if common.EnableDebug {
		common.ShPrintf(common.DEBUG_INFO_DETAIL, "RUnlatch: pageId=%d\n", p.GetPageId())
	}
	p.rwlatch_.RUnlock()
}

// New creates a new pinned page
func New(id types.PageID, isDirty bool, data *[common.PageSize]byte) *Page {
	return &Page{id, int32(1), isDirty, data, common.NewRWLatch()}
}

// NewEmpty creates a new pinned page whose data is zero cleared
func NewEmpty(id types.PageID) *Page {
	return &Page{id, int32(1), false, &[common.PageSize]byte{}, common.NewRWLatch()}
}

// NewFrame creates an unused frame over data. It holds no page and no pin.
func NewFrame(data *[common.PageSize]byte) *Page {
	return &Page{types.InvalidPageID, int32(0), false, data, common.NewRWLatch()}
}
