package disk

import (
	"fmt"
	"io"
	"sync"

	"github.com/dsnet/golib/memfile"
	"github.com/karthik-ir/bustub/common"
	"github.com/karthik-ir/bustub/types"
)

// VirtualDiskManagerImpl is the on memory implementation of DiskManager
type VirtualDiskManagerImpl struct {
	db               *memfile.File
	fileName         string
	nextPageID       types.PageID
	numWrites        uint64
	size             int64
	dbFileMutex      *sync.Mutex
	reusableSpaceIDs []types.PageID
	spaceIDConvMap   map[types.PageID]types.PageID
	deallocedIDMap   map[types.PageID]bool
}

func NewVirtualDiskManagerImpl(dbFilename string) DiskManager {
	file := memfile.New(make([]byte, 0))

	return &VirtualDiskManagerImpl{file, dbFilename, types.PageID(0), 0, 0, new(sync.Mutex), make([]types.PageID, 0), make(map[types.PageID]types.PageID), make(map[types.PageID]bool)}
}

// ShutDown closes of the database file
func (d *VirtualDiskManagerImpl) ShutDown() {
	// do nothing
}

// spaceID(pageID) conversion for reuse of file space which is allocated to deallocated page
func (d *VirtualDiskManagerImpl) convToSpaceID(pageID types.PageID) (spaceID types.PageID) {
	if convedID, exist := d.spaceIDConvMap[pageID]; exist {
		return convedID
	}
	return pageID
}

// Write a page to the database file
func (d *VirtualDiskManagerImpl) WritePage(pageID types.PageID, pageData []byte) error {
	if !pageID.IsValid() {
		return types.InvalidPageIDErr
	}
	if len(pageData) != common.PageSize {
		return fmt.Errorf("WritePage: page data length %d is not page size", len(pageData))
	}

	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	if _, exist := d.deallocedIDMap[pageID]; exist {
		return fmt.Errorf("WritePage: page %d: %w", pageID, types.DeallocatedPageErr)
	}

	offset := int64(d.convToSpaceID(pageID)) * int64(common.PageSize)
	if _, err := d.db.WriteAt(pageData, offset); err != nil {
		return fmt.Errorf("WritePage: write of page %d failed: %w", pageID, err)
	}

	if offset+int64(len(pageData)) > d.size {
		d.size = offset + int64(len(pageData))
	}
	d.numWrites++

	return nil
}

// Read a page from the database file.
// A page which was allocated but is not written yet reads as zero cleared data.
func (d *VirtualDiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	if !pageID.IsValid() {
		return types.InvalidPageIDErr
	}
	if len(pageData) != common.PageSize {
		return fmt.Errorf("ReadPage: page data length %d is not page size", len(pageData))
	}

	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	if _, exist := d.deallocedIDMap[pageID]; exist {
		return fmt.Errorf("ReadPage: page %d: %w", pageID, types.DeallocatedPageErr)
	}

	offset := int64(d.convToSpaceID(pageID)) * int64(common.PageSize)
	bytesRead := 0
	if offset < d.size {
		var err error
		bytesRead, err = d.db.ReadAt(pageData, offset)
		if err != nil && err != io.EOF {
			return fmt.Errorf("ReadPage: I/O error while reading page %d: %w", pageID, err)
		}
	}

	for i := bytesRead; i < common.PageSize; i++ {
		pageData[i] = 0
	}
	return nil
}

// AllocatePage allocates a new page
// page ids are never reused but file space of deallocated pages is
func (d *VirtualDiskManagerImpl) AllocatePage() types.PageID {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	ret := d.nextPageID
	if len(d.reusableSpaceIDs) > 0 {
		reuseID := d.reusableSpaceIDs[0]
		d.reusableSpaceIDs = d.reusableSpaceIDs[1:]
		d.spaceIDConvMap[ret] = reuseID

		// stale data of the deallocated page must not be visible through the new id
		offset := int64(reuseID) * int64(common.PageSize)
		if offset < d.size {
			if _, err := d.db.WriteAt(make([]byte, common.PageSize), offset); err != nil {
				common.ShPrintf(common.ERROR, "VirtualDiskManagerImpl::AllocatePage zero clear of reused space %d failed: %v\n", reuseID, err)
			}
		}
	}
	d.nextPageID++

	return ret
}

// DeallocatePage deallocates page
func (d *VirtualDiskManagerImpl) DeallocatePage(pageID types.PageID) {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	if _, exist := d.deallocedIDMap[pageID]; exist || pageID >= d.nextPageID || !pageID.IsValid() {
		return
	}

	d.deallocedIDMap[pageID] = true
	if convedID, exist := d.spaceIDConvMap[pageID]; exist {
		d.reusableSpaceIDs = append(d.reusableSpaceIDs, convedID)
		delete(d.spaceIDConvMap, pageID)
	} else {
		d.reusableSpaceIDs = append(d.reusableSpaceIDs, pageID)
	}
}

// GetNumWrites returns the number of disk writes
func (d *VirtualDiskManagerImpl) GetNumWrites() uint64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.numWrites
}

// Size returns the size of the file in disk
func (d *VirtualDiskManagerImpl) Size() int64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.size
}

// ATTENTION: this method can be call after calling of Shutdown method
func (d *VirtualDiskManagerImpl) RemoveDBFile() {
	// do nothing
}
