// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/karthik-ir/bustub/common"
	"github.com/karthik-ir/bustub/types"
)

// DiskManagerImpl is the disk implementation of DiskManager
type DiskManagerImpl struct {
	db          *os.File
	fileName    string
	nextPageID  types.PageID
	numWrites   uint64
	size        int64
	dbFileMutex *sync.Mutex
}

// NewDiskManagerImpl returns a DiskManager instance
func NewDiskManagerImpl(dbFilename string) (DiskManager, error) {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("can't open db file %s: %w", dbFilename, err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("file info error %s: %w", dbFilename, err)
	}

	fileSize := fileInfo.Size()
	nPages := fileSize / common.PageSize
	if fileSize%common.PageSize != 0 {
		nPages++
	}

	return &DiskManagerImpl{file, dbFilename, types.PageID(nPages), 0, fileSize, new(sync.Mutex)}, nil
}

// ShutDown closes of the database file
func (d *DiskManagerImpl) ShutDown() {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	if err := d.db.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		common.ShPrintf(common.ERROR, "DiskManagerImpl::ShutDown close of db file failed: %v\n", err)
	}
}

// Write a page to the database file
func (d *DiskManagerImpl) WritePage(pageID types.PageID, pageData []byte) error {
	if !pageID.IsValid() {
		return types.InvalidPageIDErr
	}
	if len(pageData) != common.PageSize {
		return fmt.Errorf("WritePage: page data length %d is not page size", len(pageData))
	}

	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * int64(common.PageSize)
	bytesWritten, err := d.db.WriteAt(pageData, offset)
	if err != nil {
		return fmt.Errorf("WritePage: write of page %d failed: %w", pageID, err)
	}
	if bytesWritten != common.PageSize {
		return fmt.Errorf("WritePage: bytes written %d not equals page size", bytesWritten)
	}

	if offset+int64(bytesWritten) > d.size {
		d.size = offset + int64(bytesWritten)
	}
	d.numWrites++

	if err = d.db.Sync(); err != nil {
		return fmt.Errorf("WritePage: sync of page %d failed: %w", pageID, err)
	}
	return nil
}

// Read a page from the database file.
// A page which was allocated but is not written yet reads as zero cleared data.
func (d *DiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	if !pageID.IsValid() {
		return types.InvalidPageIDErr
	}
	if len(pageData) != common.PageSize {
		return fmt.Errorf("ReadPage: page data length %d is not page size", len(pageData))
	}

	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * int64(common.PageSize)
	bytesRead, err := d.db.ReadAt(pageData, offset)
	if err != nil && err != io.EOF {
		return fmt.Errorf("ReadPage: I/O error while reading page %d: %w", pageID, err)
	}

	for i := bytesRead; i < common.PageSize; i++ {
		pageData[i] = 0
	}
	return nil
}

// AllocatePage allocates a new page
// For now just keep an increasing counter
func (d *DiskManagerImpl) AllocatePage() types.PageID {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	ret := d.nextPageID
	d.nextPageID++
	return ret
}

// DeallocatePage deallocates page
// Need bitmap in header page for tracking pages
// This does not actually need to do anything for now.
func (d *DiskManagerImpl) DeallocatePage(pageID types.PageID) {}

// GetNumWrites returns the number of disk writes
func (d *DiskManagerImpl) GetNumWrites() uint64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.numWrites
}

// Size returns the size of the file in disk
func (d *DiskManagerImpl) Size() int64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.size
}

// ATTENTION: this method can be call after calling of Shutdown method
func (d *DiskManagerImpl) RemoveDBFile() {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	if err := os.Remove(d.fileName); err != nil && !errors.Is(err, os.ErrNotExist) {
		common.ShPrintf(common.ERROR, "DiskManagerImpl::RemoveDBFile remove of %s failed: %v\n", d.fileName, err)
	}
}
