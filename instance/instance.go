package instance

import (
	"fmt"

	"github.com/karthik-ir/bustub/common"
	"github.com/karthik-ir/bustub/storage/buffer"
	"github.com/karthik-ir/bustub/storage/disk"
)

// BustubInstance bundles a disk manager and the buffer pool manager on top of it
type BustubInstance struct {
	diskManager disk.DiskManager
	bpm         *buffer.BufferPoolManager
}

func NewBustubInstanceForTesting() *BustubInstance {
	diskManager := disk.NewDiskManagerTest()
	bpm := buffer.NewBufferPoolManager(common.BufferPoolMaxFrameNumForTest, diskManager)
	return &BustubInstance{diskManager, bpm}
}

// NewBustubInstance opens dbName+".db" and creates a buffer pool over it.
// bpoolSize: usable buffer size in frame(=page) num
func NewBustubInstance(dbName string, bpoolSize int) (*BustubInstance, error) {
	var diskManager disk.DiskManager
	if common.EnableOnMemStorage && !common.TempSuppressOnMemStorage {
		diskManager = disk.NewVirtualDiskManagerImpl(dbName + ".db")
	} else {
		var err error
		diskManager, err = disk.NewDiskManagerImpl(dbName + ".db")
		if err != nil {
			return nil, err
		}
	}
	bpm := buffer.NewBufferPoolManager(uint32(bpoolSize), diskManager)

	return &BustubInstance{diskManager, bpm}, nil
}

func (bi *BustubInstance) GetDiskManager() disk.DiskManager {
	return bi.diskManager
}

func (bi *BustubInstance) GetBufferPoolManager() *buffer.BufferPoolManager {
	return bi.bpm
}

// Shutdown flushes all resident pages and closes the db file.
// db file is closed even when the flush fails.
func (bi *BustubInstance) Shutdown(isRemoveFiles bool) error {
	flushErr := bi.bpm.FlushAllPages()
	if flushErr != nil {
		common.ShPrintf(common.ERROR, "Shutdown: flush of buffer pool failed: %v\n", flushErr)
	}

	bi.diskManager.ShutDown()
	if isRemoveFiles {
		bi.diskManager.RemoveDBFile()
	}

	if flushErr != nil {
		return fmt.Errorf("Shutdown: %w", flushErr)
	}
	return nil
}
