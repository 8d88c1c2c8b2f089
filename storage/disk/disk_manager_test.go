package disk

import (
	"path/filepath"
	"testing"

	"github.com/karthik-ir/bustub/common"
	testingpkg "github.com/karthik-ir/bustub/testing/testing_assert"
	"github.com/karthik-ir/bustub/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileDiskManager(t *testing.T) DiskManager {
	t.Helper()
	dm, err := NewDiskManagerImpl(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(dm.ShutDown)
	return dm
}

func newVirtualDiskManager(t *testing.T) DiskManager {
	t.Helper()
	dm := NewVirtualDiskManagerImpl("test.db")
	t.Cleanup(dm.ShutDown)
	return dm
}

func forEachDiskManager(t *testing.T, fn func(t *testing.T, dm DiskManager)) {
	t.Run("File", func(t *testing.T) { fn(t, newFileDiskManager(t)) })
	t.Run("Virtual", func(t *testing.T) { fn(t, newVirtualDiskManager(t)) })
}

func TestReadWritePage(t *testing.T) {
	forEachDiskManager(t, func(t *testing.T, dm DiskManager) {
		data := make([]byte, common.PageSize)
		buffer := make([]byte, common.PageSize)

		copy(data, "A test string.")

		testingpkg.Ok(t, dm.ReadPage(0, buffer)) // tolerate empty read
		testingpkg.Ok(t, dm.WritePage(0, data))
		testingpkg.Ok(t, dm.ReadPage(0, buffer))
		testingpkg.Equals(t, data, buffer)

		memset(buffer, 0)
		copy(data, "Another test string.")

		testingpkg.Ok(t, dm.WritePage(5, data))
		testingpkg.Ok(t, dm.ReadPage(5, buffer))
		testingpkg.Equals(t, data, buffer)

		testingpkg.Equals(t, uint64(2), dm.GetNumWrites())
		testingpkg.Equals(t, int64(6*common.PageSize), dm.Size())
	})
}

func TestReadUnwrittenPageIsZeroCleared(t *testing.T) {
	forEachDiskManager(t, func(t *testing.T, dm DiskManager) {
		data := make([]byte, common.PageSize)
		copy(data, "page three")
		testingpkg.Ok(t, dm.WritePage(3, data))

		buffer := make([]byte, common.PageSize)
		for i := range buffer {
			buffer[i] = 0xff
		}
		// page 1 is a hole in the file, page 9 is past its end
		testingpkg.Ok(t, dm.ReadPage(1, buffer))
		testingpkg.Equals(t, make([]byte, common.PageSize), buffer)
		testingpkg.Ok(t, dm.ReadPage(9, buffer))
		testingpkg.Equals(t, make([]byte, common.PageSize), buffer)
	})
}

func TestInvalidArguments(t *testing.T) {
	forEachDiskManager(t, func(t *testing.T, dm DiskManager) {
		buffer := make([]byte, common.PageSize)
		testingpkg.ErrIs(t, dm.ReadPage(types.InvalidPageID, buffer), types.InvalidPageIDErr)
		testingpkg.ErrIs(t, dm.WritePage(types.InvalidPageID, buffer), types.InvalidPageIDErr)
		testingpkg.Nok(t, dm.WritePage(0, buffer[:10]))
		testingpkg.Nok(t, dm.ReadPage(0, buffer[:10]))
	})
}

func TestAllocatePageIsMonotonic(t *testing.T) {
	forEachDiskManager(t, func(t *testing.T, dm DiskManager) {
		for i := 0; i < 5; i++ {
			testingpkg.Equals(t, types.PageID(i), dm.AllocatePage())
		}
		dm.DeallocatePage(2)
		testingpkg.Equals(t, types.PageID(5), dm.AllocatePage())
	})
}

func TestVirtualDeallocatedPage(t *testing.T) {
	dm := newVirtualDiskManager(t)

	data := make([]byte, common.PageSize)
	copy(data, "to be deallocated")
	id := dm.AllocatePage()
	testingpkg.Ok(t, dm.WritePage(id, data))

	dm.DeallocatePage(id)
	// second deallocation has no effect
	dm.DeallocatePage(id)

	buffer := make([]byte, common.PageSize)
	testingpkg.ErrIs(t, dm.ReadPage(id, buffer), types.DeallocatedPageErr)
	testingpkg.ErrIs(t, dm.WritePage(id, data), types.DeallocatedPageErr)

	// new page reuses the file space but must not expose old contents
	sizeBefore := dm.Size()
	newID := dm.AllocatePage()
	assert.NotEqual(t, id, newID)
	testingpkg.Ok(t, dm.ReadPage(newID, buffer))
	testingpkg.Equals(t, make([]byte, common.PageSize), buffer)

	copy(data, "reused space")
	testingpkg.Ok(t, dm.WritePage(newID, data))
	testingpkg.Ok(t, dm.ReadPage(newID, buffer))
	testingpkg.Equals(t, data, buffer)
	testingpkg.Equals(t, sizeBefore, dm.Size())
}

func TestFileDiskManagerReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	dm, err := NewDiskManagerImpl(path)
	require.NoError(t, err)
	data := make([]byte, common.PageSize)
	copy(data, "persisted")
	for i := 0; i < 3; i++ {
		testingpkg.Equals(t, types.PageID(i), dm.AllocatePage())
		testingpkg.Ok(t, dm.WritePage(types.PageID(i), data))
	}
	dm.ShutDown()

	dm, err = NewDiskManagerImpl(path)
	require.NoError(t, err)
	defer dm.ShutDown()

	testingpkg.Equals(t, types.PageID(3), dm.AllocatePage())
	buffer := make([]byte, common.PageSize)
	testingpkg.Ok(t, dm.ReadPage(2, buffer))
	testingpkg.Equals(t, data, buffer)
}

func TestDiskManagerTest(t *testing.T) {
	common.TempSuppressOnMemStorageMutex.Lock()
	defer common.TempSuppressOnMemStorageMutex.Unlock()

	for _, suppress := range []bool{false, true} {
		common.TempSuppressOnMemStorage = suppress
		dm := NewDiskManagerTest()
		data := make([]byte, common.PageSize)
		copy(data, "temp")
		testingpkg.Ok(t, dm.WritePage(dm.AllocatePage(), data))
		dm.ShutDown()
	}
	common.TempSuppressOnMemStorage = false
}

func memset(buffer []byte, value int) {
	for i := range buffer {
		buffer[i] = byte(value)
	}
}
