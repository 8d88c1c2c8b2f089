// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"os"

	"github.com/karthik-ir/bustub/common"
)

// DiskManagerTest is the disk implementation of DiskManager for testing purposes
type DiskManagerTest struct {
	path string
	DiskManager
}

// NewDiskManagerTest returns a DiskManager instance for testing purposes
func NewDiskManagerTest() DiskManager {
	if common.EnableOnMemStorage && !common.TempSuppressOnMemStorage {
		return &DiskManagerTest{"", NewVirtualDiskManagerImpl("bustub.db")}
	}

	// Retrieve a temporary path.
	f, err := os.CreateTemp("", "bustub.*.db")
	if err != nil {
		panic(err)
	}
	path := f.Name()
	f.Close()
	os.Remove(path)

	diskManager, err := NewDiskManagerImpl(path)
	if err != nil {
		panic(err)
	}
	return &DiskManagerTest{path, diskManager}
}

// ShutDown closes of the database file and removes it
func (d *DiskManagerTest) ShutDown() {
	d.DiskManager.ShutDown()
	if d.path != "" {
		os.Remove(d.path)
	}
}
