// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	"sync"
)

const EnableDebug bool = false //true

// use on memory virtual storage or not
const EnableOnMemStorage = true

// when this is true, virtual storage use is suppressed
// for test case which can't work with virtual storage
var TempSuppressOnMemStorage = false
var TempSuppressOnMemStorageMutex sync.Mutex

const (
	// invalid page id
	InvalidPageID = -1
	// size of a data page in byte
	PageSize                     = 4096 //1024  //512
	BufferPoolMaxFrameNumForTest = 32   //500
	// frame num of buffer pool used by the demo entry point
	BufferPoolFrameNumForDemo = 2
)

var LogLevelSetting = INFO | WARN | ERROR | FATAL //| BUFFER_INTERNAL_STATE | DEBUG_INFO | CACHE_OUT_IN_INFO
