// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	"fmt"
	"sync"
)

type ReaderWriterLatch interface {
	WLock()
	WUnlock()
	RLock()
	RUnlock()
}

type readerWriterLatch struct {
	mutex *sync.RWMutex
}

func NewRWLatch() ReaderWriterLatch {
	return &readerWriterLatch{new(sync.RWMutex)}
}

func (l *readerWriterLatch) WLock() {
	l.mutex.Lock()
}

func (l *readerWriterLatch) WUnlock() {
	l.mutex.Unlock()
}

func (l *readerWriterLatch) RLock() {
	l.mutex.RLock()
}

func (l *readerWriterLatch) RUnlock() {
	l.mutex.RUnlock()
}

// for debug of concurrent code on single thread running
type readerWriterLatchDummy struct {
	readerCnt int32
	writerCnt int32
}

func NewRWLatchDummy() ReaderWriterLatch {
	return &readerWriterLatchDummy{0, 0}
}

func (l *readerWriterLatchDummy) WLock() {
	l.writerCnt++

	if l.writerCnt != 1 || l.readerCnt != 0 {
		panic(fmt.Sprintf("double WLock! readerCnt: %d, writerCnt: %d", l.readerCnt, l.writerCnt))
	}
}

func (l *readerWriterLatchDummy) WUnlock() {
	l.writerCnt--

	if l.writerCnt != 0 {
		panic(fmt.Sprintf("double WUnlock! readerCnt: %d, writerCnt: %d", l.readerCnt, l.writerCnt))
	}
}

func (l *readerWriterLatchDummy) RLock() {
	l.readerCnt++

	if l.writerCnt != 0 {
		panic(fmt.Sprintf("RLock while write locked! readerCnt: %d, writerCnt: %d", l.readerCnt, l.writerCnt))
	}
}

func (l *readerWriterLatchDummy) RUnlock() {
	l.readerCnt--

	if l.readerCnt < 0 {
		panic(fmt.Sprintf("RUnlock without RLock! readerCnt: %d, writerCnt: %d", l.readerCnt, l.writerCnt))
	}
}
