// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"container/list"
	"fmt"

	pair "github.com/notEpsilon/go-pair"
)

// FrameID is the type for frame id
type FrameID uint32

// clockEntry is a frame and its reference bit
type clockEntry = pair.Pair[FrameID, bool]

/**
 * ClockReplacer implements the clock replacement policy, which approximates the Least Recently Used policy.
 * The front of ring is where the clock hand points. Advancing the hand moves the front entry to the back.
 * ClockReplacer has no latch of its own. BufferPoolManager serializes every call.
 */
type ClockReplacer struct {
	ring       *list.List
	supportMap map[FrameID]*list.Element
}

// Victim removes the victim frame as defined by the replacement policy.
// ok is false when no frame is tracked.
func (c *ClockReplacer) Victim() (FrameID, bool) {
	if c.ring.Len() == 0 {
		return 0, false
	}

	for {
		elem := c.ring.Front()
		entry := elem.Value.(*clockEntry)
		if entry.Second {
			// second chance
			entry.Second = false
			c.ring.MoveToBack(elem)
			continue
		}
		c.ring.Remove(elem)
		delete(c.supportMap, entry.First)
		return entry.First, true
	}
}

// Unpin unpins a frame, indicating that it can now be victimized
func (c *ClockReplacer) Unpin(id FrameID) {
	if c.isContain(id) {
		return
	}
	c.supportMap[id] = c.ring.PushBack(&clockEntry{First: id, Second: true})
}

// Pin pins a frame, indicating that it should not be victimized until it is unpinned
func (c *ClockReplacer) Pin(id FrameID) {
	elem, ok := c.supportMap[id]
	if !ok {
		return
	}
	c.ring.Remove(elem)
	delete(c.supportMap, id)
}

func (c *ClockReplacer) isContain(id FrameID) bool {
	_, ok := c.supportMap[id]
	return ok
}

// Size returns the size of the clock
func (c *ClockReplacer) Size() uint32 {
	return uint32(c.ring.Len())
}

// PrintList prints the ring starting at the clock hand
func (c *ClockReplacer) PrintList() {
	fmt.Printf("ClockReplacer (size=%d): ", c.ring.Len())
	for elem := c.ring.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*clockEntry)
		fmt.Printf("(%d,%v) ", entry.First, entry.Second)
	}
	fmt.Println()
}

// NewClockReplacer instantiates a new clock replacer
func NewClockReplacer(poolSize uint32) *ClockReplacer {
	return &ClockReplacer{list.New(), make(map[FrameID]*list.Element, poolSize)}
}
