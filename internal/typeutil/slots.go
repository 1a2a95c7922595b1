// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package typeutil

type slotList struct {
	index int
	tail  *slotList
}

// Slot identifies an allocated id. Gen changes each time the index is released,
// so a stale Slot can be detected after its index has been recycled.
type Slot struct {
	Index int
	Gen   uint32
}

// SlotAllocator hands out small integer ids and recycles released ids. The
// allocator grows on demand; it never runs out of ids.
type SlotAllocator struct {
	gens  []uint32
	live  []bool
	count int
	free  *slotList
	block []slotList
}

// Len returns the number of live slots.
func (a *SlotAllocator) Len() int { return a.count }

// Cap returns the number of distinct indices handed out so far.
func (a *SlotAllocator) Cap() int { return len(a.gens) }

func (a *SlotAllocator) push(index int) {
	if len(a.block) == 0 {
		a.block = make([]slotList, 8)
	}
	nd := &a.block[0]
	a.block = a.block[1:]
	nd.index, nd.tail = index, a.free
	a.free = nd
}

// Alloc returns a live slot, reusing the most recently released index when one exists.
func (a *SlotAllocator) Alloc() Slot {
	a.count++
	if a.free != nil {
		nd := a.free
		a.free = nd.tail
		a.live[nd.index] = true
		return Slot{Index: nd.index, Gen: a.gens[nd.index]}
	}
	a.gens = append(a.gens, 0)
	a.live = append(a.live, true)
	return Slot{Index: len(a.gens) - 1}
}

// Live reports whether s was allocated and has not been released since.
func (a *SlotAllocator) Live(s Slot) bool {
	return s.Index >= 0 && s.Index < len(a.gens) && a.live[s.Index] && a.gens[s.Index] == s.Gen
}

// Release returns the slot's index to the pool. Releasing a stale slot is a no-op
// and reports false.
func (a *SlotAllocator) Release(s Slot) bool {
	if !a.Live(s) {
		return false
	}
	a.gens[s.Index]++
	a.live[s.Index] = false
	a.count--
	a.push(s.Index)
	return true
}

// Reset releases every live slot. Lower indices are handed out first afterwards.
func (a *SlotAllocator) Reset() {
	a.free, a.block, a.count = nil, nil, 0
	for i := len(a.gens) - 1; i >= 0; i-- {
		if a.live[i] {
			a.gens[i]++
			a.live[i] = false
		}
		a.push(i)
	}
}
