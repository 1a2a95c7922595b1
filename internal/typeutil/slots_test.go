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

import "testing"

func TestSlotRecycling(t *testing.T) {
	var a SlotAllocator
	s0, s1, s2 := a.Alloc(), a.Alloc(), a.Alloc()
	if s0.Index != 0 || s1.Index != 1 || s2.Index != 2 {
		t.Fatalf("unexpected indices %v %v %v", s0, s1, s2)
	}
	if !a.Release(s1) {
		t.Fatalf("expected release of live slot")
	}
	if a.Release(s1) {
		t.Fatalf("expected stale release to fail")
	}
	s3 := a.Alloc()
	if s3.Index != 1 || s3.Gen == s1.Gen {
		t.Fatalf("expected recycled index with new generation, got %v (old %v)", s3, s1)
	}
	if a.Live(s1) || !a.Live(s3) {
		t.Fatalf("generation check failed")
	}
	if a.Len() != 3 {
		t.Fatalf("live count: %d", a.Len())
	}
}

func TestSlotGrowthAndReset(t *testing.T) {
	var a SlotAllocator
	slots := make([]Slot, 0, 1000)
	for i := 0; i < 1000; i++ {
		slots = append(slots, a.Alloc())
	}
	if a.Cap() != 1000 {
		t.Fatalf("cap: %d", a.Cap())
	}
	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("expected no live slots after reset")
	}
	for _, s := range slots[:10] {
		if a.Live(s) {
			t.Fatalf("slot %v survived reset", s)
		}
	}
	if s := a.Alloc(); s.Index != 0 {
		t.Fatalf("expected index 0 after reset, got %d", s.Index)
	}
	if a.Cap() != 1000 {
		t.Fatalf("reset should not shrink the pool: %d", a.Cap())
	}
}
