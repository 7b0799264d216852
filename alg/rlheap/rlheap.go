// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rlheap provides the container/heap operations plus a bounded
// push, which keeps the limit greatest items of a stream in a min-heap
// whose root is the least item kept.
package rlheap

import (
	"container/heap"
)

// Interface is a heap whose root can be overwritten in place.
type Interface interface {
	heap.Interface
	Set(i int, x interface{})
	// LessValue reports whether the item at i orders before x.
	LessValue(i int, x interface{}) bool
}

// Init establishes the heap invariants. Its complexity is O(n) where
// n = h.Len().
func Init(h heap.Interface) {
	n := h.Len()
	for i := n/2 - 1; i >= 0; i-- {
		down(h, i, n)
	}
}

// Push pushes the element x onto the heap. The complexity is
// O(log(n)) where n = h.Len().
func Push(h heap.Interface, x interface{}) {
	h.Push(x)
	up(h, h.Len()-1)
}

// Pop removes the minimum element (according to Less) from the heap
// and returns it.
func Pop(h heap.Interface) interface{} {
	n := h.Len() - 1
	h.Swap(0, n)
	down(h, 0, n)
	return h.Pop()
}

// Fix re-establishes the heap ordering after the element at index i has
// changed its value.
func Fix(h heap.Interface, i int) {
	if !down(h, i, h.Len()) {
		up(h, i)
	}
}

// PushBounded pushes x while h holds fewer than limit items. Once h is
// full x replaces the root only if the root orders strictly before it, so
// among equal items the earliest pushed are kept. It reports whether x was
// kept.
func PushBounded(h Interface, x interface{}, limit int) bool {
	if h.Len() < limit {
		Push(h, x)
		return true
	}
	if h.Len() == 0 || !h.LessValue(0, x) {
		return false
	}
	h.Set(0, x)
	down(h, 0, h.Len())
	return true
}

func up(h heap.Interface, j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.Less(j, i) {
			break
		}
		h.Swap(i, j)
		j = i
	}
}

func down(h heap.Interface, i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.Less(j2, j1) {
			j = j2 // right child
		}
		if !h.Less(j, i) {
			break
		}
		h.Swap(i, j)
		i = j
	}
	return i > i0
}
