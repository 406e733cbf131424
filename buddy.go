/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package buddy implements a fixed-arena power-of-two buddy memory allocator.
//
// An Allocator manages one contiguous arena of 1<<maxOrder bytes divided
// into pages of 1<<minOrder bytes. Alloc serves a request by splitting the
// smallest free block that covers it and hands out a block sized to the
// covering power of two. Free merges the returned block with its buddy
// (the other half of the shared parent block) for as long as that buddy is
// free, so memory coalesces back toward the single whole-arena block.
//
// Addresses are plain byte offsets into the arena: Alloc returns an offset
// and Block exposes the backing bytes. The allocator never reads or writes
// arena contents itself.
//
// An Allocator is not safe for concurrent use. A single goroutine must own
// it at a time; hosts with multiple goroutines serialize Alloc, Free and
// Dump behind one lock.
package buddy

import (
	"fmt"
	"math/bits"

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/cloudwego/buddy/container/dlist"
)

const (
	// DefaultMinOrder is the default page order (4KB pages).
	DefaultMinOrder = 12

	// DefaultMaxOrder is the default arena order (1MB arena).
	DefaultMaxOrder = 20
)

// orderUnset marks a page that is not the head of any block.
const orderUnset = -1

// page is the descriptor of one arena page. A page heads a block iff its
// order is set; the head is on a free list iff node is non-nil. Pages
// interior to a block keep order == orderUnset.
type page struct {
	order int
	node  *dlist.Node[int]
}

// Allocator is a buddy system allocator over a fixed arena.
type Allocator struct {
	// arena is the memory slab being managed.
	arena []byte

	// pages holds one descriptor per page, indexed by offset >> minOrder.
	pages []page

	// free holds the free blocks of each order as lists of head page
	// indices, indexed by absolute order. Blocks are appended on free and
	// taken from the front on alloc, so equal-order blocks are reused
	// oldest first. Entries below minOrder stay empty.
	free []dlist.List[int]

	minOrder int // log2 of the page size
	maxOrder int // log2 of the arena size
	pageSize int // 1 << minOrder

	// unmap releases an mmap-backed arena, nil otherwise.
	unmap func([]byte) error
}

// New creates an allocator with the default orders (4KB pages, 1MB arena)
// over a heap-backed arena it owns.
func New() (*Allocator, error) {
	return NewWithOrders(DefaultMinOrder, DefaultMaxOrder)
}

// NewWithOrders creates an allocator over a heap-backed arena of
// 1<<maxOrder bytes carved into pages of 1<<minOrder bytes.
// Requires 0 < minOrder < maxOrder.
func NewWithOrders(minOrder, maxOrder int) (*Allocator, error) {
	if err := checkOrders(minOrder, maxOrder); err != nil {
		return nil, err
	}
	size := 1 << maxOrder
	return newAllocator(dirtmake.Bytes(size, size), minOrder, maxOrder), nil
}

// NewFromBytes creates an allocator managing a caller-owned arena.
// The arena's size MUST be exactly 1<<maxOrder bytes.
func NewFromBytes(arena []byte, minOrder, maxOrder int) (*Allocator, error) {
	if err := checkOrders(minOrder, maxOrder); err != nil {
		return nil, err
	}
	if len(arena) != 1<<maxOrder {
		return nil, fmt.Errorf("buddy: arena size must be %d bytes (1<<%d), got %d", 1<<maxOrder, maxOrder, len(arena))
	}
	return newAllocator(arena, minOrder, maxOrder), nil
}

func checkOrders(minOrder, maxOrder int) error {
	if minOrder < 1 {
		return fmt.Errorf("buddy: minOrder must be >= 1, got %d", minOrder)
	}
	if minOrder >= maxOrder {
		return fmt.Errorf("buddy: minOrder (%d) must be < maxOrder (%d)", minOrder, maxOrder)
	}
	if maxOrder > bits.UintSize-2 {
		return fmt.Errorf("buddy: maxOrder must be <= %d, got %d", bits.UintSize-2, maxOrder)
	}
	return nil
}

func newAllocator(arena []byte, minOrder, maxOrder int) *Allocator {
	a := &Allocator{
		arena:    arena,
		pages:    make([]page, 1<<(maxOrder-minOrder)),
		free:     make([]dlist.List[int], maxOrder+1),
		minOrder: minOrder,
		maxOrder: maxOrder,
		pageSize: 1 << minOrder,
	}
	a.Reset()
	return a
}

// Reset discards all allocations and returns the allocator to its initial
// state: one free block spanning the whole arena. Offsets handed out
// before Reset must not be used afterwards.
func (a *Allocator) Reset() {
	for i := range a.pages {
		a.pages[i] = page{order: orderUnset}
	}
	for o := a.minOrder; o <= a.maxOrder; o++ {
		a.free[o].Init()
	}
	a.pages[0].order = a.maxOrder
	a.pages[0].node = a.free[a.maxOrder].PushBack(0)
}

// Size returns the arena size in bytes.
func (a *Allocator) Size() int {
	return len(a.arena)
}

// Block returns the bytes backing the allocated block at offset. The
// slice aliases the arena and is sized to the block, not the request; it
// stays valid until the block is freed or the allocator is reset.
func (a *Allocator) Block(offset int) ([]byte, error) {
	idx, err := a.allocatedHead(offset)
	if err != nil {
		return nil, err
	}
	end := offset + 1<<a.pages[idx].order
	return a.arena[offset:end:end], nil
}

// Close releases an mmap-backed arena and is a no-op for heap and
// caller-owned arenas. The allocator must not be used after Close.
func (a *Allocator) Close() error {
	if a.unmap == nil {
		return nil
	}
	unmap, arena := a.unmap, a.arena
	a.unmap = nil
	a.arena = nil
	a.pages = nil
	a.free = nil
	return unmap(arena)
}
