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

package buddy

import "math/bits"

// orderFor calculates the smallest order whose block fits the given size,
// clamped below to minOrder. It uses bits.Len to round size up to a power
// of two. Returns -1 if size does not fit in the arena.
// The caller guarantees size >= 1.
func (a *Allocator) orderFor(size int) int {
	order := bits.Len(uint(size - 1))
	if order < a.minOrder {
		return a.minOrder
	}
	if order > a.maxOrder {
		return -1
	}
	return order
}

// pageOf maps an arena byte offset to its page index.
func (a *Allocator) pageOf(offset int) int {
	return offset >> a.minOrder
}

// offsetOf maps a page index back to its arena byte offset.
func (a *Allocator) offsetOf(idx int) int {
	return idx << a.minOrder
}

// pagesPer returns the number of pages spanned by a block of the given order.
func (a *Allocator) pagesPer(order int) int {
	return 1 << (order - a.minOrder)
}

// buddyOf returns the page index of the buddy of the order-sized block
// headed at page idx. The two halves of a parent block differ only in the
// bit selecting the half, so the buddy is found by flipping it. idx must
// be aligned to the block's page span.
func (a *Allocator) buddyOf(idx, order int) int {
	return idx ^ a.pagesPer(order)
}
