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

// Alloc allocates a block of at least size bytes and returns its byte
// offset within the arena. The block's real size is the power of two
// covering size (never below the page size) and the offset is aligned to
// it. The block's bytes are uninitialized.
//
// Alloc returns ErrInvalidSize for size <= 0 and ErrSizeTooLarge when size
// exceeds the arena capacity. When no free block is large enough it
// returns ErrOutOfMemory. A failed Alloc leaves the state untouched.
func (a *Allocator) Alloc(size int) (int, error) {
	if size <= 0 {
		return 0, ErrInvalidSize
	}
	order := a.orderFor(size)
	if order < 0 {
		return 0, ErrSizeTooLarge
	}

	// Take the oldest free block of the smallest sufficient order.
	for s := order; s <= a.maxOrder; s++ {
		head := a.free[s].Front()
		if head == nil {
			continue
		}
		idx := a.free[s].Remove(head)
		a.pages[idx].node = nil
		a.split(idx, s, order)
		a.pages[idx].order = order
		return a.offsetOf(idx), nil
	}
	return 0, ErrOutOfMemory
}

// split halves the block headed at page idx from order s down to order.
// The left half keeps the base address at every step, so the block never
// moves; each right half becomes a free block of the next lower order.
func (a *Allocator) split(idx, s, order int) {
	for k := s; k > order; k-- {
		right := idx + a.pagesPer(k-1)
		a.pages[right].order = k - 1
		a.pages[right].node = a.free[k-1].PushBack(right)
	}
}
