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

// Free returns the allocated block at offset to the allocator and merges
// it with its buddy for as long as the buddy is a whole free block of the
// same order. Merging two buddies yields the parent block at the lower of
// the two addresses, whose buddy is then reconsidered at the next order.
//
// offset must be a value returned by Alloc and not freed since; otherwise
// Free reports ErrBadAddress or ErrDoubleFree and changes nothing.
func (a *Allocator) Free(offset int) error {
	idx, err := a.allocatedHead(offset)
	if err != nil {
		return err
	}

	k := a.pages[idx].order
	for k < a.maxOrder {
		b := a.buddyOf(idx, k)
		// Merge only if the buddy is itself a whole free block of order k.
		// An allocated or partially split buddy ends the chain.
		if a.pages[b].node == nil || a.pages[b].order != k {
			break
		}
		a.free[k].Remove(a.pages[b].node)
		a.pages[b].node = nil
		if b < idx {
			idx, b = b, idx
		}
		a.pages[b].order = orderUnset
		k++
	}

	a.pages[idx].order = k
	a.pages[idx].node = a.free[k].PushBack(idx)
	return nil
}

// allocatedHead validates that offset names the head of a currently
// allocated block and returns its page index. It reports ErrBadAddress
// for out-of-range, misaligned or non-head offsets, and ErrDoubleFree
// when the block is already free.
func (a *Allocator) allocatedHead(offset int) (int, error) {
	if offset < 0 || offset >= len(a.arena) || offset&(a.pageSize-1) != 0 {
		return 0, ErrBadAddress
	}
	idx := a.pageOf(offset)
	p := &a.pages[idx]
	if p.order == orderUnset {
		return 0, ErrBadAddress
	}
	if p.node != nil {
		return 0, ErrDoubleFree
	}
	return idx, nil
}
