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

import (
	"fmt"
	"strings"
)

// FreeStat reports the free-list occupancy of one order.
type FreeStat struct {
	Order      int // block order
	BlockSize  int // 1 << Order
	FreeBlocks int // free blocks of this order
}

// Dump reports the number of free blocks at every order, page order
// first. It only observes state and never merges or splits.
func (a *Allocator) Dump() []FreeStat {
	stats := make([]FreeStat, 0, a.maxOrder-a.minOrder+1)
	for o := a.minOrder; o <= a.maxOrder; o++ {
		stats = append(stats, FreeStat{
			Order:      o,
			BlockSize:  1 << o,
			FreeBlocks: a.free[o].Len(),
		})
	}
	return stats
}

// Available returns the total free bytes. Contiguity is not implied: an
// allocation of Available() bytes may still fail.
func (a *Allocator) Available() int {
	total := 0
	for o := a.minOrder; o <= a.maxOrder; o++ {
		total += a.free[o].Len() << o
	}
	return total
}

// String formats the free-list occupancy as one "count:sizeK" pair per
// order, page order first.
func (a *Allocator) String() string {
	var sb strings.Builder
	for o := a.minOrder; o <= a.maxOrder; o++ {
		if o > a.minOrder {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d:%dK", a.free[o].Len(), (1<<o)>>10)
	}
	return sb.String()
}
