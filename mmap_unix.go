//go:build linux || darwin

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

	"golang.org/x/sys/unix"
)

// NewMmap creates an allocator over an anonymous private mapping of
// 1<<maxOrder bytes, keeping large arenas off the Go heap. Close releases
// the mapping.
func NewMmap(minOrder, maxOrder int) (*Allocator, error) {
	if err := checkOrders(minOrder, maxOrder); err != nil {
		return nil, err
	}
	arena, err := unix.Mmap(-1, 0, 1<<maxOrder, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("buddy: mmap failed: %w", err)
	}
	a := newAllocator(arena, minOrder, maxOrder)
	a.unmap = unix.Munmap
	return a, nil
}
