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

import "errors"

var (
	// ErrInvalidSize is returned by Alloc for zero or negative sizes.
	ErrInvalidSize = errors.New("buddy: invalid allocation size")

	// ErrSizeTooLarge is returned by Alloc when the requested size exceeds
	// the arena capacity, so no amount of freeing could ever satisfy it.
	ErrSizeTooLarge = errors.New("buddy: size exceeds arena capacity")

	// ErrOutOfMemory is returned by Alloc when no free block is large
	// enough for the request. Freeing blocks may make the request succeed.
	ErrOutOfMemory = errors.New("buddy: out of memory")

	// ErrBadAddress is returned when an offset is out of range, misaligned,
	// or does not name the start of a block handed out by Alloc.
	ErrBadAddress = errors.New("buddy: bad block address")

	// ErrDoubleFree is returned when the block at the given offset is
	// already on a free list.
	ErrDoubleFree = errors.New("buddy: double free")
)
