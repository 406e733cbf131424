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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeMergesWithBuddy(t *testing.T) {
	a := newTestAllocator(t, 12, 20)

	a0, err := a.Alloc(4096)
	require.NoError(t, err)
	a1, err := a.Alloc(4096)
	require.NoError(t, err)
	assert.Equal(t, a0+4096, a1) // the two halves of one split

	// a0 cannot merge while a1 is allocated
	require.NoError(t, a.Free(a0))
	assert.Equal(t, 1, a.free[a.minOrder].Len())

	// freeing a1 merges the pair, and the merged block keeps merging with
	// the right halves left by the original split until the whole arena is
	// one block again
	require.NoError(t, a.Free(a1))
	assertPristine(t, a)
}

func TestMergeRestoresSplitState(t *testing.T) {
	a := newTestAllocator(t, 12, 20)
	before := a.Dump()

	// freeing both halves undoes the split exactly, in either order
	x, err := a.Alloc(4096)
	require.NoError(t, err)
	y, err := a.Alloc(4096)
	require.NoError(t, err)
	require.NoError(t, a.Free(x))
	require.NoError(t, a.Free(y))
	assert.Equal(t, before, a.Dump())

	x, err = a.Alloc(4096)
	require.NoError(t, err)
	y, err = a.Alloc(4096)
	require.NoError(t, err)
	require.NoError(t, a.Free(y))
	require.NoError(t, a.Free(x))
	assert.Equal(t, before, a.Dump())
}

func TestMergeStopsAtAllocatedBuddy(t *testing.T) {
	a := newTestAllocator(t, 12, 20)

	offs := allocN(t, a, 4, 4096) // pages 0 to 3
	require.NoError(t, a.Free(offs[0]))
	require.NoError(t, a.Free(offs[1]))

	// pages 0-1 merged into an 8KB block; its buddy (pages 2-3) is still
	// allocated, so the chain stops at order 13
	assert.Equal(t, 0, a.free[12].Len())
	assert.Equal(t, 1, a.free[13].Len())
	assert.Equal(t, 0, a.free[14].Len())

	require.NoError(t, a.Free(offs[2]))
	assert.Equal(t, 1, a.free[12].Len()) // page 3 still allocated

	require.NoError(t, a.Free(offs[3]))
	assertPristine(t, a)
}

func TestMergeAcrossOrders(t *testing.T) {
	a := newTestAllocator(t, 12, 20)

	// hold a page-sized block next to an 8KB one so merges at two
	// different orders are both blocked, then release them
	p, err := a.Alloc(4096) // page 0
	require.NoError(t, err)
	q, err := a.Alloc(8192) // pages 2-3
	require.NoError(t, err)
	r, err := a.Alloc(4096) // page 1
	require.NoError(t, err)

	require.NoError(t, a.Free(r)) // buddy page 0 allocated, no merge
	assert.Equal(t, 1, a.free[12].Len())

	require.NoError(t, a.Free(p)) // merges 0+1, then blocked by q
	assert.Equal(t, 0, a.free[12].Len())
	assert.Equal(t, 1, a.free[13].Len())

	require.NoError(t, a.Free(q)) // merges up to the whole arena
	assertPristine(t, a)
}

func TestFreeErrors(t *testing.T) {
	a := newTestAllocator(t, 12, 20)

	off, err := a.Alloc(64 * 1024) // pages 0 to 15
	require.NoError(t, err)
	require.Equal(t, 0, off)

	tests := []struct {
		name   string
		offset int
		want   error
	}{
		{"negative", -4096, ErrBadAddress},
		{"at_end", 1 << 20, ErrBadAddress},
		{"past_end", 1<<20 + 4096, ErrBadAddress},
		{"misaligned", 100, ErrBadAddress},
		{"interior_of_allocated", 4096, ErrBadAddress},
		{"interior_of_free", 512*1024 + 4096, ErrBadAddress},
		{"already_free_head", 512 * 1024, ErrDoubleFree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, a.Free(tt.offset), tt.want)
		})
	}

	// failed frees disturbed nothing
	require.NoError(t, a.Free(off))
	assertPristine(t, a)

	// double free of a block that has merged back
	assert.ErrorIs(t, a.Free(off), ErrDoubleFree)
}

func TestFreeRandomOrderCollapses(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := newTestAllocator(t, 12, 20)

	for round := 0; round < 50; round++ {
		offs := allocN(t, a, 256, 4096)
		_, err := a.Alloc(4096)
		require.ErrorIs(t, err, ErrOutOfMemory)

		// whatever the free order, the arena must collapse back to one block
		rng.Shuffle(len(offs), func(i, j int) { offs[i], offs[j] = offs[j], offs[i] })
		for _, off := range offs {
			require.NoError(t, a.Free(off))
		}
		assertPristine(t, a)
	}
}
