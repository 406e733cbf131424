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

package dlist

// List is an intrusive-style doubly linked list with O(1) push, pop and
// removal by node handle. It is a trimmed-down typed variant of
// container/list: callers keep the *Node returned by PushBack and hand it
// back to Remove, so no search is ever needed.
// The zero value is an empty list ready to use.
type List[V any] struct {
	root Node[V] // sentinel; root.next is the front, root.prev is the back
	len  int
}

// Node is an element of a List.
// A handle stays valid until the node is removed from its list.
type Node[V any] struct {
	prev, next *Node[V]
	list       *List[V]
	value      V
}

// New returns an initialized empty list.
func New[V any]() *List[V] {
	return new(List[V]).Init()
}

// Init initializes or clears the list.
func (l *List[V]) Init() *List[V] {
	l.root.prev = &l.root
	l.root.next = &l.root
	l.len = 0
	return l
}

func (l *List[V]) lazyInit() {
	if l.root.next == nil {
		l.Init()
	}
}

// Len returns the number of nodes in the list.
func (l *List[V]) Len() int {
	return l.len
}

// Front returns the earliest inserted node, or nil if the list is empty.
func (l *List[V]) Front() *Node[V] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

// PushBack appends v to the list and returns its node.
func (l *List[V]) PushBack(v V) *Node[V] {
	l.lazyInit()
	n := &Node[V]{value: v, list: l}
	back := l.root.prev
	n.prev = back
	n.next = &l.root
	back.next = n
	l.root.prev = n
	l.len++
	return n
}

// Remove unlinks n from the list and returns its value.
// If n is not a node of l, the list is left unchanged and the zero value
// is returned.
func (l *List[V]) Remove(n *Node[V]) V {
	if n.list != l {
		var zero V
		return zero
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
	n.list = nil
	l.len--
	return n.value
}

// Do calls function f on each value of the list in insertion order.
func (l *List[V]) Do(f func(v V)) {
	if l.root.next == nil {
		return
	}
	for n := l.root.next; n != &l.root; n = n.next {
		f(n.value)
	}
}

// Next returns the node after n, or nil if n is the back of its list or
// has been removed.
func (n *Node[V]) Next() *Node[V] {
	if n.list == nil || n.next == &n.list.root {
		return nil
	}
	return n.next
}

// Value returns the value stored in n.
func (n *Node[V]) Value() V {
	return n.value
}
