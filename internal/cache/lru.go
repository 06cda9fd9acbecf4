package cache

// lruNode links one cached key into the recency ring.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList orders keys by recency: root.next is the most recently used key,
// root.prev the least recently used. The sentinel root removes nil checks
// from every operation. Not safe for concurrent use.
type lruList[K comparable] struct {
	root lruNode[K]
	len  int
}

func newLRUList[K comparable]() *lruList[K] {
	l := &lruList[K]{}
	l.Clear()
	return l
}

// Len returns the number of linked keys.
func (l *lruList[K]) Len() int {
	return l.len
}

// PushFront links key as most recently used and returns its node.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.insertAfter(n, &l.root)
	l.len++
	return n
}

// MoveToFront marks n as most recently used.
func (l *lruList[K]) MoveToFront(n *lruNode[K]) {
	if n == nil || l.root.next == n {
		return
	}
	l.detach(n)
	l.insertAfter(n, &l.root)
}

// Remove unlinks n.
func (l *lruList[K]) Remove(n *lruNode[K]) {
	if n == nil || n.next == nil {
		return
	}
	l.detach(n)
	n.prev, n.next = nil, nil
	l.len--
}

// RemoveOldest unlinks the least recently used key and returns it.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	n := l.root.prev
	l.Remove(n)
	return n.key, true
}

// Clear drops every node.
func (l *lruList[K]) Clear() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

func (l *lruList[K]) insertAfter(n, at *lruNode[K]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

func (l *lruList[K]) detach(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}
