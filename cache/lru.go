package cache

import "container/list"

// lruList tracks recency of use for bounded stores. The front of the list is
// the most recently used key, the back the least. All operations are O(1);
// callers hold the store lock.
type lruList struct {
	ll    *list.List
	items map[string]*list.Element
}

func newLRUList() *lruList {
	return &lruList{ll: list.New(), items: make(map[string]*list.Element)}
}

// touch marks key as most recently used, inserting it if unknown.
func (l *lruList) touch(key string) {
	if el, ok := l.items[key]; ok {
		l.ll.MoveToFront(el)
		return
	}
	l.items[key] = l.ll.PushFront(key)
}

// remove drops key from the recency tracking.
func (l *lruList) remove(key string) {
	if el, ok := l.items[key]; ok {
		l.ll.Remove(el)
		delete(l.items, key)
	}
}

// evict removes and returns the least recently used key.
func (l *lruList) evict() (string, bool) {
	el := l.ll.Back()
	if el == nil {
		return "", false
	}
	key := el.Value.(string)
	l.ll.Remove(el)
	delete(l.items, key)
	return key, true
}

func (l *lruList) reset() {
	l.ll.Init()
	l.items = make(map[string]*list.Element)
}
