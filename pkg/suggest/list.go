package suggest

import "sync"

// List holds the suggestions currently offered to the user. Contents are only
// ever swapped wholesale, so the labels shown by a widget and the lookup used
// when a label is picked always come from the same lookup cycle.
type List struct {
	mu    sync.RWMutex
	items []Suggestion
}

// NewList returns a list seeded with items.
func NewList(items ...Suggestion) *List {
	l := &List{}
	if len(items) > 0 {
		l.Replace(items)
	}
	return l
}

// Replace swaps the full contents of the list. A nil slice empties it.
func (l *List) Replace(items []Suggestion) {
	copied := make([]Suggestion, len(items))
	copy(copied, items)
	l.mu.Lock()
	l.items = copied
	l.mu.Unlock()
}

// Clear empties the list.
func (l *List) Clear() {
	l.Replace(nil)
}

// Items returns a copy of the current contents in order.
func (l *List) Items() []Suggestion {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Suggestion, len(l.items))
	copy(out, l.items)
	return out
}

// Labels returns the current labels in display order.
func (l *List) Labels() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Labels(l.items)
}

// Len reports how many suggestions the list holds.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// ByLabel returns the first suggestion whose label equals label. The second
// return reports whether a match exists in the current contents.
func (l *List) ByLabel(label string) (Suggestion, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if item.Label == label {
			return item, true
		}
	}
	return Suggestion{}, false
}
