package engine

import (
	"container/list"

	"github.com/google/btree"
	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
)

const btreeDegree = 32

// level is the FIFO queue of order ids resting at one price. It wraps
// container/list as a deque: PushBack for ordinary arrivals, PushFront to
// restore a partially-consumed maker's priority after a crossing.
type level struct {
	price fixedpoint.Price
	ids   *list.List
}

func newLevel(price fixedpoint.Price) *level {
	return &level{price: price, ids: list.New()}
}

func (l *level) PushBack(orderID id.Id)  { l.ids.PushBack(orderID) }
func (l *level) PushFront(orderID id.Id) { l.ids.PushFront(orderID) }

// Front returns the head of the queue, or the zero id if empty.
func (l *level) Front() (id.Id, bool) {
	e := l.ids.Front()
	if e == nil {
		return id.Invalid, false
	}
	return e.Value.(id.Id), true
}

// PopFront removes and returns the head of the queue.
func (l *level) PopFront() (id.Id, bool) {
	e := l.ids.Front()
	if e == nil {
		return id.Invalid, false
	}
	l.ids.Remove(e)
	return e.Value.(id.Id), true
}

// Remove deletes the first occurrence of orderID, reporting whether it was
// found.
func (l *level) Remove(orderID id.Id) bool {
	for e := l.ids.Front(); e != nil; e = e.Next() {
		if e.Value.(id.Id) == orderID {
			l.ids.Remove(e)
			return true
		}
	}
	return false
}

func (l *level) Len() int { return l.ids.Len() }

func (l *level) IsEmpty() bool { return l.ids.Len() == 0 }

// Each visits ids front to back.
func (l *level) Each(fn func(id.Id)) {
	for e := l.ids.Front(); e != nil; e = e.Next() {
		fn(e.Value.(id.Id))
	}
}

// priceLevelItem adapts a *level for storage in a google/btree.BTree,
// ordered ascending by price; the ladder itself decides whether to read it
// front-to-back or back-to-front.
type priceLevelItem struct {
	price fixedpoint.Price
	lvl   *level
}

func (a *priceLevelItem) Less(than btree.Item) bool {
	return a.price.LT(than.(*priceLevelItem).price)
}

// ladder is one side of the book: a price-ordered set of levels. Bids are
// read highest-first, asks lowest-first; both are stored in the same
// ascending btree and the direction only affects iteration and Top().
type ladder struct {
	tree       *btree.BTree
	descending bool
}

func newLadder(descending bool) *ladder {
	return &ladder{tree: btree.New(btreeDegree), descending: descending}
}

func (s *ladder) Get(price fixedpoint.Price) *level {
	item := s.tree.Get(&priceLevelItem{price: price})
	if item == nil {
		return nil
	}
	return item.(*priceLevelItem).lvl
}

func (s *ladder) GetOrCreate(price fixedpoint.Price) *level {
	if lvl := s.Get(price); lvl != nil {
		return lvl
	}
	lvl := newLevel(price)
	s.tree.ReplaceOrInsert(&priceLevelItem{price: price, lvl: lvl})
	return lvl
}

func (s *ladder) Remove(price fixedpoint.Price) {
	s.tree.Delete(&priceLevelItem{price: price})
}

// Top returns the best level on this side (highest price for bids, lowest
// for asks), or nil if the ladder is empty.
func (s *ladder) Top() *level {
	var item btree.Item
	if s.descending {
		item = s.tree.Max()
	} else {
		item = s.tree.Min()
	}
	if item == nil {
		return nil
	}
	return item.(*priceLevelItem).lvl
}

// TopPrice mirrors Top but returns the empty-side sentinel the spec
// specifies: INFINITY for an empty ask ladder, ZERO for an empty bid
// ladder. Those sentinels never satisfy the crossing test.
func (s *ladder) TopPrice(emptySentinel fixedpoint.Price) fixedpoint.Price {
	if lvl := s.Top(); lvl != nil {
		return lvl.price
	}
	return emptySentinel
}

func (s *ladder) Len() int { return s.tree.Len() }

// NthFromTop returns the k-th level counting from the best price (k=0 is
// Top()), or nil if the ladder has fewer than k+1 levels.
func (s *ladder) NthFromTop(k int) *level {
	var found *level
	i := 0
	visit := func(item btree.Item) bool {
		if i == k {
			found = item.(*priceLevelItem).lvl
			return false
		}
		i++
		return true
	}
	if s.descending {
		s.tree.Descend(visit)
	} else {
		s.tree.Ascend(visit)
	}
	return found
}

// Each visits every level in this side's natural display order (best
// first).
func (s *ladder) Each(fn func(*level) bool) {
	visit := func(item btree.Item) bool {
		return fn(item.(*priceLevelItem).lvl)
	}
	if s.descending {
		s.tree.Descend(visit)
	} else {
		s.tree.Ascend(visit)
	}
}
