package orderbook

import "sort"

// priceIndex keeps one side's PriceLevels ordered by price, best price
// first. Bids are ordered highest-first, asks lowest-first; which
// ordering a given index uses is fixed at construction via less.
//
// This replaces the teacher's red-black tree: both draft copies in the
// example pack left the rotation/insert-fixup logic unimplemented, so a
// sorted slice searched with sort.Search is used instead. Insertion and
// removal of a level are O(L) in the number of distinct price levels on
// a side, which is small relative to order count in a matching engine.
type priceIndex struct {
	levels []*PriceLevel
	less   func(a, b int64) bool // true if price a sorts before price b (better)
}

func newBidIndex() *priceIndex {
	return &priceIndex{less: func(a, b int64) bool { return a > b }}
}

func newAskIndex() *priceIndex {
	return &priceIndex{less: func(a, b int64) bool { return a < b }}
}

// search returns the position at which a level with the given price
// either exists or should be inserted.
func (idx *priceIndex) search(price int64) int {
	return sort.Search(len(idx.levels), func(i int) bool {
		p := idx.levels[i].Price
		return p == price || idx.less(price, p)
	})
}

func (idx *priceIndex) find(price int64) *PriceLevel {
	i := idx.search(price)
	if i < len(idx.levels) && idx.levels[i].Price == price {
		return idx.levels[i]
	}
	return nil
}

// upsert returns the PriceLevel for price, creating and inserting an
// empty one in sorted position if it does not yet exist.
func (idx *priceIndex) upsert(price int64) *PriceLevel {
	i := idx.search(price)
	if i < len(idx.levels) && idx.levels[i].Price == price {
		return idx.levels[i]
	}
	lvl := &PriceLevel{Price: price}
	idx.levels = append(idx.levels, nil)
	copy(idx.levels[i+1:], idx.levels[i:])
	idx.levels[i] = lvl
	return lvl
}

// removeIfEmpty drops the level at price from the index if it exists
// and is empty. Invariant 2 (no empty levels persist) is enforced here.
func (idx *priceIndex) removeIfEmpty(price int64) {
	i := idx.search(price)
	if i >= len(idx.levels) || idx.levels[i].Price != price {
		return
	}
	if !idx.levels[i].Empty() {
		return
	}
	idx.levels = append(idx.levels[:i], idx.levels[i+1:]...)
}

func (idx *priceIndex) best() *PriceLevel {
	if len(idx.levels) == 0 {
		return nil
	}
	return idx.levels[0]
}

func (idx *priceIndex) len() int { return len(idx.levels) }
