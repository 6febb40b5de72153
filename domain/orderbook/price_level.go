package orderbook

// PriceLevel is a FIFO queue of resting orders at a single price. Arrival
// order within a level is preserved across enqueue, partial fill, and
// removal from anywhere in the list (cancel/replace of a non-head order).
type PriceLevel struct {
	Price int64

	head *Order
	tail *Order

	TotalQty   int64
	OrderCount int
}

func (p *PriceLevel) Enqueue(o *Order) {
	o.next = nil
	o.prev = p.tail
	if p.head == nil {
		p.head = o
	} else {
		p.tail.next = o
	}
	p.tail = o
	p.TotalQty += o.Qty
	p.OrderCount++
}

// PopHead removes and returns the order at the front of the FIFO, or nil
// if the level is empty.
func (p *PriceLevel) PopHead() *Order {
	o := p.head
	if o == nil {
		return nil
	}
	p.remove(o)
	return o
}

// remove unlinks o from anywhere in the FIFO. o must currently belong to
// this level.
func (p *PriceLevel) remove(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	o.next = nil
	o.prev = nil
	p.TotalQty -= o.Qty
	p.OrderCount--
}

// Remove unlinks o from this level, adjusting TotalQty/OrderCount. Used
// by cancel and replace to drop an order that is not necessarily at the
// head of the FIFO.
func (p *PriceLevel) Remove(o *Order) {
	p.remove(o)
}

// ReduceQty accounts for a partial fill of an order still resting in
// this level (o.Qty must already reflect the reduced amount).
func (p *PriceLevel) ReduceQty(delta int64) {
	p.TotalQty -= delta
}

func (p *PriceLevel) Empty() bool {
	return p.head == nil
}

func (p *PriceLevel) Head() *Order { return p.head }
