package checkout

import "sort"

// Cart maps product ids to desired quantities. It round-trips as the JSON
// object the storefront client keeps in session state.
type Cart map[string]int

// Add increments the quantity by one, inserting at one.
func (c Cart) Add(productID string) {
	c[productID]++
}

// SetQuantity sets the desired quantity; zero or negative removes the entry.
func (c Cart) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		delete(c, productID)
		return
	}
	c[productID] = qty
}

// Count sums all quantities.
func (c Cart) Count() int {
	n := 0
	for _, qty := range c {
		n += qty
	}
	return n
}

// AmountCents sums offer price times quantity over entries present in the
// given catalog snapshot. Entries for unknown or removed products are
// skipped, not an error.
func (c Cart) AmountCents(prices map[string]int) int {
	total := 0
	for id, qty := range c {
		if price, ok := prices[id]; ok {
			total += price * qty
		}
	}
	return total
}

// Items flattens the mapping into order line items, dropping non-positive
// quantities. Sorted by product id for deterministic output.
func (c Cart) Items() []OrderItem {
	items := make([]OrderItem, 0, len(c))
	for id, qty := range c {
		if qty > 0 {
			items = append(items, OrderItem{ProductID: id, Qty: qty})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}
