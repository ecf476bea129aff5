package domain

// CartItem is a product line in the cart. Amount is always at least 1.
type CartItem struct {
	Product
	Amount int `json:"amount"`
}

// Cart is an ordered list of items, unique by product id.
type Cart []CartItem

// Index returns the position of the line for productID, or -1.
func (c Cart) Index(productID int) int {
	for i, item := range c {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
