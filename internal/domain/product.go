package domain

// Product is catalog data served by the remote storefront API. The cart never mutates it.
type Product struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Stock is the available quantity for a product at query time.
type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}
