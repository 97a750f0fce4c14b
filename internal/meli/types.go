package meli

// Item is a single listing from the site search response.
type Item struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Price              float64   `json:"price"`
	OriginalPrice      float64   `json:"original_price"`
	Thumbnail          string    `json:"thumbnail"`
	Permalink          string    `json:"permalink"`
	Condition          string    `json:"condition"` // "new" or "used"
	CategoryID         string    `json:"category_id"`
	AvailableQuantity  int       `json:"available_quantity"`
	SoldQuantity       int       `json:"sold_quantity"`
	AcceptsMercadoPago bool      `json:"accepts_mercadopago"`
	Shipping           *Shipping `json:"shipping,omitempty"`
	Pictures           []Picture `json:"pictures,omitempty"`
}

// Shipping holds listing shipping information.
type Shipping struct {
	FreeShipping bool `json:"free_shipping"`
}

// Picture holds one listing image.
type Picture struct {
	URL string `json:"url"`
}

// User is a marketplace account as returned by the users endpoints.
type User struct {
	ID               int64             `json:"id"`
	Nickname         string            `json:"nickname"`
	Email            string            `json:"email"`
	SellerReputation *SellerReputation `json:"seller_reputation,omitempty"`
}

// SellerReputation marks an account as a seller. Present only on seller
// profiles.
type SellerReputation struct {
	PowerSellerStatus string `json:"power_seller_status"`
	LevelID           string `json:"level_id"`
}
