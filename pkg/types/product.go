// Package types defines the domain types shared across catalog-proxy.
package types

// Product is a single normalized listing in the shape the frontend
// consumes. JSON field names follow the established frontend contract.
type Product struct {
	ID                 string `json:"id"                  doc:"Listing identifier"`
	Title              string `json:"title"               doc:"Listing title"`
	Description        string `json:"description"         doc:"Short description, truncated to 120 characters"`
	ImageURL           string `json:"image"               doc:"Best available image URL"`
	Price              string `json:"price"               doc:"Formatted BRL price"  example:"R$ 89,90"`
	OldPrice           string `json:"oldPrice,omitempty"  doc:"Formatted original price, when discounted"`
	Discount           string `json:"discount,omitempty"  doc:"Discount label"       example:"31% OFF"`
	Permalink          string `json:"link"                doc:"Listing page URL"`
	Condition          string `json:"condition"           doc:"Novo or Usado"`
	AvailableQuantity  int    `json:"available_quantity"  doc:"Units in stock"`
	SoldQuantity       int    `json:"sold_quantity"       doc:"Units sold"`
	FreeShipping       bool   `json:"free_shipping"       doc:"Whether shipping is free"`
	AcceptsMercadoPago bool   `json:"accepts_mercadopago" doc:"Whether the listing accepts Mercado Pago"`
	Category           string `json:"category"            doc:"Display category label"`
	Position           int    `json:"position"            doc:"1-based rank in the feed"`
}
