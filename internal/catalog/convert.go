package catalog

import (
	"github.com/mjtech-br/catalog-proxy/internal/meli"
	"github.com/mjtech-br/catalog-proxy/pkg/types"
)

// ToProducts converts raw search results into frontend products, assigning
// 1-based positions in result order.
func ToProducts(items []meli.Item) []types.Product {
	products := make([]types.Product, 0, len(items))
	for i := range items {
		products = append(products, toProduct(&items[i], i+1))
	}
	return products
}

func toProduct(item *meli.Item, position int) types.Product {
	p := types.Product{
		ID:                 item.ID,
		Title:              item.Title,
		Description:        Truncate(item.Title, 120),
		ImageURL:           ImageURL(item),
		Price:              FormatPrice(item.Price),
		Permalink:          item.Permalink,
		Condition:          "Usado",
		AvailableQuantity:  item.AvailableQuantity,
		SoldQuantity:       item.SoldQuantity,
		AcceptsMercadoPago: item.AcceptsMercadoPago,
		Category:           "Produto",
		Position:           position,
	}

	if item.Condition == "new" {
		p.Condition = "Novo"
	}

	if item.OriginalPrice > 0 {
		p.OldPrice = FormatPrice(item.OriginalPrice)
		p.Discount = DiscountLabel(item.Price, item.OriginalPrice)
	}

	if item.CategoryID != "" {
		p.Category = "Tecnologia"
	}

	if item.Shipping != nil {
		p.FreeShipping = item.Shipping.FreeShipping
	}

	return p
}
