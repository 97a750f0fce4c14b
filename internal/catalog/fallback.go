package catalog

import (
	"github.com/mjtech-br/catalog-proxy/pkg/types"
)

// fallbackCatalog is the fixed substitute feed served whenever the live
// path is unusable or empty. Content mirrors the store's usual stock so
// the frontend never renders an empty grid.
var fallbackCatalog = []types.Product{
	{
		ID:                 "fallback-1",
		Title:              "Mouse Gamer Sem Fio RGB 16000DPI",
		Description:        "Mouse gamer sem fio com iluminação RGB, 6 botões programáveis e sensor óptico de alta precisão",
		ImageURL:           "https://http2.mlstatic.com/D_NQ_NP_2X_787972-MLB76058379480_052024-F.webp",
		Price:              "R$ 89,90",
		OldPrice:           "R$ 129,90",
		Discount:           "31% OFF",
		Permalink:          "https://www.mercadolivre.com.br",
		Condition:          "Novo",
		AvailableQuantity:  15,
		SoldQuantity:       42,
		FreeShipping:       true,
		AcceptsMercadoPago: true,
		Category:           "Periféricos",
		Position:           1,
	},
	{
		ID:                 "fallback-2",
		Title:              "Teclado Mecânico Gamer RGB Switch Outemu",
		Description:        "Teclado mecânico gamer com switches Outemu Blue, iluminação RGB personalizável e construção em ABS",
		ImageURL:           "https://http2.mlstatic.com/D_NQ_NP_2X_798104-MLB77068584739_072024-F.webp",
		Price:              "R$ 199,90",
		OldPrice:           "R$ 299,90",
		Discount:           "33% OFF",
		Permalink:          "https://www.mercadolivre.com.br",
		Condition:          "Novo",
		AvailableQuantity:  8,
		SoldQuantity:       31,
		FreeShipping:       true,
		AcceptsMercadoPago: true,
		Category:           "Periféricos",
		Position:           2,
	},
	{
		ID:                 "fallback-3",
		Title:              "Headset Gamer 7.1 Surround Sound",
		Description:        "Headset gamer com som surround virtual 7.1, microfone com cancelamento de ruído e almofadas memory foam",
		ImageURL:           "https://http2.mlstatic.com/D_NQ_NP_2X_977033-MLB77392111353_082024-F.webp",
		Price:              "R$ 159,90",
		OldPrice:           "R$ 229,90",
		Discount:           "30% OFF",
		Permalink:          "https://www.mercadolivre.com.br",
		Condition:          "Novo",
		AvailableQuantity:  12,
		SoldQuantity:       28,
		FreeShipping:       false,
		AcceptsMercadoPago: true,
		Category:           "Áudio",
		Position:           3,
	},
	{
		ID:                 "fallback-4",
		Title:              "Monitor Gamer 24'' 144Hz 1ms",
		Description:        "Monitor gamer Full HD 24 polegadas, taxa de atualização 144Hz, tempo de resposta 1ms e painel VA",
		ImageURL:           "https://http2.mlstatic.com/D_NQ_NP_2X_814845-MLA74159063908_012024-F.webp",
		Price:              "R$ 899,90",
		OldPrice:           "R$ 1.199,90",
		Discount:           "25% OFF",
		Permalink:          "https://www.mercadolivre.com.br",
		Condition:          "Novo",
		AvailableQuantity:  5,
		SoldQuantity:       17,
		FreeShipping:       true,
		AcceptsMercadoPago: true,
		Category:           "Monitores",
		Position:           4,
	},
}

// FallbackProducts returns a fresh copy of the fallback catalog so callers
// cannot mutate the master records.
func FallbackProducts() []types.Product {
	out := make([]types.Product, len(fallbackCatalog))
	copy(out, fallbackCatalog)
	return out
}
