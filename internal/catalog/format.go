// Package catalog turns raw Mercado Livre listings into display-ready
// products and supplies the static fallback catalog.
package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mjtech-br/catalog-proxy/internal/meli"
)

const (
	missingDescription = "Descrição não disponível"
	placeholderBase    = "https://via.placeholder.com/300x300/2a2a2a/4a90e2?text="
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// Truncate limits s to max runes, appending an ellipsis when cut.
// Empty input yields a fixed placeholder.
func Truncate(s string, max int) string {
	if s == "" {
		return missingDescription
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// FormatPrice renders v as a Brazilian Real currency string
// ("R$ 1.199,90"). Zero or absent amounts render as "R$ 0,00".
func FormatPrice(v float64) string {
	if v == 0 {
		return "R$ 0,00"
	}
	return brPrinter.Sprintf("R$ %.2f", v)
}

// DiscountLabel returns the rounded percentage drop from original to
// current ("31% OFF"), or "" when there is no original price or no actual
// drop.
func DiscountLabel(current, original float64) string {
	if original <= 0 || original <= current {
		return ""
	}
	pct := math.Round((original - current) / original * 100)
	return strconv.Itoa(int(pct)) + "% OFF"
}

// ImageURL picks the best image for an item: the first full picture when
// present, then the thumbnail upgraded to the high-quality marker and
// forced onto https, then a generated placeholder embedding the title.
func ImageURL(item *meli.Item) string {
	if len(item.Pictures) > 0 && item.Pictures[0].URL != "" {
		return item.Pictures[0].URL
	}

	if item.Thumbnail != "" {
		u := strings.Replace(item.Thumbnail, "I.jpg", "F.jpg", 1)
		return strings.Replace(u, "http://", "https://", 1)
	}

	title := item.Title
	if r := []rune(title); len(r) > 20 {
		title = string(r[:20])
	}
	return placeholderBase + url.QueryEscape(title)
}
