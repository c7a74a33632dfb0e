// CLAUDE:SUMMARY SKU/ASIN/UPC/model-number hint extraction from page text.
package snapshot

import "regexp"

// skuPatterns run in a fixed order; match position breaks ties within a
// pattern. The first capture group is the identifier.
var skuPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:SKU|sku|Sku)[:\s#-]*([A-Z0-9][\w-]{2,30})\b`),
	regexp.MustCompile(`\b(?:ASIN|asin)[:\s#-]*([A-Z0-9]{10})\b`),
	regexp.MustCompile(`\b(?:UPC|upc|EAN|ean|ISBN|isbn)[:\s#-]*([\d-]{8,17})\b`),
	regexp.MustCompile(`\b(?:Item|Model|Part)\s*(?:#|No\.?|Number)?[:\s-]*([A-Z0-9][\w-]{2,30})\b`),
}

// SkuHints collects product-identifier candidates from page text, in pattern
// then position order, deduplicated by exact string equality with the first
// occurrence kept.
func SkuHints(text string) []string {
	var hints []string
	seen := make(map[string]struct{})
	for _, pat := range skuPatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			id := m[1]
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			hints = append(hints, id)
		}
	}
	return hints
}
