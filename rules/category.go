// CLAUDE:SUMMARY Product categories and the per-category rule-set lookup.
package rules

// Category selects the product vertical being audited.
type Category string

const (
	CategoryTextiles    Category = "textiles"
	CategoryChildren    Category = "children"
	CategoryCosmetics   Category = "cosmetics"
	CategoryElectronics Category = "electronics"
	CategoryGeneral     Category = "general"
)

// ParseCategory maps a string to a known category, reporting whether it was
// recognized. Unknown input maps to CategoryGeneral.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case CategoryTextiles, CategoryChildren, CategoryCosmetics, CategoryElectronics, CategoryGeneral:
		return c, true
	}
	return CategoryGeneral, false
}

// ruleSet binds the catalogs a category is evaluated against.
type ruleSet struct {
	groups []FieldGroup
	claims []ClaimKeyword
}

// rulesFor is the category strategy hook. Every category currently shares
// the default catalogs; category-specific sets (e.g. stricter disclosure for
// children's products) register here rather than branching inside detection.
func rulesFor(Category) ruleSet {
	return ruleSet{groups: fieldGroups, claims: claimKeywords}
}
