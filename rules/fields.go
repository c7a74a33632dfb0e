// CLAUDE:SUMMARY Static disclosure-field catalog: 4 groups, 12 fields, 2 required.
// Package rules evaluates a page snapshot against the disclosure checklist:
// which expected product fields are present, and which marketing-claim
// keywords appear without substantiation.
//
// The field and claim catalogs are plain package-level data, loaded once and
// read-only for the program's lifetime, so the rule set stays testable and
// extensible without touching the matching logic.
package rules

// FieldDefinition is one checklist item of expected product disclosure.
type FieldDefinition struct {
	Key      string `json:"key"`
	Required bool   `json:"required"`
}

// FieldGroup clusters related field definitions.
type FieldGroup struct {
	Group  string            `json:"group"`
	Fields []FieldDefinition `json:"fields"`
}

// fieldGroups is the fixed disclosure checklist: 4 groups, 12 fields,
// keys globally unique. Never mutated at runtime.
var fieldGroups = []FieldGroup{
	{
		Group: "Identity & Contacts",
		Fields: []FieldDefinition{
			{Key: "product_name", Required: true},
			{Key: "brand", Required: true},
			{Key: "manufacturer_name", Required: false},
			{Key: "manufacturer_address", Required: false},
			{Key: "contact_email_or_url", Required: false},
		},
	},
	{
		Group: "Composition & Origin",
		Fields: []FieldDefinition{
			{Key: "materials", Required: false},
			{Key: "country_of_origin", Required: false},
		},
	},
	{
		Group: "Safety & Use",
		Fields: []FieldDefinition{
			{Key: "warnings", Required: false},
			{Key: "instructions", Required: false},
			{Key: "care_instructions", Required: false},
		},
	},
	{
		Group: "Claims & Evidence",
		Fields: []FieldDefinition{
			{Key: "marketing_claims", Required: false},
			{Key: "certifications", Required: false},
		},
	},
}

// FieldGroups returns the disclosure checklist in catalog order.
func FieldGroups() []FieldGroup {
	return fieldGroups
}

// FieldCount returns the total number of catalogued fields.
func FieldCount() int {
	n := 0
	for _, g := range fieldGroups {
		n += len(g.Fields)
	}
	return n
}
