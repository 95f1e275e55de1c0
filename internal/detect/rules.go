package detect

// The tables in this file are the fixed lookup data the heuristics run on.
// They are loaded once at detector construction and must never be mutated at
// runtime; extending a table requires no detector logic changes.

// keywordRule maps a field type to the phrases that suggest it
type keywordRule struct {
	FieldType FieldType
	Phrases   []string
}

// getKeywordRules returns the default field type keyword table. Longer, more
// specific phrases win over shorter ones when several match the same line.
func getKeywordRules() []keywordRule {
	return []keywordRule{
		{
			FieldType: FieldTypeSignature,
			Phrases: []string{
				"signature", "sign here", "authorized signature",
				"client signature", "employee signature", "contractor signature",
				"landlord signature", "tenant signature", "buyer signature",
				"seller signature", "witness signature",
			},
		},
		{
			FieldType: FieldTypeDateSigned,
			Phrases: []string{
				"date", "dated", "date signed", "effective date",
				"start date", "end date", "as of",
			},
		},
		{
			FieldType: FieldTypeName,
			Phrases: []string{
				"name", "print name", "printed name", "full name",
				"client name", "employee name", "contractor name",
				"landlord", "tenant", "buyer", "seller",
			},
		},
		{
			FieldType: FieldTypeEmail,
			Phrases:   []string{"email", "e-mail", "email address"},
		},
		{
			FieldType: FieldTypeInitials,
			Phrases:   []string{"initials", "initial here", "initial"},
		},
	}
}

// roleRule maps a role key to the keywords that indicate it. Table order
// breaks specificity ties: the first declared role wins.
type roleRule struct {
	RoleKey  string
	Keywords []string
}

// getRoleRules returns the default role inference table
func getRoleRules() []roleRule {
	return []roleRule{
		{RoleKey: "client", Keywords: []string{"client", "customer", "buyer", "purchaser", "party a", "first party"}},
		{RoleKey: "contractor", Keywords: []string{"contractor", "consultant", "freelancer", "vendor"}},
		{RoleKey: "employee", Keywords: []string{"employee", "worker", "staff", "team member"}},
		{RoleKey: "company", Keywords: []string{"company", "employer", "corporation", "business", "party b", "second party"}},
		{RoleKey: "landlord", Keywords: []string{"landlord", "lessor", "property owner", "owner"}},
		{RoleKey: "tenant", Keywords: []string{"tenant", "renter", "lessee", "occupant"}},
		{RoleKey: "seller", Keywords: []string{"seller", "vendor"}},
		{RoleKey: "borrower", Keywords: []string{"borrower", "debtor"}},
		{RoleKey: "lender", Keywords: []string{"lender", "creditor", "bank"}},
		{RoleKey: "witness", Keywords: []string{"witness"}},
		{RoleKey: "guarantor", Keywords: []string{"guarantor", "co-signer", "cosigner"}},
	}
}

// anchorTypeTokens maps anchor tag type tokens to field types. Long-form
// aliases are accepted alongside the canonical short tokens.
func getAnchorTypeTokens() map[string]FieldType {
	return map[string]FieldType{
		"sig":       FieldTypeSignature,
		"signature": FieldTypeSignature,
		"init":      FieldTypeInitials,
		"initials":  FieldTypeInitials,
		"date":      FieldTypeDateSigned,
		"text":      FieldTypeText,
		"name":      FieldTypeName,
		"email":     FieldTypeEmail,
		"check":     FieldTypeCheckbox,
		"checkbox":  FieldTypeCheckbox,
	}
}

// legacyRoleAlias resolves the legacy role tokens of the anchor grammar
type legacyRoleAlias struct {
	RoleKey  string
	IsSender bool
}

// getLegacyRoleAliases returns the backward-compatible role token table.
// Resolution is data-driven so adding aliases requires no parser changes.
func getLegacyRoleAliases() map[string]legacyRoleAlias {
	return map[string]legacyRoleAlias{
		"signer1":  {RoleKey: "signer_1"},
		"signer_1": {RoleKey: "signer_1"},
		"s1":       {RoleKey: "signer_1"},
		"signer2":  {RoleKey: "signer_2"},
		"signer_2": {RoleKey: "signer_2"},
		"s2":       {RoleKey: "signer_2"},
		"sender":   {IsSender: true},
	}
}

// checkboxGlyphs lists the Unicode characters treated as checkbox marks
func getCheckboxGlyphs() []rune {
	return []rune{'☐', '☑', '☒', '□', '▢', '▣'}
}

// fieldFootprint is the default size synthesized for a field of a given type
// when the source signal carries no usable extent of its own
type fieldFootprint struct {
	Width  float64
	Height float64
}

// getFieldFootprints returns the per-type default footprints
func getFieldFootprints() map[FieldType]fieldFootprint {
	return map[FieldType]fieldFootprint{
		FieldTypeSignature:  {Width: 150, Height: 40},
		FieldTypeInitials:   {Width: 60, Height: 30},
		FieldTypeName:       {Width: 100, Height: 20},
		FieldTypeEmail:      {Width: 120, Height: 20},
		FieldTypeDateSigned: {Width: 100, Height: 20},
		FieldTypeText:       {Width: 100, Height: 20},
		FieldTypeCheckbox:   {Width: 14, Height: 14},
	}
}

// getPlaceholders returns the per-type placeholder suggestions surfaced to
// reviewers alongside a candidate
func getPlaceholders() map[FieldType]string {
	return map[FieldType]string{
		FieldTypeSignature:  "Sign here",
		FieldTypeInitials:   "Initial here",
		FieldTypeName:       "Full name",
		FieldTypeEmail:      "name@example.com",
		FieldTypeDateSigned: "MM/DD/YYYY",
		FieldTypeText:       "Enter text",
		FieldTypeCheckbox:   "",
	}
}

// strategyPriority resolves type/assignment conflicts between overlapping
// candidates; the higher value wins
func getStrategyPriority() map[StrategyName]int {
	return map[StrategyName]int{
		StrategyAnchorTag:      60,
		StrategySenderVariable: 50,
		StrategyFormWidget:     40,
		StrategyKeyword:        30,
		StrategyUnderline:      20,
		StrategyShape:          10,
	}
}
