package analysis

import "strings"

// Disposition codes structurally excluded from density analysis. These mark
// case types that do not reflect a carrier screening failure (e.g. refusals
// decided only at the border), so counting them would penalize carriers for
// outcomes they could not have prevented.
var ExcludeCodes = map[string]bool{
	"B1n": true,
	"B2n": true,
	"C4n": true,
	"C5n": true,
	"C8":  true,
	"D1n": true,
	"D2n": true,
	"E":   true,
	"F1n": true,
	"G":   true,
	"H":   true,
	"I":   true,
}

// Category constants for disposition-code classification.
const (
	CategoryDocumentation = "Documentation"
	CategoryFraud         = "Fraud"
	CategoryVisa          = "Visa"
	CategorySecurity      = "Security"
	CategoryOther         = "Other"
)

// refusalCategories maps each analysis category to its disposition codes.
// Evaluated in a fixed order so classification stays deterministic.
var refusalCategories = []struct {
	name  string
	codes []string
}{
	{CategoryDocumentation, []string{"A", "A1", "A2", "A3", "A4", "A5"}},
	{CategoryFraud, []string{"B", "B1", "B1e", "B2", "B2e"}},
	{CategoryVisa, []string{"C1", "C2", "C3", "C4", "C4e", "C5", "C5e", "C6", "C7"}},
	{CategorySecurity, []string{"D1", "D2", "D2e", "F", "F1", "F1e", "F2"}},
}

// codeDescriptions holds human-readable descriptions for disposition codes.
var codeDescriptions = map[string]string{
	"A":     "No valid travel document",
	"A1":    "No travel document",
	"A2":    "Counterfeit travel document",
	"A3":    "Expired travel document",
	"A4":    "Incomplete travel document",
	"A5":    "Wrong travel document",
	"B":     "Falsified document",
	"B1":    "Falsified travel document",
	"B1e":   "Falsified travel document (detected)",
	"B2":    "Falsified visa or residence permit",
	"B2e":   "Falsified visa (detected)",
	"C1":    "No valid visa or residence permit",
	"C2":    "Falsified visa (already used)",
	"C3":    "Visa/permit issued for another member state",
	"C4":    "Visa already annulled",
	"C4e":   "Visa annulled (detected)",
	"C5":    "Visa annulled at border crossing",
	"C5e":   "Visa annulled at border crossing (detected)",
	"C6":    "Visa overstay",
	"C7":    "Purpose of stay not substantiated",
	"D1":    "Entry ban (SIS)",
	"D2":    "National entry ban",
	"D2e":   "National entry ban (detected)",
	"F":     "Threat to public order",
	"F1":    "Threat to public order or security",
	"F1e":   "Threat to public order (detected)",
	"F2":    "Threat to public health",
	"Other": "Other reason",
}

// IncludeCode reports whether a disposition code participates in density
// analysis: it must be present and not structurally excluded.
func IncludeCode(code string) bool {
	return code != "" && !ExcludeCodes[code]
}

// ClassifyCode maps a disposition code to its analysis category. Codes match
// either verbatim or with trailing 'e'/'n' suffix runes stripped; anything
// unrecognized falls into CategoryOther.
func ClassifyCode(code string) string {
	stripped := strings.TrimRight(code, "en")
	for _, cat := range refusalCategories {
		for _, c := range cat.codes {
			if code == c || stripped == c {
				return cat.name
			}
		}
	}
	return CategoryOther
}

// DescribeCode returns the human-readable description for a disposition code,
// falling back to the suffix-stripped form, then "Unknown".
func DescribeCode(code string) string {
	if d, ok := codeDescriptions[code]; ok {
		return d
	}
	if d, ok := codeDescriptions[strings.TrimRight(code, "en")]; ok {
		return d
	}
	return "Unknown"
}
