package enums

import "fmt"

// DietaryOption tags a dish with a dietary property.
type DietaryOption string

const (
	DietaryOptionVegetarian DietaryOption = "vegetarian"
	DietaryOptionVegan      DietaryOption = "vegan"
	DietaryOptionGlutenFree DietaryOption = "gluten-free"
	DietaryOptionDairyFree  DietaryOption = "dairy-free"
	DietaryOptionNutFree    DietaryOption = "nut-free"
	DietaryOptionHalal      DietaryOption = "halal"
	DietaryOptionKosher     DietaryOption = "kosher"
)

var validDietaryOptions = []DietaryOption{
	DietaryOptionVegetarian,
	DietaryOptionVegan,
	DietaryOptionGlutenFree,
	DietaryOptionDairyFree,
	DietaryOptionNutFree,
	DietaryOptionHalal,
	DietaryOptionKosher,
}

// String implements fmt.Stringer.
func (d DietaryOption) String() string {
	return string(d)
}

// IsValid reports whether the value belongs to the fixed enumeration.
func (d DietaryOption) IsValid() bool {
	for _, candidate := range validDietaryOptions {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDietaryOption converts raw input into a DietaryOption.
func ParseDietaryOption(value string) (DietaryOption, error) {
	for _, candidate := range validDietaryOptions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dietary option %q", value)
}

// FilterDietaryOptions keeps only the values belonging to the enumeration,
// preserving input order. Invalid entries are dropped silently.
func FilterDietaryOptions(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		if seen[v] {
			continue
		}
		if DietaryOption(v).IsValid() {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}
