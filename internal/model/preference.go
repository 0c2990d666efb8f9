package model

type DietaryPreference string

const (
	PreferenceVegetarian    = DietaryPreference("Vegetarian")
	PreferenceEggetarian    = DietaryPreference("Eggetarian")
	PreferenceNonVegetarian = DietaryPreference("Non-Vegetarian")
)

func ParseDietaryPreference(s string) DietaryPreference {
	switch s {
	case "Vegetarian":
		return PreferenceVegetarian
	case "Eggetarian":
		return PreferenceEggetarian
	default:
		return PreferenceNonVegetarian
	}
}
