package uvexposure

// Category is the WHO exposure band for a UV index value.
type Category string

const (
	CategoryLow      Category = "low"
	CategoryModerate Category = "moderate"
	CategoryHigh     Category = "high"
	CategoryVeryHigh Category = "very_high"
	CategoryExtreme  Category = "extreme"
)

// CategoryFor maps a UV index onto its band. Negative input counts as low.
func CategoryFor(uvi float64) Category {
	switch {
	case uvi < 3:
		return CategoryLow
	case uvi < 6:
		return CategoryModerate
	case uvi < 8:
		return CategoryHigh
	case uvi < 11:
		return CategoryVeryHigh
	default:
		return CategoryExtreme
	}
}
