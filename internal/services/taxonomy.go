package services

// Category buckets an overall score for dashboards and tag rendering.
type Category string

const (
	CategoryExcellent Category = "Excellent"
	CategoryGood      Category = "Good"
	CategoryModerate  Category = "Moderate"
	CategoryWeak      Category = "Weak"
)

// Categories lists every bucket from best to worst.
var Categories = []Category{CategoryExcellent, CategoryGood, CategoryModerate, CategoryWeak}

// Categorize maps a score to its category. Total over [0,100] and monotonic:
// a higher score never maps to a lower category.
func Categorize(score float64) Category {
	switch {
	case score >= 85:
		return CategoryExcellent
	case score >= 70:
		return CategoryGood
	case score >= 55:
		return CategoryModerate
	default:
		return CategoryWeak
	}
}

// Tier is the stable display token the frontend keys its styling off.
func (c Category) Tier() string {
	switch c {
	case CategoryExcellent:
		return "green"
	case CategoryGood:
		return "blue"
	case CategoryModerate:
		return "amber"
	default:
		return "red"
	}
}
