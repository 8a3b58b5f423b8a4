package catalog

import "errors"

// ErrNotFound is returned when a resort slug or name is unknown.
var ErrNotFound = errors.New("catalog: resort not found")

// Resort is one entry of the agency's resort catalog.
type Resort struct {
	ID         string   `json:"id"`
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Atoll      string   `json:"atoll"`
	ImageURL   string   `json:"imageUrl"`
	Category   string   `json:"category"`
	Transfer   string   `json:"transfer"`
	StarRating int      `json:"starRating"`
	MealPlans  []string `json:"mealPlans"`
	Highlights []string `json:"highlights"`
}

// Validate checks the fields the catalog cannot default.
func (r Resort) Validate() error {
	if r.Slug == "" {
		return errors.New("catalog: slug is required")
	}
	if r.Name == "" {
		return errors.New("catalog: name is required")
	}
	if r.StarRating < 0 || r.StarRating > 5 {
		return errors.New("catalog: star rating must be between 0 and 5")
	}
	return nil
}
