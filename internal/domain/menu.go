package domain

// MenuItem represents a bookable service or add-on
type MenuItem struct {
	ID              int64
	Name            string
	NameEn          *string
	DurationMinutes int
	Price           float64
	Description     *string
	DisplayOrder    int
}
