package model

// Category is one of the fixed equipment groupings shown on the dashboard.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Category identifiers.
const (
	CategoryBlues        = "blues"
	CategoryOCP          = "ocp"
	CategoryPT           = "pt"
	CategoryDrill        = "drill"
	CategoryMarksmanship = "marksmanship"
	CategoryAwards       = "awards"
	CategoryField        = "field"
)

var categories = []Category{
	{ID: CategoryBlues, Name: "Blues Uniform", Icon: "👔"},
	{ID: CategoryOCP, Name: "OCP Uniform", Icon: "🪖"},
	{ID: CategoryPT, Name: "PT Gear", Icon: "🏃"},
	{ID: CategoryDrill, Name: "Drill Team", Icon: "🎖️"},
	{ID: CategoryMarksmanship, Name: "Marksmanship", Icon: "🎯"},
	{ID: CategoryAwards, Name: "Awards & Insignia", Icon: "🏅"},
	{ID: CategoryField, Name: "Field Equipment", Icon: "⛺"},
}

// Categories returns the category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory returns the category with the given id.
func LookupCategory(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ValidCategory reports whether id names a known category.
func ValidCategory(id string) bool {
	_, ok := LookupCategory(id)
	return ok
}
