package valueobjects

import "fmt"

// Category classifies the trade a ticket belongs to. The set mirrors the
// service categories offered by the product; assets are referenced separately.
type Category string

const (
	CategoryElectrical Category = "electrical"
	CategoryPlumbing   Category = "plumbing"
	CategoryHVAC       Category = "hvac"
	CategoryCarpentry  Category = "carpentry"
	CategoryCleaning   Category = "cleaning"
	CategoryGeneral    Category = "general"
)

var validCategories = map[Category]bool{
	CategoryElectrical: true,
	CategoryPlumbing:   true,
	CategoryHVAC:       true,
	CategoryCarpentry:  true,
	CategoryCleaning:   true,
	CategoryGeneral:    true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
