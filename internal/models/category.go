package models

// Category is an efficiency-bonus group. Two recipes crafted back to back in
// the same workshop earn the bonus when they share a category.
type Category int

const (
	PreservedFood Category = iota
	Attire
	Foodstuffs
	Confections
	Sundries
	Furnishings
	Arms
	Concoctions
	Ingredients
	Accessories
	Metalworks
	Woodworks
	Textiles
	CreatureCreations
	MarineMerchandise
	UnburiedTreasures
)

// CategoryCount is the number of distinct categories.
const CategoryCount = int(UnburiedTreasures) + 1

var categoryNames = [CategoryCount]string{
	PreservedFood:     "PreservedFood",
	Attire:            "Attire",
	Foodstuffs:        "Foodstuffs",
	Confections:       "Confections",
	Sundries:          "Sundries",
	Furnishings:       "Furnishings",
	Arms:              "Arms",
	Concoctions:       "Concoctions",
	Ingredients:       "Ingredients",
	Accessories:       "Accessories",
	Metalworks:        "Metalworks",
	Woodworks:         "Woodworks",
	Textiles:          "Textiles",
	CreatureCreations: "CreatureCreations",
	MarineMerchandise: "MarineMerchandise",
	UnburiedTreasures: "UnburiedTreasures",
}

var categoryByKey = func() map[string]Category {
	m := make(map[string]Category, CategoryCount)
	for i, name := range categoryNames {
		m[normalizeName(name)] = Category(i)
	}
	return m
}()

// String returns the category name.
func (c Category) String() string {
	if c < 0 || int(c) >= CategoryCount {
		return "Unknown"
	}
	return categoryNames[c]
}

// ParseCategory resolves a category name, ignoring case and separators.
func ParseCategory(name string) (Category, bool) {
	c, ok := categoryByKey[normalizeName(name)]
	return c, ok
}

// CategorySet is a bitmask of categories.
type CategorySet uint32

// NewCategorySet builds a set from the given categories.
func NewCategorySet(cats ...Category) CategorySet {
	var s CategorySet
	for _, c := range cats {
		s |= 1 << uint(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	return s&(1<<uint(c)) != 0
}

// Intersects reports whether the two sets share a category.
func (s CategorySet) Intersects(o CategorySet) bool {
	return s&o != 0
}

// Categories lists the members in enum order.
func (s CategorySet) Categories() []Category {
	var out []Category
	for c := 0; c < CategoryCount; c++ {
		if s.Has(Category(c)) {
			out = append(out, Category(c))
		}
	}
	return out
}
