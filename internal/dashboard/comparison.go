package dashboard

// ComparisonSet is an ordered, deduplicated list of city names the user
// tracks side by side. Matching is case-sensitive on the stored name.
type ComparisonSet struct {
	cities []string
}

// NewComparisonSet creates a set over previously persisted city names.
func NewComparisonSet(cities []string) *ComparisonSet {
	return &ComparisonSet{cities: cities}
}

// Add appends city unless it is already present. It reports whether the set
// changed.
func (c *ComparisonSet) Add(city string) bool {
	for _, existing := range c.cities {
		if existing == city {
			return false
		}
	}
	c.cities = append(c.cities, city)
	return true
}

// Remove deletes the exact matching city. It reports whether the set changed.
func (c *ComparisonSet) Remove(city string) bool {
	for i, existing := range c.cities {
		if existing == city {
			c.cities = append(c.cities[:i], c.cities[i+1:]...)
			return true
		}
	}
	return false
}

// Cities returns a copy of the tracked city names in insertion order.
func (c *ComparisonSet) Cities() []string {
	out := make([]string, len(c.cities))
	copy(out, c.cities)
	return out
}
