package layout

import "math"

// Comparison summarizes a before/after pair of layouts.
type Comparison struct {
	Before      int     `json:"before" yaml:"before"`
	After       int     `json:"after" yaml:"after"`
	Extra       int     `json:"extra" yaml:"extra"`
	Improvement int     `json:"improvement" yaml:"improvement"` // percent, rounded
	BeforeFill  float64 `json:"beforeFill" yaml:"before_fill"`
	AfterFill   float64 `json:"afterFill" yaml:"after_fill"`
}

// Compare counts how many more boxes after holds than before.
func Compare(before, after *Layout) Comparison {
	c := Comparison{
		Before:     before.Len(),
		After:      after.Len(),
		BeforeFill: before.Utilization(),
		AfterFill:  after.Utilization(),
	}
	c.Extra = c.After - c.Before
	if c.Before > 0 {
		c.Improvement = int(math.Round(float64(c.Extra) / float64(c.Before) * 100))
	}
	return c
}

// CompareCached compares the manual and optimized layouts from cache.
func CompareCached(c *Cache) (Comparison, error) {
	before, err := c.Get(Inefficient)
	if err != nil {
		return Comparison{}, err
	}
	after, err := c.Get(Efficient)
	if err != nil {
		return Comparison{}, err
	}
	return Compare(before, after), nil
}
