package catalog

import "strings"

const (
	// MinQueryLength is the shortest query that produces suggestions.
	MinQueryLength = 2
	// MaxSuggestions caps the suggestion list.
	MaxSuggestions = 5
)

// Catalog is an immutable, ordered set of resorts. It is loaded once at
// startup and shared read-only by every wizard.
type Catalog struct {
	resorts []Resort
	bySlug  map[string]int
	byName  map[string]int
}

// New copies resorts into a catalog. Wizards select resorts by display name,
// so a later resort is dropped when its slug or its name is already taken.
func New(resorts []Resort) *Catalog {
	c := &Catalog{
		resorts: make([]Resort, 0, len(resorts)),
		bySlug:  make(map[string]int, len(resorts)),
		byName:  make(map[string]int, len(resorts)),
	}
	for _, r := range resorts {
		if _, dup := c.bySlug[r.Slug]; dup {
			continue
		}
		if _, dup := c.byName[r.Name]; dup {
			continue
		}
		c.bySlug[r.Slug] = len(c.resorts)
		c.byName[r.Name] = len(c.resorts)
		c.resorts = append(c.resorts, clone(r))
	}
	return c
}

// Len returns the number of resorts.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.resorts)
}

// All returns a copy of every resort in catalog order.
func (c *Catalog) All() []Resort {
	if c == nil {
		return nil
	}
	out := make([]Resort, len(c.resorts))
	for i, r := range c.resorts {
		out[i] = clone(r)
	}
	return out
}

// BySlug looks a resort up by slug.
func (c *Catalog) BySlug(slug string) (Resort, bool) {
	if c == nil {
		return Resort{}, false
	}
	i, ok := c.bySlug[slug]
	if !ok {
		return Resort{}, false
	}
	return clone(c.resorts[i]), true
}

// ByName looks a resort up by its exact display name.
func (c *Catalog) ByName(name string) (Resort, bool) {
	if c == nil {
		return Resort{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return Resort{}, false
	}
	return clone(c.resorts[i]), true
}

// Search returns up to MaxSuggestions resorts whose name contains query,
// ignoring case. Names listed in exclude are skipped. Queries shorter than
// MinQueryLength (after trimming) return nothing.
func (c *Catalog) Search(query string, exclude []string) []Resort {
	q := strings.ToLower(strings.TrimSpace(query))
	if c == nil || len([]rune(q)) < MinQueryLength {
		return nil
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}

	var out []Resort
	for _, r := range c.resorts {
		if _, excluded := skip[r.Name]; excluded {
			continue
		}
		if !strings.Contains(strings.ToLower(r.Name), q) {
			continue
		}
		out = append(out, clone(r))
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

func clone(r Resort) Resort {
	r.MealPlans = append([]string(nil), r.MealPlans...)
	r.Highlights = append([]string(nil), r.Highlights...)
	return r
}
