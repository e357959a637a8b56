package geography

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/ports"
)

var _ ports.LocationRepository = (*Catalog)(nil)

// Catalog is an immutable in-memory set of annotated locations keyed by code.
type Catalog struct {
	byCode map[string]domain.ExtendedLocation
	codes  []string
}

// NewCatalog indexes locs by code. Codes are normalized to lower case and must
// be unique and non-empty.
func NewCatalog(locs []domain.ExtendedLocation) (*Catalog, error) {
	c := &Catalog{byCode: make(map[string]domain.ExtendedLocation, len(locs))}

	for i, l := range locs {
		code := strings.ToLower(strings.TrimSpace(l.Code))
		if code == "" {
			return nil, fmt.Errorf("new catalog: location at index %d has empty code", i)
		}
		if !l.Continent.Valid() {
			return nil, fmt.Errorf("new catalog: location %q has unknown continent %q", code, l.Continent)
		}
		if _, dup := c.byCode[code]; dup {
			return nil, fmt.Errorf("new catalog: duplicate code %q", code)
		}
		l.Code = code
		c.byCode[code] = l
		c.codes = append(c.codes, code)
	}
	sort.Strings(c.codes)

	return c, nil
}

// Default returns a catalog built from the bundled reference locations.
func Default() *Catalog {
	c, err := NewCatalog(Builtin())
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the location stored under code.
func (c *Catalog) Lookup(code string) (domain.ExtendedLocation, bool) {
	l, ok := c.byCode[strings.ToLower(strings.TrimSpace(code))]
	return l, ok
}

func (c *Catalog) FindLocation(_ context.Context, code string) (domain.ExtendedLocation, error) {
	l, ok := c.Lookup(code)
	if !ok {
		return domain.ExtendedLocation{}, fmt.Errorf("find location %q: %w", code, domain.ErrUnknownLocation)
	}
	return l, nil
}

func (c *Catalog) ListLocations(context.Context) ([]domain.ExtendedLocation, error) {
	out := make([]domain.ExtendedLocation, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.byCode[code])
	}
	return out, nil
}

// Resolve returns the catalog entry sitting at the same coordinates as loc,
// or a heuristically annotated location when there is none.
func (c *Catalog) Resolve(loc domain.Location) domain.ExtendedLocation {
	for _, code := range c.codes {
		if l := c.byCode[code]; l.SameCoordinates(loc) {
			return l
		}
	}
	return Annotate(loc)
}

func (c *Catalog) Len() int { return len(c.codes) }
