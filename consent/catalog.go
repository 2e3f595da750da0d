package consent

import (
	"errors"
	"sort"
)

// ErrConfigMissing is returned when decision logic is invoked before a
// project's category/service configuration is available.
var ErrConfigMissing = errors.New("consent: project configuration not loaded")

// Category mirrors one cookie category of a project's public config.
type Category struct {
	ID          uint   `json:"id"`
	ProjectID   uint   `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	SortOrder   int    `json:"sort_order"`
}

// Service mirrors one cookie service of a project's public config.
type Service struct {
	ID         uint   `json:"id"`
	ProjectID  uint   `json:"project_id"`
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	ScriptCode string `json:"script_code"`
}

// Catalog is a read-only projection of a project's categories and services.
// It never mutates its inputs; all lookups are computed per call.
type Catalog struct {
	categories []Category
	services   []Service
}

// NewCatalog builds a catalog from a fetched project config. Nil slices mean
// the config never arrived and are rejected; empty slices are a valid
// project with no categories/services.
func NewCatalog(categories []Category, services []Service) (*Catalog, error) {
	if categories == nil || services == nil {
		return nil, ErrConfigMissing
	}
	cats := make([]Category, len(categories))
	copy(cats, categories)
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		return cats[i].ID < cats[j].ID
	})
	svcs := make([]Service, len(services))
	copy(svcs, services)
	sort.SliceStable(svcs, func(i, j int) bool { return svcs[i].ID < svcs[j].ID })
	return &Catalog{categories: cats, services: svcs}, nil
}

// Categories returns all categories ordered by sort order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Services returns all services ordered by id.
func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// NecessaryCategory returns the first required category in sort order.
// Projects are expected to have at most one; with none the necessary set is
// simply empty.
func (c *Catalog) NecessaryCategory() (Category, bool) {
	for _, cat := range c.categories {
		if cat.Required {
			return cat, true
		}
	}
	return Category{}, false
}

// RequiredCategoryIDs returns the ids of every required category. Selections
// must always include all of them, no matter which action produced them.
func (c *Catalog) RequiredCategoryIDs() []uint {
	var ids []uint
	for _, cat := range c.categories {
		if cat.Required {
			ids = append(ids, cat.ID)
		}
	}
	return ids
}

// AllCategoryNames returns every category name in sort order.
func (c *Catalog) AllCategoryNames() []string {
	names := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		names = append(names, cat.Name)
	}
	return names
}

// AllServiceIDs returns every service id in ascending order.
func (c *Catalog) AllServiceIDs() []uint {
	ids := make([]uint, 0, len(c.services))
	for _, svc := range c.services {
		ids = append(ids, svc.ID)
	}
	return ids
}

// ServicesInCategories returns the ids of services whose category is in the
// given set, in ascending order.
func (c *Catalog) ServicesInCategories(categoryIDs map[uint]bool) []uint {
	ids := make([]uint, 0, len(c.services))
	for _, svc := range c.services {
		if categoryIDs[svc.CategoryID] {
			ids = append(ids, svc.ID)
		}
	}
	return ids
}

// ServicesForCategoryNames resolves category names back to the services they
// contain. Used when replaying a stored consent detail blob.
func (c *Catalog) ServicesForCategoryNames(names []string) []Service {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	ids := make(map[uint]bool)
	for _, cat := range c.categories {
		if wanted[cat.Name] {
			ids[cat.ID] = true
		}
	}
	var out []Service
	for _, svc := range c.services {
		if ids[svc.CategoryID] {
			out = append(out, svc)
		}
	}
	return out
}

// CategoryNamesForIDs maps a selected id set to names in sort order.
func (c *Catalog) CategoryNamesForIDs(categoryIDs map[uint]bool) []string {
	names := make([]string, 0, len(categoryIDs))
	for _, cat := range c.categories {
		if categoryIDs[cat.ID] {
			names = append(names, cat.Name)
		}
	}
	return names
}
