package consent

import "fmt"

// Action is a visitor decision, matching the data-action attributes the
// banner buttons carry.
type Action string

const (
	ActionAcceptAll       Action = "acceptAll"
	ActionAcceptSelection Action = "acceptSelection"
	ActionNecessaryOnly   Action = "necessaryOnly"
	ActionRejectAll       Action = "rejectAll"
)

// ParseAction maps a raw data-action string to an Action.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionAcceptAll, ActionAcceptSelection, ActionNecessaryOnly, ActionRejectAll:
		return Action(raw), nil
	}
	return "", fmt.Errorf("consent: unknown action %q", raw)
}

// Selection is the canonical outcome of a decision: service ids ascending,
// category names in sort order. Running the same action against the same
// catalog always yields an identical Selection.
type Selection struct {
	AcceptedServices      []uint   `json:"accepted_services"`
	AcceptedCategoryNames []string `json:"accepted_category_names"`
	IsAcceptAll           bool     `json:"is_accept_all"`
}

// Decide computes the selection for a visitor action. checkedCategoryIDs is
// only consulted for ActionAcceptSelection and is never trusted to contain
// the required categories: those are force-included here, not in the UI.
func Decide(cat *Catalog, action Action, checkedCategoryIDs []uint) (Selection, error) {
	if cat == nil {
		return Selection{}, ErrConfigMissing
	}

	switch action {
	case ActionAcceptAll:
		return cat.selectionFor(allCategoryIDSet(cat)), nil
	case ActionNecessaryOnly, ActionRejectAll:
		return cat.selectionFor(requiredIDSet(cat)), nil
	case ActionAcceptSelection:
		ids := requiredIDSet(cat)
		known := allCategoryIDSet(cat)
		for _, id := range checkedCategoryIDs {
			if known[id] {
				ids[id] = true
			}
		}
		return cat.selectionFor(ids), nil
	}
	return Selection{}, fmt.Errorf("consent: unknown action %q", action)
}

func (c *Catalog) selectionFor(categoryIDs map[uint]bool) Selection {
	names := c.CategoryNamesForIDs(categoryIDs)
	return Selection{
		AcceptedServices:      c.ServicesInCategories(categoryIDs),
		AcceptedCategoryNames: names,
		// True exactly when the selection covers the project's full
		// category set. A project without categories never accepts all.
		IsAcceptAll: len(c.categories) > 0 && len(names) == len(c.categories),
	}
}

func allCategoryIDSet(c *Catalog) map[uint]bool {
	ids := make(map[uint]bool, len(c.categories))
	for _, cat := range c.categories {
		ids[cat.ID] = true
	}
	return ids
}

func requiredIDSet(c *Catalog) map[uint]bool {
	ids := make(map[uint]bool)
	for _, id := range c.RequiredCategoryIDs() {
		ids[id] = true
	}
	return ids
}
