package consent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog(
		[]Category{
			{ID: 3, Name: "Marketing Cookies", SortOrder: 3},
			{ID: 1, Name: "Notwendige Cookies", Required: true, SortOrder: 1},
			{ID: 2, Name: "Statistik Cookies", SortOrder: 2},
		},
		[]Service{
			{ID: 30, CategoryID: 3, Name: "Meta Pixel"},
			{ID: 10, CategoryID: 1, Name: "Session"},
			{ID: 20, CategoryID: 2, Name: "Matomo"},
			{ID: 21, CategoryID: 2, Name: "Google Analytics"},
		},
	)
	require.NoError(t, err)
	return cat
}

func TestNewCatalogMissingConfig(t *testing.T) {
	_, err := NewCatalog(nil, []Service{})
	assert.ErrorIs(t, err, ErrConfigMissing)

	_, err = NewCatalog([]Category{}, nil)
	assert.ErrorIs(t, err, ErrConfigMissing)

	cat, err := NewCatalog([]Category{}, []Service{})
	require.NoError(t, err)
	assert.Empty(t, cat.AllCategoryNames())
}

func TestCatalogProjections(t *testing.T) {
	cat := fixtureCatalog(t)

	assert.Equal(t, []string{"Notwendige Cookies", "Statistik Cookies", "Marketing Cookies"}, cat.AllCategoryNames())
	assert.Equal(t, []uint{10, 20, 21, 30}, cat.AllServiceIDs())

	necessary, ok := cat.NecessaryCategory()
	require.True(t, ok)
	assert.Equal(t, uint(1), necessary.ID)

	assert.Equal(t, []uint{20, 21}, cat.ServicesInCategories(map[uint]bool{2: true}))
	assert.Empty(t, cat.ServicesInCategories(map[uint]bool{}))
}

func TestDecide(t *testing.T) {
	cat := fixtureCatalog(t)

	tests := []struct {
		name     string
		action   Action
		checked  []uint
		want     Selection
	}{
		{
			name:   "accept all",
			action: ActionAcceptAll,
			want: Selection{
				AcceptedServices:      []uint{10, 20, 21, 30},
				AcceptedCategoryNames: []string{"Notwendige Cookies", "Statistik Cookies", "Marketing Cookies"},
				IsAcceptAll:           true,
			},
		},
		{
			name:   "necessary only",
			action: ActionNecessaryOnly,
			want: Selection{
				AcceptedServices:      []uint{10},
				AcceptedCategoryNames: []string{"Notwendige Cookies"},
				IsAcceptAll:           false,
			},
		},
		{
			name:   "reject all aliases necessary only",
			action: ActionRejectAll,
			want: Selection{
				AcceptedServices:      []uint{10},
				AcceptedCategoryNames: []string{"Notwendige Cookies"},
				IsAcceptAll:           false,
			},
		},
		{
			name:    "custom selection keeps statistics",
			action:  ActionAcceptSelection,
			checked: []uint{2},
			want: Selection{
				AcceptedServices:      []uint{10, 20, 21},
				AcceptedCategoryNames: []string{"Notwendige Cookies", "Statistik Cookies"},
				IsAcceptAll:           false,
			},
		},
		{
			name:    "custom selection with nothing checked still includes necessary",
			action:  ActionAcceptSelection,
			checked: nil,
			want: Selection{
				AcceptedServices:      []uint{10},
				AcceptedCategoryNames: []string{"Notwendige Cookies"},
				IsAcceptAll:           false,
			},
		},
		{
			name:    "custom selection ignores unknown category ids",
			action:  ActionAcceptSelection,
			checked: []uint{2, 99},
			want: Selection{
				AcceptedServices:      []uint{10, 20, 21},
				AcceptedCategoryNames: []string{"Notwendige Cookies", "Statistik Cookies"},
				IsAcceptAll:           false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decide(cat, tt.action, tt.checked)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecideIdempotent(t *testing.T) {
	cat := fixtureCatalog(t)

	for _, action := range []Action{ActionAcceptAll, ActionNecessaryOnly, ActionAcceptSelection} {
		first, err := Decide(cat, action, []uint{3, 2})
		require.NoError(t, err)
		second, err := Decide(cat, action, []uint{2, 3})
		require.NoError(t, err)
		assert.Equal(t, first, second, "action %s must be deterministic", action)
	}
}

func TestDecideAcceptAllEquivalence(t *testing.T) {
	cat := fixtureCatalog(t)

	all, err := Decide(cat, ActionAcceptAll, nil)
	require.NoError(t, err)
	everyChecked, err := Decide(cat, ActionAcceptSelection, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, all, everyChecked)
}

func TestDecideNecessityInvariant(t *testing.T) {
	cat := fixtureCatalog(t)

	for _, action := range []Action{ActionAcceptAll, ActionNecessaryOnly, ActionRejectAll, ActionAcceptSelection} {
		sel, err := Decide(cat, action, nil)
		require.NoError(t, err)
		assert.Contains(t, sel.AcceptedCategoryNames, "Notwendige Cookies", "action %s", action)
		assert.Contains(t, sel.AcceptedServices, uint(10), "action %s", action)
	}
}

func TestDecideMultipleRequiredCategories(t *testing.T) {
	cat, err := NewCatalog(
		[]Category{
			{ID: 1, Name: "Necessary", Required: true, SortOrder: 1},
			{ID: 2, Name: "Legal", Required: true, SortOrder: 2},
			{ID: 3, Name: "Marketing", SortOrder: 3},
		},
		[]Service{
			{ID: 1, CategoryID: 1},
			{ID: 2, CategoryID: 2},
			{ID: 3, CategoryID: 3},
		},
	)
	require.NoError(t, err)

	sel, err := Decide(cat, ActionAcceptSelection, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Necessary", "Legal"}, sel.AcceptedCategoryNames)
	assert.Equal(t, []uint{1, 2}, sel.AcceptedServices)
}

func TestDecideZeroCategories(t *testing.T) {
	cat, err := NewCatalog([]Category{}, []Service{})
	require.NoError(t, err)

	for _, action := range []Action{ActionNecessaryOnly, ActionAcceptSelection} {
		sel, derr := Decide(cat, action, []uint{1})
		require.NoError(t, derr)
		assert.Empty(t, sel.AcceptedServices)
		assert.Empty(t, sel.AcceptedCategoryNames)
		assert.False(t, sel.IsAcceptAll)
	}
}

func TestDecideNilCatalog(t *testing.T) {
	_, err := Decide(nil, ActionAcceptAll, nil)
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		raw     string
		want    Action
		wantErr bool
	}{
		{"acceptAll", ActionAcceptAll, false},
		{"acceptSelection", ActionAcceptSelection, false},
		{"necessaryOnly", ActionNecessaryOnly, false},
		{"rejectAll", ActionRejectAll, false},
		{"closeBanner", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAction(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
