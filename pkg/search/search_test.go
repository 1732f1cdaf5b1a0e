package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureguide/api-docs/pkg/catalog"
	"github.com/futureguide/api-docs/pkg/render"
)

func testCards() []*render.Card {
	return []*render.Card{
		{ID: "a", Title: "Login User", Path: "/api/auth/login", Description: "Authenticate a user", Visible: true},
		{ID: "b", Title: "Get Profile", Path: "/api/auth/profile", Description: "Returns the current user", Visible: true},
		{ID: "c", Title: "Delete Result", Path: "/api/archive/results/:id", Description: "Remove a LOGIN-free result", Visible: true},
		{ID: "d", Title: "Health", Path: "/health", Description: "", Visible: true},
	}
}

func visibleIDs(cards []*render.Card) []string {
	var ids []string
	for _, c := range cards {
		if c.Visible {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query shows all", "", []string{"a", "b", "c", "d"}},
		{"title match", "profile", []string{"b"}},
		{"case insensitive", "LOGIN", []string{"a", "c"}},
		{"path match", "/archive/", []string{"c"}},
		{"description match", "current user", []string{"b"}},
		{"no match", "billing", nil},
		{"whitespace is a literal", " ", []string{"a", "b", "c"}},
		{"fields are not concatenated", "userget", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := testCards()
			n := Filter(cards, tt.query)
			assert.Equal(t, tt.want, visibleIDs(cards))
			assert.Equal(t, len(tt.want), n)
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	cards := testCards()
	Filter(cards, "auth")
	first := visibleIDs(cards)
	Filter(cards, "auth")
	assert.Equal(t, first, visibleIDs(cards))

	Filter(cards, "")
	assert.Len(t, visibleIDs(cards), len(cards))
}

func TestMatch(t *testing.T) {
	c := &render.Card{Title: "Admin Login", Path: "/api/admin/login"}
	assert.True(t, Match(c, "admin"))
	assert.True(t, Match(c, "LoGiN"))
	assert.False(t, Match(c, "logout"))
	assert.True(t, Match(c, ""))
}

func TestMatches_DoesNotMutate(t *testing.T) {
	cards := testCards()
	got := Matches(cards, "health")
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].ID)
	assert.Len(t, visibleIDs(cards), len(cards))
}

func TestFilter_DefaultCatalogLogin(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	doc := render.NewDocument(cat)
	cards := doc.Cards()
	require.Len(t, cards, 98)

	n := Filter(cards, "login")
	assert.Equal(t, 3, n)

	var titles []string
	for _, c := range cards {
		if c.Visible {
			titles = append(titles, c.Title)
		}
	}
	assert.ElementsMatch(t, []string{"Login User", "Login User", "Admin Login"}, titles)

	assert.Equal(t, len(cards), Filter(cards, ""))
}
