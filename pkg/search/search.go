// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package search filters rendered endpoint cards by a free-text query.
//
// A card matches when the lowercased query is a substring of its
// lowercased title, path or description. Each field is checked on its
// own; the fields are never concatenated. The empty query matches every
// card.
package search

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/futureguide/api-docs/pkg/render"
)

var (
	searchQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docs_search_queries_total",
			Help: "Total number of filter passes over the endpoint cards",
		},
	)
	searchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docs_search_visible_cards",
			Help:    "Number of cards left visible by a filter pass",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)
)

// matcher holds a lowercased query. A cases.Caser is stateful, so each
// matcher owns its own.
type matcher struct {
	caser cases.Caser
	term  string
}

func newMatcher(query string) *matcher {
	c := cases.Lower(language.Und)
	return &matcher{caser: c, term: c.String(query)}
}

func (m *matcher) match(c *render.Card) bool {
	if m.term == "" {
		return true
	}
	for _, field := range []string{c.Title, c.Path, c.Description} {
		if strings.Contains(m.caser.String(field), m.term) {
			return true
		}
	}
	return false
}

// Match reports whether the card matches query.
func Match(c *render.Card, query string) bool {
	return newMatcher(query).match(c)
}

// Filter sets Visible on every card and returns how many stay visible.
// Running it again with the same query changes nothing.
func Filter(cards []*render.Card, query string) int {
	m := newMatcher(query)
	visible := 0
	for _, c := range cards {
		c.Visible = m.match(c)
		if c.Visible {
			visible++
		}
	}
	searchQueries.Inc()
	searchResults.Observe(float64(visible))
	return visible
}

// Matches returns the cards matching query without touching Visible.
func Matches(cards []*render.Card, query string) []*render.Card {
	m := newMatcher(query)
	out := make([]*render.Card, 0, len(cards))
	for _, c := range cards {
		if m.match(c) {
			out = append(out, c)
		}
	}
	return out
}
