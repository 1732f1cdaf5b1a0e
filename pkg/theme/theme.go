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

// Package theme holds the light/dark display preference of the site.
//
// The preference lives in a single key ("theme") of a Store. MemoryStore
// backs tests and the CLI; CookieStore backs the HTTP server, where the
// browser script mirrors the same value into localStorage.
//
//	pref := theme.NewPreference(theme.NewCookieStore(w, r))
//	current := pref.Init()
//	next, err := pref.Toggle()
//
// Any stored value other than "dark" reads as light.
package theme

import (
	"fmt"
	"strings"
)

// Key is the storage slot holding the preference.
const Key = "theme"

// Theme is the display mode.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used when no valid preference is stored.
const Default = Light

// Parse maps a stored value to a Theme. Unrecognized input is Light.
func Parse(s string) Theme {
	if strings.TrimSpace(s) == string(Dark) {
		return Dark
	}
	return Light
}

// String implements fmt.Stringer.
func (t Theme) String() string {
	return string(t)
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Icon is the toggle glyph shown while t is active.
func (t Theme) Icon() string {
	if t == Dark {
		return "☀️"
	}
	return "🌙"
}

// ToggleTitle is the tooltip of the toggle control while t is active.
func (t Theme) ToggleTitle() string {
	return fmt.Sprintf("Switch to %s mode", t.Opposite())
}

// Store is a string key-value slot.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Option configures a Preference.
type Option func(*Preference)

// WithApply registers a callback run whenever the active theme changes,
// including on Init.
func WithApply(fn func(Theme)) Option {
	return func(p *Preference) {
		p.apply = fn
	}
}

// Preference is the active theme bound to its Store.
type Preference struct {
	store   Store
	current Theme
	apply   func(Theme)
}

// NewPreference returns a preference backed by store. Call Init before use.
func NewPreference(store Store, opts ...Option) *Preference {
	p := &Preference{
		store:   store,
		current: Default,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init reads the stored value, applies it and returns it.
func (p *Preference) Init() Theme {
	p.current = Default
	if v, ok := p.store.Get(Key); ok {
		p.current = Parse(v)
	}
	p.notify()
	return p.current
}

// Toggle flips the theme and persists the new value. The in-memory value
// flips even when persisting fails.
func (p *Preference) Toggle() (Theme, error) {
	p.current = p.current.Opposite()
	p.notify()
	if err := p.store.Set(Key, p.current.String()); err != nil {
		return p.current, fmt.Errorf("failed to persist theme: %w", err)
	}
	return p.current, nil
}

// Current returns the active theme.
func (p *Preference) Current() Theme {
	return p.current
}

func (p *Preference) notify() {
	if p.apply != nil {
		p.apply(p.current)
	}
}
