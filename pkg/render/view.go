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

package render

import "github.com/futureguide/api-docs/pkg/catalog"

// Placeholders substituted for missing display fields.
const (
	PlaceholderName        = "Unknown Service"
	PlaceholderDescription = "No description available"
	PlaceholderValue       = "N/A"
	PlaceholderSharing     = "Sharing Documentation"
	PlaceholderEmoji       = "📄"
)

// Badge labels shown on endpoint cards.
const (
	LabelAuthentication = "🔐 Authentication Required"
	LabelRateLimit      = "⏱️ Rate Limit"
)

// View is the rendered form of one catalog entry: *StandardView or
// *SharingView.
type View interface {
	// Anchor is the element id the navigation links to.
	Anchor() string
	// Heading is the section title.
	Heading() string
	// Cards returns the endpoint cards in page order.
	Cards() []*Card
	clone() View
}

// InfoItem is one tile of the service info panel.
type InfoItem struct {
	Label     string
	Value     string
	WebSocket bool
}

// StandardView renders a *catalog.Standard record.
type StandardView struct {
	ID              string
	Title           string
	Description     string
	Info            []InfoItem
	WebSocket       *WebSocketView
	Implementation  *ImplementationView
	Troubleshooting *TroubleshootingView
	EndpointCount   int
	Endpoints       []*Card
}

func (v *StandardView) Anchor() string  { return v.ID }
func (v *StandardView) Heading() string { return v.Title }
func (v *StandardView) Cards() []*Card  { return v.Endpoints }

func (v *StandardView) clone() View {
	c := *v
	c.Endpoints = cloneCards(v.Endpoints)
	return &c
}

// WebSocketView is the realtime section of a standard service.
type WebSocketView struct {
	Title              string
	Description        string
	ConnectionFlow     []string
	AuthenticationFlow []string
	ConnectionExample  string
	Events             []EventView
}

// EventView is one WebSocket event card.
type EventView struct {
	Name        string
	Description string
	Data        string
	Example     string
}

// ImplementationView is the client integration guide.
type ImplementationView struct {
	Title       string
	Description string
	Examples    []CodeBlock
}

// TroubleshootingView lists issues then numbered debug steps.
type TroubleshootingView struct {
	Title      string
	Issues     []catalog.Issue
	DebugSteps []string
}

// CodeBlock is a titled, copyable code sample.
type CodeBlock struct {
	Title    string
	Language string
	Code     string
}

// SharingView renders a *catalog.SharingDoc record.
type SharingView struct {
	ID       string
	Title    string
	Sections []SectionView
}

func (v *SharingView) Anchor() string  { return v.ID }
func (v *SharingView) Heading() string { return v.Title }

// Cards flattens the endpoint cards of every section.
func (v *SharingView) Cards() []*Card {
	var out []*Card
	for _, s := range v.Sections {
		out = append(out, s.Endpoints...)
	}
	return out
}

func (v *SharingView) clone() View {
	c := *v
	c.Sections = make([]SectionView, len(v.Sections))
	for i, s := range v.Sections {
		s.Endpoints = cloneCards(s.Endpoints)
		c.Sections[i] = s
	}
	return &c
}

// SectionView is one heading of a sharing document.
type SectionView struct {
	Heading     string
	Content     string
	Subsections []SubsectionView
	Endpoints   []*Card
	Examples    []CodeBlock
	Cases       []catalog.Case
	Notes       []catalog.ItemGroup
	Practices   []catalog.ItemGroup
}

// SubsectionView is a subsection title with its bullets.
type SubsectionView struct {
	Title string
	Items []string
}

// BadgeKind distinguishes card badges.
type BadgeKind string

const (
	BadgeAuthentication BadgeKind = "auth"
	BadgeRateLimit      BadgeKind = "rate"
)

// Badge is a labelled note on an endpoint card.
type Badge struct {
	Kind  BadgeKind
	Label string
	Text  string
}

// Class is the style token of the badge label.
func (b Badge) Class() string {
	if b.Kind == BadgeAuthentication {
		return "auth-badge"
	}
	return "rate-badge"
}

// Container is the style token of the block wrapping the badge.
func (b Badge) Container() string {
	if b.Kind == BadgeAuthentication {
		return "auth-required"
	}
	return "rate-limit"
}

// ParameterRow is one row of the parameters table.
type ParameterRow struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// RequiredLabel is the text of the required column.
func (p ParameterRow) RequiredLabel() string {
	if p.Required {
		return "Yes"
	}
	return "No"
}

// RequiredClass is the style token of the required column.
func (p ParameterRow) RequiredClass() string {
	if p.Required {
		return "required"
	}
	return "optional"
}

// Card is a rendered endpoint. Title, Path and Description are the fields
// the search filter matches on; Visible is the filter result.
type Card struct {
	ID             string
	ServiceID      string
	Method         catalog.Method
	Path           string
	Title          string
	Description    string
	Badges         []Badge
	Parameters     []ParameterRow
	RequestBody    string
	Response       string
	ErrorResponses []catalog.ErrorResponse
	Examples       []CodeBlock
	Example        string
	Visible        bool
}

// MethodClass is the style token of the method badge.
func (c *Card) MethodClass() string {
	return c.Method.Class()
}

// Badge returns the badge of the given kind, if present.
func (c *Card) Badge(kind BadgeKind) (Badge, bool) {
	for _, b := range c.Badges {
		if b.Kind == kind {
			return b, true
		}
	}
	return Badge{}, false
}

func cloneCards(in []*Card) []*Card {
	if in == nil {
		return nil
	}
	out := make([]*Card, len(in))
	for i, c := range in {
		cp := *c
		out[i] = &cp
	}
	return out
}
