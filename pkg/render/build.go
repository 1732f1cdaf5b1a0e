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

import (
	"fmt"

	"github.com/futureguide/api-docs/pkg/catalog"
	docserrors "github.com/futureguide/api-docs/pkg/errors"
)

// Render builds the view of one catalog entry. It never reorders
// endpoints. Missing optional blocks are omitted and missing display
// fields get placeholders; an error means the entry cannot be shown at all.
func Render(e catalog.Entry) (View, error) {
	switch s := e.Service.(type) {
	case *catalog.Standard:
		return renderStandard(e.ID, s)
	case *catalog.SharingDoc:
		return renderSharing(e.ID, s)
	case nil:
		return nil, docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "entry has no service record",
			map[string]any{"id": e.ID})
	default:
		return nil, docserrors.NewWithContext(docserrors.ErrCodeInvalidData, "unsupported service record",
			map[string]any{"id": e.ID, "type": fmt.Sprintf("%T", s)})
	}
}

func renderStandard(id string, s *catalog.Standard) (*StandardView, error) {
	v := &StandardView{
		ID:            id,
		Title:         orDefault(s.Name, PlaceholderName),
		Description:   orDefault(s.Description, PlaceholderDescription),
		Info:          infoPanel(s),
		EndpointCount: len(s.Endpoints),
		Endpoints:     make([]*Card, 0, len(s.Endpoints)),
	}

	if s.WebSocket != nil {
		ws, err := renderWebSocket(id, s.WebSocket)
		if err != nil {
			return nil, err
		}
		v.WebSocket = ws
	}
	if s.Implementation != nil {
		v.Implementation = renderImplementation(s.Implementation)
	}
	if s.Troubleshooting != nil {
		v.Troubleshooting = &TroubleshootingView{
			Title:      s.Troubleshooting.Title,
			Issues:     s.Troubleshooting.CommonIssues,
			DebugSteps: s.Troubleshooting.DebugSteps,
		}
	}

	for i, ep := range s.Endpoints {
		card, err := renderEndpoint(id, i, ep)
		if err != nil {
			return nil, err
		}
		v.Endpoints = append(v.Endpoints, card)
	}
	return v, nil
}

func infoPanel(s *catalog.Standard) []InfoItem {
	if s.WebSocket != nil {
		return []InfoItem{
			{Label: "WebSocket URL", Value: orDefault(s.WebSocketURL, PlaceholderValue), WebSocket: true},
			{Label: "Protocol", Value: orDefault(s.Protocol, PlaceholderValue), WebSocket: true},
			{Label: "Authentication", Value: orDefault(s.Authentication, PlaceholderValue), WebSocket: true},
		}
	}
	return []InfoItem{
		{Label: "Base URL", Value: orDefault(s.BaseURL, PlaceholderValue)},
		{Label: "Version", Value: orDefault(s.Version, PlaceholderValue)},
		{Label: "Port", Value: orDefault(s.Port, PlaceholderValue)},
	}
}

func renderWebSocket(id string, ws *catalog.WebSocket) (*WebSocketView, error) {
	v := &WebSocketView{
		Title:              orDefault(ws.Title, "WebSocket Connection"),
		Description:        ws.Description,
		ConnectionFlow:     ws.ConnectionFlow,
		AuthenticationFlow: ws.AuthenticationFlow,
		ConnectionExample:  ws.ConnectionExample,
		Events:             make([]EventView, 0, len(ws.Events)),
	}
	for _, ev := range ws.Events {
		data, err := pretty(ev.Data)
		if err != nil {
			return nil, docserrors.WrapWithContext(docserrors.ErrCodeInvalidData, "failed to format event data", err,
				map[string]any{"id": id, "event": ev.Name})
		}
		v.Events = append(v.Events, EventView{
			Name:        ev.Name,
			Description: ev.Description,
			Data:        data,
			Example:     ev.Example,
		})
	}
	return v, nil
}

func renderImplementation(impl *catalog.Implementation) *ImplementationView {
	v := &ImplementationView{
		Title:       impl.Title,
		Description: impl.Description,
	}
	if impl.ReactExample != "" {
		v.Examples = append(v.Examples, CodeBlock{Title: "React Implementation", Language: "javascript", Code: impl.ReactExample})
	}
	if impl.VueExample != "" {
		v.Examples = append(v.Examples, CodeBlock{Title: "Vue.js Implementation", Language: "javascript", Code: impl.VueExample})
	}
	if impl.CompleteReactExample != "" {
		v.Examples = append(v.Examples, CodeBlock{Title: "Complete React Example", Language: "javascript", Code: impl.CompleteReactExample})
	}
	return v
}

func renderEndpoint(id string, i int, ep catalog.Endpoint) (*Card, error) {
	card := &Card{
		ID:             cardID(id, i),
		ServiceID:      id,
		Method:         ep.Method,
		Path:           ep.Path,
		Title:          ep.Title,
		Description:    ep.Description,
		ErrorResponses: ep.ErrorResponses,
		Visible:        true,
	}

	if text := deref(ep.Authentication); text != "" {
		card.Badges = append(card.Badges, Badge{Kind: BadgeAuthentication, Label: LabelAuthentication, Text: text})
	}
	if text := deref(ep.RateLimit); text != "" {
		card.Badges = append(card.Badges, Badge{Kind: BadgeRateLimit, Label: LabelRateLimit, Text: text})
	}

	for _, p := range ep.Parameters {
		card.Parameters = append(card.Parameters, ParameterRow(p))
	}

	var err error
	if card.RequestBody, err = pretty(ep.RequestBody); err != nil {
		return nil, payloadError(id, ep, "requestBody", err)
	}
	if card.Response, err = pretty(ep.Response); err != nil {
		return nil, payloadError(id, ep, "response", err)
	}

	for _, ex := range ep.Examples {
		card.Examples = append(card.Examples, CodeBlock{Title: ex.Title, Language: "bash", Code: ex.Code})
	}
	card.Example = deref(ep.Example)
	return card, nil
}

func renderSharing(id string, s *catalog.SharingDoc) (*SharingView, error) {
	v := &SharingView{
		ID:       id,
		Title:    orDefault(s.Title, PlaceholderSharing),
		Sections: make([]SectionView, 0, len(s.Sections)),
	}

	n := 0
	for _, sec := range s.Sections {
		sv := SectionView{
			Heading:   orDefault(sec.Emoji, PlaceholderEmoji) + " " + sec.Title,
			Content:   sec.Content,
			Cases:     sec.Cases,
			Notes:     sec.Notes,
			Practices: sec.Practices,
		}

		for _, sub := range sec.Subsections {
			sv.Subsections = append(sv.Subsections, SubsectionView{Title: sub.Title, Items: sub.Content})
			if !sub.IsEndpoint() {
				continue
			}
			card, err := renderSubsectionEndpoint(id, n, sub)
			if err != nil {
				return nil, err
			}
			sv.Endpoints = append(sv.Endpoints, card)
			n++
		}

		for _, ex := range sec.Examples {
			sv.Examples = append(sv.Examples, CodeBlock{Title: ex.Title, Language: "bash", Code: ex.Code})
		}
		v.Sections = append(v.Sections, sv)
	}
	return v, nil
}

func renderSubsectionEndpoint(id string, i int, sub catalog.Subsection) (*Card, error) {
	card := &Card{
		ID:          cardID(id, i),
		ServiceID:   id,
		Method:      sub.Method,
		Path:        sub.Path,
		Title:       sub.Title,
		Description: sub.Description,
		Visible:     true,
	}
	if sub.Authentication != "" {
		card.Badges = append(card.Badges, Badge{Kind: BadgeAuthentication, Label: LabelAuthentication, Text: sub.Authentication})
	}

	var err error
	if card.RequestBody, err = pretty(sub.RequestBody); err != nil {
		return nil, docserrors.WrapWithContext(docserrors.ErrCodeInvalidData, "failed to format request body", err,
			map[string]any{"id": id, "subsection": sub.Title})
	}
	if card.Response, err = pretty(sub.Response); err != nil {
		return nil, docserrors.WrapWithContext(docserrors.ErrCodeInvalidData, "failed to format response", err,
			map[string]any{"id": id, "subsection": sub.Title})
	}
	return card, nil
}

func payloadError(id string, ep catalog.Endpoint, field string, err error) error {
	return docserrors.WrapWithContext(docserrors.ErrCodeInvalidData, "failed to format "+field, err,
		map[string]any{"id": id, "method": string(ep.Method), "path": ep.Path})
}

// pretty formats an optional payload. Absent payloads yield "".
func pretty(p *catalog.Payload) (string, error) {
	if p.IsZero() {
		return "", nil
	}
	return p.Pretty()
}

func cardID(serviceID string, i int) string {
	return fmt.Sprintf("%s-endpoint-%d", serviceID, i+1)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
