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

package catalog

import "strings"

// Kind selects the record shape of a service data file.
type Kind string

const (
	// KindStandard is a microservice with a flat endpoint list.
	KindStandard Kind = "standard"
	// KindSharing is a long-form feature document made of sections.
	KindSharing Kind = "sharing"
)

// IsValid reports whether the kind is one the renderer knows how to display.
func (k Kind) IsValid() bool {
	switch k {
	case KindStandard, KindSharing:
		return true
	}
	return false
}

// Method is an HTTP method documented on an endpoint.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// IsValid reports whether m is one of the supported methods.
func (m Method) IsValid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	}
	return false
}

// Class returns the lowercase token used to style the method badge.
func (m Method) Class() string {
	return "method-" + strings.ToLower(string(m))
}

// Service is implemented by every catalog record variant:
// *Standard and *SharingDoc. Consumers type switch on the concrete value.
type Service interface {
	ServiceID() string
	ServiceKind() Kind
	service()
}

// Standard describes one microservice and its endpoints.
type Standard struct {
	ID              string           `json:"id" yaml:"id"`
	Kind            Kind             `json:"kind" yaml:"kind"`
	Name            string           `json:"name,omitempty" yaml:"name,omitempty"`
	Description     string           `json:"description,omitempty" yaml:"description,omitempty"`
	BaseURL         string           `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Version         string           `json:"version,omitempty" yaml:"version,omitempty"`
	Port            string           `json:"port,omitempty" yaml:"port,omitempty"`
	WebSocketURL    string           `json:"websocketUrl,omitempty" yaml:"websocketUrl,omitempty"`
	Protocol        string           `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Authentication  string           `json:"authentication,omitempty" yaml:"authentication,omitempty"`
	WebSocket       *WebSocket       `json:"websocket,omitempty" yaml:"websocket,omitempty"`
	Implementation  *Implementation  `json:"implementation,omitempty" yaml:"implementation,omitempty"`
	Troubleshooting *Troubleshooting `json:"troubleshooting,omitempty" yaml:"troubleshooting,omitempty"`
	Endpoints       []Endpoint       `json:"endpoints" yaml:"endpoints"`
}

func (s *Standard) ServiceID() string { return s.ID }
func (s *Standard) ServiceKind() Kind { return KindStandard }
func (s *Standard) service() {}

// Endpoint documents a single HTTP operation of a service.
type Endpoint struct {
	Method         Method          `json:"method" yaml:"method"`
	Path           string          `json:"path" yaml:"path"`
	Title          string          `json:"title" yaml:"title"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Authentication *string         `json:"authentication,omitempty" yaml:"authentication,omitempty"`
	RateLimit      *string         `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"`
	Parameters     []Parameter     `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody    *Payload        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Response       *Payload        `json:"response,omitempty" yaml:"response,omitempty"`
	ErrorResponses []ErrorResponse `json:"errorResponses,omitempty" yaml:"errorResponses,omitempty"`
	Examples       []Example       `json:"examples,omitempty" yaml:"examples,omitempty"`
	Example        *string         `json:"example,omitempty" yaml:"example,omitempty"`
}

// Parameter is one row of an endpoint's parameter table.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description" yaml:"description"`
}

// ErrorResponse is a documented failure of an endpoint.
type ErrorResponse struct {
	Status  int    `json:"status" yaml:"status"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Example is a titled code sample.
type Example struct {
	Title string `json:"title" yaml:"title"`
	Code  string `json:"code" yaml:"code"`
}

// WebSocket describes a realtime channel offered by a service.
type WebSocket struct {
	Title              string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	ConnectionFlow     []string `json:"connectionFlow,omitempty" yaml:"connectionFlow,omitempty"`
	AuthenticationFlow []string `json:"authenticationFlow,omitempty" yaml:"authenticationFlow,omitempty"`
	ConnectionExample  string   `json:"connectionExample,omitempty" yaml:"connectionExample,omitempty"`
	Events             []Event  `json:"events,omitempty" yaml:"events,omitempty"`
}

// Event is a message emitted over the WebSocket channel.
type Event struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Data        *Payload `json:"data,omitempty" yaml:"data,omitempty"`
	Example     string   `json:"example,omitempty" yaml:"example,omitempty"`
}

// Implementation holds client integration samples.
type Implementation struct {
	Title                string `json:"title,omitempty" yaml:"title,omitempty"`
	Description          string `json:"description,omitempty" yaml:"description,omitempty"`
	ReactExample         string `json:"reactExample,omitempty" yaml:"reactExample,omitempty"`
	VueExample           string `json:"vueExample,omitempty" yaml:"vueExample,omitempty"`
	CompleteReactExample string `json:"completeReactExample,omitempty" yaml:"completeReactExample,omitempty"`
}

// Troubleshooting lists known issues and a debugging checklist.
type Troubleshooting struct {
	Title        string   `json:"title,omitempty" yaml:"title,omitempty"`
	CommonIssues []Issue  `json:"commonIssues,omitempty" yaml:"commonIssues,omitempty"`
	DebugSteps   []string `json:"debugSteps,omitempty" yaml:"debugSteps,omitempty"`
}

// Issue pairs a symptom with its fix.
type Issue struct {
	Issue    string `json:"issue" yaml:"issue"`
	Solution string `json:"solution" yaml:"solution"`
}

// SharingDoc is a feature document rendered section by section.
type SharingDoc struct {
	ID       string    `json:"id" yaml:"id"`
	Kind     Kind      `json:"kind" yaml:"kind"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

func (s *SharingDoc) ServiceID() string { return s.ID }
func (s *SharingDoc) ServiceKind() Kind { return KindSharing }
func (s *SharingDoc) service() {}

// Section is one heading of a sharing document. Any subset of the
// blocks may be present.
type Section struct {
	Title       string       `json:"title" yaml:"title"`
	Emoji       string       `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Content     string       `json:"content,omitempty" yaml:"content,omitempty"`
	Subsections []Subsection `json:"subsections,omitempty" yaml:"subsections,omitempty"`
	Examples    []Example    `json:"examples,omitempty" yaml:"examples,omitempty"`
	Cases       []Case       `json:"cases,omitempty" yaml:"cases,omitempty"`
	Notes       []ItemGroup  `json:"notes,omitempty" yaml:"notes,omitempty"`
	Practices   []ItemGroup  `json:"practices,omitempty" yaml:"practices,omitempty"`
}

// Subsection is either a bulleted block or, when Method is set, an
// endpoint description.
type Subsection struct {
	Title          string   `json:"title" yaml:"title"`
	Content        []string `json:"content,omitempty" yaml:"content,omitempty"`
	Method         Method   `json:"method,omitempty" yaml:"method,omitempty"`
	Path           string   `json:"path,omitempty" yaml:"path,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	Authentication string   `json:"authentication,omitempty" yaml:"authentication,omitempty"`
	RequestBody    *Payload `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Response       *Payload `json:"response,omitempty" yaml:"response,omitempty"`
}

// IsEndpoint reports whether the subsection documents an endpoint.
func (s Subsection) IsEndpoint() bool {
	return s.Method != ""
}

// Case is a named use case.
type Case struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ItemGroup is a titled bullet list.
type ItemGroup struct {
	Title string   `json:"title" yaml:"title"`
	Items []string `json:"items" yaml:"items"`
}

// Entry is an (id, record) pair in catalog order.
type Entry struct {
	ID      string  `json:"id"`
	Service Service `json:"service"`
}

// Endpoints returns the number of endpoint cards the record produces.
func (e Entry) Endpoints() int {
	switch s := e.Service.(type) {
	case *Standard:
		return len(s.Endpoints)
	case *SharingDoc:
		n := 0
		for _, sec := range s.Sections {
			for _, sub := range sec.Subsections {
				if sub.IsEndpoint() {
					n++
				}
			}
		}
		return n
	}
	return 0
}

// DisplayName returns the record's human readable name, or empty.
func (e Entry) DisplayName() string {
	switch s := e.Service.(type) {
	case *Standard:
		return s.Name
	case *SharingDoc:
		return s.Title
	}
	return ""
}
