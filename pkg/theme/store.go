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

package theme

import (
	"net/http"
	"sync"
	"time"
)

// MemoryStore is an in-process Store safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a store seeded with the given pairs.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	s := &MemoryStore{values: make(map[string]string, len(seed))}
	for k, v := range seed {
		s.values[k] = v
	}
	return s
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// CookieMaxAge is how long the browser keeps the preference cookie.
const CookieMaxAge = 365 * 24 * time.Hour

// CookieStore reads the preference from the request cookies and writes
// it back with Set-Cookie. It lives for one request.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
}

// NewCookieStore binds a store to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{w: w, r: r, written: map[string]string{}}
}

// Get returns a value set during this request, or the request cookie.
func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.written[key]; ok {
		return v, true
	}
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

// Set writes the cookie. It is readable by the page script, which keeps
// localStorage in step.
func (s *CookieStore) Set(key, value string) error {
	s.written[key] = value
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   s.r.TLS != nil,
	})
	return nil
}
