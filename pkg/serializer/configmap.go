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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/futureguide/api-docs/pkg/defaults"
	"github.com/futureguide/api-docs/pkg/header"
	"github.com/futureguide/api-docs/pkg/k8s/client"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap output destinations: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// FieldManager owns the fields written by server-side apply.
	FieldManager = "api-docs"

	// MaxConfigMapBytes is the Kubernetes limit on ConfigMap data.
	MaxConfigMapBytes = 1 << 20
)

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    client.Interface
	now       func() time.Time
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeClient uses c instead of the shared clientset.
func WithKubeClient(c client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the specified
// namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalize(format),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize applies v to the ConfigMap. A Bundle stores every file under
// its own key. Any other value is encoded as data.<ext>. Both forms also
// record format and timestamp keys.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	data, err := w.data(v)
	if err != nil {
		return err
	}

	kind, version := describe(v)
	if _, ok := data["timestamp"]; !ok {
		data["timestamp"] = w.now().UTC().Format(time.RFC3339)
	}

	size := 0
	for _, value := range data {
		size += len(value)
	}
	if size > MaxConfigMapBytes {
		return fmt.Errorf("ConfigMap %s/%s data is %d bytes, limit is %d", w.namespace, w.name, size, MaxConfigMapBytes)
	}

	kc := w.client
	if kc == nil {
		kc, _, err = client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":       "api-docs",
			"app.kubernetes.io/component":  strings.ToLower(kind),
			"app.kubernetes.io/version":    version,
			"app.kubernetes.io/managed-by": FieldManager,
		}).
		WithData(data)

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"kind", kind,
		"keys", len(data),
		"bytes", size)

	// Server-side apply is an atomic create-or-update. Force takes ownership
	// from earlier managers such as kubectl.
	_, err = kc.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, configMap, metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	return nil
}

// data builds the ConfigMap payload for v.
func (w *ConfigMapWriter) data(v any) (map[string]string, error) {
	if b, ok := v.(Bundle); ok {
		files := b.Files()
		if len(files) == 0 {
			return nil, fmt.Errorf("bundle for ConfigMap %s/%s has no files", w.namespace, w.name)
		}
		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		sort.Strings(names)

		out := make(map[string]string, len(files)+1)
		for _, name := range names {
			if errs := validation.IsConfigMapKey(name); len(errs) > 0 {
				return nil, fmt.Errorf("invalid ConfigMap key %q: %s", name, strings.Join(errs, "; "))
			}
			out[name] = string(files[name])
		}
		out["format"] = "bundle"
		return out, nil
	}

	content, err := marshal(w.format, v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize ConfigMap content: %w", err)
	}
	return map[string]string{
		"data." + w.format.Extension(): string(content),
		"format":                       string(w.format),
	}, nil
}

// describe extracts kind and version labels from a header-carrying value.
func describe(v any) (kind, version string) {
	kind, version = header.KindSite.String(), "unknown"
	h, ok := v.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	})
	if !ok {
		return kind, version
	}
	if k := h.GetKind(); k != "" {
		kind = k.String()
	}
	if ver, exists := h.GetMetadata()["version"]; exists && len(validation.IsValidLabelValue(ver)) == 0 {
		version = ver
	}
	return kind, version
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	path, ok := strings.CutPrefix(uri, ConfigMapURIScheme)
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	namespace, name, ok = strings.Cut(path, "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return "", "", fmt.Errorf("invalid ConfigMap name %q: %s", name, strings.Join(errs, "; "))
	}

	return namespace, name, nil
}

// ParseConfigMapURI is the exported form of the cm:// parser used by
// callers that need to validate a destination before rendering.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	return parseConfigMapURI(uri)
}
