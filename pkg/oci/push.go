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

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/futureguide/api-docs/pkg/defaults"
	docserrors "github.com/futureguide/api-docs/pkg/errors"
)

const (
	// ArtifactType identifies a rendered documentation site. It is not a
	// runnable image.
	ArtifactType = "application/vnd.futureguide.docs.site.v1"

	// LayerTitle names the single tar layer holding the site files.
	LayerTitle = "site"
)

// PushOptions configures a site push.
type PushOptions struct {
	// SourceDir holds the rendered site.
	SourceDir string
	// Reference is the destination. It must be an OCI reference with a tag.
	Reference *Reference
	// Version is recorded as the image version annotation.
	Version string
	// PlainHTTP talks to the registry without TLS, for local registries.
	PlainHTTP bool
	// InsecureTLS skips certificate verification.
	InsecureTLS bool
	// ReproducibleTimestamp, when set, replaces the created annotation so
	// identical sites produce identical digests.
	ReproducibleTimestamp string
	// Annotations are merged over the default manifest annotations.
	Annotations map[string]string
	// Target overrides the remote repository. Used by tests and local stores.
	Target oras.Target
}

// PushResult describes a successful push.
type PushResult struct {
	Digest    string
	Reference string
}

// Push packs SourceDir as a single reproducible tar layer and copies the
// resulting artifact to the destination registry.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	if opts.Reference == nil || !opts.Reference.IsOCI {
		return nil, docserrors.New(docserrors.ErrCodeInvalidRequest, "an oci:// reference is required to push")
	}
	if opts.Reference.Tag == "" {
		return nil, docserrors.New(docserrors.ErrCodeInvalidRequest, "tag is required to push OCI artifact")
	}

	absDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeInternal, "failed to resolve source directory", err)
	}
	if info, statErr := os.Stat(absDir); statErr != nil || !info.IsDir() {
		return nil, docserrors.NewWithContext(docserrors.ErrCodeInvalidRequest,
			"source directory does not exist", map[string]any{"dir": absDir})
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.PublishTimeout)
	defer cancel()

	// The file store writes titled blobs into its working dir, so it gets
	// a scratch dir and never touches the site.
	workDir, err := os.MkdirTemp("", "docs-oci-")
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeInternal, "failed to create store directory", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			slog.Warn("failed to remove store directory", "dir", workDir, "error", rmErr)
		}
	}()

	store, err := file.New(workDir)
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = store.Close() }()

	// Reproducible tars keep the layer digest stable across rebuilds.
	store.TarReproducible = true

	layer, err := store.Add(ctx, LayerTitle, ociv1.MediaTypeImageLayerGzip, absDir)
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeInternal, "failed to add site to store", err)
	}

	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: manifestAnnotations(opts),
	})
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeInternal, "failed to pack manifest", err)
	}

	tag := opts.Reference.Tag
	if err := store.Tag(ctx, manifest, tag); err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeInternal, "failed to tag manifest in local store", err)
	}

	target := opts.Target
	if target == nil {
		repo, repoErr := remote.NewRepository(fmt.Sprintf("%s/%s", opts.Reference.Registry, opts.Reference.Repository))
		if repoErr != nil {
			return nil, docserrors.Wrap(docserrors.ErrCodeInvalidRequest, "failed to initialize remote repository", repoErr)
		}
		repo.PlainHTTP = opts.PlainHTTP
		repo.Client = newAuthClient(opts.PlainHTTP, opts.InsecureTLS)
		target = repo
	}

	slog.Info("pushing site to registry",
		"reference", opts.Reference.ImageReference(),
		"layer", layer.Digest.String(),
		"size", layer.Size)

	desc, err := oras.Copy(ctx, store, tag, target, tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, docserrors.Wrap(docserrors.ErrCodeUnavailable, "failed to push artifact to registry", err)
	}

	slog.Info("site pushed", "reference", opts.Reference.ImageReference(), "digest", desc.Digest.String())

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: opts.Reference.ImageReference(),
	}, nil
}

func manifestAnnotations(opts PushOptions) map[string]string {
	created := opts.ReproducibleTimestamp
	if created == "" {
		created = time.Now().UTC().Format(time.RFC3339)
	}

	out := map[string]string{
		ociv1.AnnotationCreated: created,
	}
	if opts.Version != "" {
		out[ociv1.AnnotationVersion] = opts.Version
	}
	for k, v := range opts.Annotations {
		out[k] = v
	}
	return out
}

// newAuthClient resolves registry credentials from the Docker config.
func newAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable, pushing anonymously", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via --insecure-tls
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	client.SetUserAgent("api-docs")
	return client
}
