// Package oci publishes a rendered documentation site to an OCI registry.
//
// The site directory is packed as one reproducible gzip tar layer under an
// artifact manifest whose artifactType is ArtifactType, then copied to the
// registry with ORAS:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/futureguide/api-docs:v1")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, oci.PushOptions{SourceDir: dir, Reference: ref})
//
// Targets without the oci:// scheme parse as local paths, so a single
// --output flag can name either. A missing tag defaults to DefaultTag.
//
// Credentials come from the Docker configuration (~/.docker/config.json).
// PlainHTTP and InsecureTLS exist for local development registries.
package oci
