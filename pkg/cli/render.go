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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/futureguide/api-docs/pkg/k8s/client"
	"github.com/futureguide/api-docs/pkg/oci"
	"github.com/futureguide/api-docs/pkg/render"
	"github.com/futureguide/api-docs/pkg/serializer"
	"github.com/futureguide/api-docs/pkg/site"
	"github.com/futureguide/api-docs/pkg/theme"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render the documentation as a static site",
		Description: `Render the catalog into a self-contained page plus its stylesheet and
script. The --output target selects where the site goes:

  ./site                       a local directory (index.html, static/*)
  cm://namespace/name          a Kubernetes ConfigMap, one key per file
  oci://registry/repo[:tag]    an OCI artifact pushed to a registry`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Required: true,
				Usage:    "directory, cm://namespace/name or oci://registry/repository[:tag]",
			},
			&cli.StringFlag{
				Name:  "theme",
				Value: string(theme.Default),
				Usage: "initial theme of the page (light, dark)",
			},
			&cli.StringSliceFlag{
				Name:  "annotation",
				Usage: "extra OCI manifest annotation as key=value, repeatable",
			},
			&cli.StringFlag{
				Name:  "reproducible-timestamp",
				Usage: "fixed RFC3339 created annotation so identical sites push identical digests",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "talk to the OCI registry over plain HTTP",
			},
			dataDirFlag(),
			insecureTLSFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cat, err := loadCatalog(cmd.String("data-dir"))
			if err != nil {
				return err
			}
			doc := render.NewDocument(cat)
			if len(doc.Skipped) > 0 {
				slog.Warn("some services failed to render", "skipped", doc.Skipped)
			}

			target := strings.TrimSpace(cmd.String("output"))
			pageTheme := theme.Parse(cmd.String("theme"))

			switch {
			case strings.HasPrefix(target, serializer.ConfigMapURIScheme):
				return renderConfigMap(ctx, cmd, doc, pageTheme, target)
			case oci.IsOCITarget(target):
				return renderOCI(ctx, cmd, doc, pageTheme, target)
			default:
				return renderDir(cmd, doc, pageTheme, target)
			}
		},
	}
}

func renderDir(cmd *cli.Command, doc *render.Document, t theme.Theme, dir string) error {
	b, err := site.Export(doc, site.ExportOptions{Theme: t, Version: version})
	if err != nil {
		return err
	}
	if err := b.WriteDir(dir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Site written to %s (%d files)\n", dir, len(b.Files()))
	return nil
}

func renderConfigMap(ctx context.Context, cmd *cli.Command, doc *render.Document, t theme.Theme, uri string) error {
	namespace, cmName, err := serializer.ParseConfigMapURI(uri)
	if err != nil {
		return err
	}

	b, err := site.Export(doc, site.ExportOptions{Flat: true, Theme: t, Version: version})
	if err != nil {
		return err
	}

	var opts []serializer.ConfigMapOption
	if kubeconfig := cmd.String("kubeconfig"); kubeconfig != "" {
		kc, _, kerr := client.BuildKubeClient(kubeconfig)
		if kerr != nil {
			return fmt.Errorf("failed to build kubernetes client: %w", kerr)
		}
		opts = append(opts, serializer.WithKubeClient(kc))
	}

	w := serializer.NewConfigMapWriter(namespace, cmName, serializer.FormatJSON, opts...)
	if err := w.Serialize(ctx, b); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Site applied to ConfigMap %s/%s (%d files)\n", namespace, cmName, len(b.Files()))
	return nil
}

func renderOCI(ctx context.Context, cmd *cli.Command, doc *render.Document, t theme.Theme, target string) error {
	ref, err := oci.ParseOutputTarget(target)
	if err != nil {
		return err
	}

	annotations, err := parseAnnotations(cmd.StringSlice("annotation"))
	if err != nil {
		return err
	}

	b, err := site.Export(doc, site.ExportOptions{Theme: t, Version: version})
	if err != nil {
		return err
	}

	tmp, err := os.MkdirTemp("", "docs-site-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmp); err != nil {
			slog.Warn("failed to remove staging directory", "dir", tmp, "error", err)
		}
	}()

	siteDir := filepath.Join(tmp, oci.LayerTitle)
	if err := b.WriteDir(siteDir); err != nil {
		return err
	}

	res, err := oci.Push(ctx, oci.PushOptions{
		SourceDir:             siteDir,
		Reference:             ref,
		Version:               version,
		PlainHTTP:             cmd.Bool("plain-http"),
		InsecureTLS:           cmd.Bool("insecure-tls"),
		ReproducibleTimestamp: cmd.String("reproducible-timestamp"),
		Annotations:           annotations,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Site pushed to %s\nDigest: %s\n", res.Reference, res.Digest)
	return nil
}

// parseAnnotations splits key=value pairs.
func parseAnnotations(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid annotation %q: expected key=value", p)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
