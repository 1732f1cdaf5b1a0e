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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/futureguide/api-docs/pkg/serializer"
)

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "log level (debug, info, warn, error)",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatTable),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file or ConfigMap URI (cm://namespace/name), default stdout",
	}
}

func dataDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Aliases: []string{"d"},
		Usage:   "catalog directory to read instead of the embedded catalog",
		Sources: cli.EnvVars("DOCS_DATA_DIR"),
	}
}

func serverFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "base URL of a running docs server to query (e.g., http://localhost:8080)",
		Sources: cli.EnvVars("DOCS_SERVER"),
	}
}

func insecureTLSFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "insecure-tls",
		Usage: "skip TLS certificate verification for --server and OCI registries",
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "path to kubeconfig for ConfigMap outputs (default $KUBECONFIG or ~/.kube/config)",
	}
}

// sourceFlags are shared by the read commands.
func sourceFlags() []cli.Flag {
	return []cli.Flag{dataDirFlag(), serverFlag(), insecureTLSFlag(), formatFlag(), outputFlag()}
}

// parseOutputFormat validates --format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported values: %s)",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}
