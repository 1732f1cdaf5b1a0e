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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/futureguide/api-docs/pkg/serializer"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the documented services",
		Flags: sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runRead(ctx, cmd, func(src source) (any, error) {
				return src.List(ctx)
			})
		},
	}
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print one service record",
		ArgsUsage: "<service-id>",
		Flags:     sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := strings.TrimSpace(cmd.Args().First())
			if id == "" {
				return fmt.Errorf("service id is required")
			}
			return runRead(ctx, cmd, func(src source) (any, error) {
				return src.Show(ctx, id)
			})
		},
	}
}

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Find endpoints whose title, path or description contains the query",
		ArgsUsage: "<query>",
		Flags:     sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			return runRead(ctx, cmd, func(src source) (any, error) {
				return src.Search(ctx, query)
			})
		},
	}
}

// runRead resolves the source, fetches a value and writes it in the
// requested format.
func runRead(ctx context.Context, cmd *cli.Command, fetch func(source) (any, error)) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	src, err := newSource(cmd)
	if err != nil {
		return err
	}

	v, err := fetch(src)
	if err != nil {
		return err
	}

	ser := writerFor(cmd, outFormat)
	defer func() {
		if err := serializer.Close(ser); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, v)
}

// writerFor writes to --output, or to the root command's writer which is
// stdout unless replaced.
func writerFor(cmd *cli.Command, format serializer.Format) serializer.Serializer {
	if out := cmd.String("output"); out != "" {
		return serializer.NewFileWriterOrStdout(format, out)
	}
	return serializer.NewWriter(format, cmd.Root().Writer)
}
