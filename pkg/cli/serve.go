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

	"github.com/urfave/cli/v3"

	"github.com/futureguide/api-docs/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the documentation server",
		Description: `Serve the documentation page and the JSON API. With --watch the catalog
in --data-dir is reloaded on change and open pages refresh themselves.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP port (default $PORT or 8080)",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "reload the catalog when files in --data-dir change",
				Sources: cli.EnvVars(api.EnvWatch),
			},
			dataDirFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := api.NewServer(api.Options{
				DataDir: cmd.String("data-dir"),
				Watch:   cmd.Bool("watch") && cmd.String("data-dir") != "",
				Port:    int(cmd.Int("port")),
			})
			if err != nil {
				return err
			}
			return s.Run(ctx)
		},
	}
}
