package main

import (
	"github.com/futureguide/api-docs/pkg/cli"
)

func main() {
	cli.Execute()
}
