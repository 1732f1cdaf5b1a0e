package main

import (
	"log"

	"github.com/futureguide/api-docs/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
