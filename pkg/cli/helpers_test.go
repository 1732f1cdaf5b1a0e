package cli

import (
	"net/http"

	"github.com/futureguide/api-docs/pkg/site"
)

func handlerOf(s *site.Site) http.Handler {
	mux := http.NewServeMux()
	for pattern, h := range s.Handlers() {
		mux.HandleFunc(pattern, h)
	}
	return mux
}
