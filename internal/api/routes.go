package api

import (
	"net/http"

	"github.com/sigmacoders/guardian/internal/config"
	"github.com/sigmacoders/guardian/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) {
	maxBody := cfg.API.MaxBodySizeBytes()

	routes.Register(
		mux,
		domain.Children.Handler().Routes(),
		domain.Usage.Handler(maxBody, domain.Scheduler).Routes(),
		domain.Pipeline.Handler(maxBody).Routes(),
		domain.VideoLogs.Handler().Routes(),
	)
}
