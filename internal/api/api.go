// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/sigmacoders/guardian/internal/config"
	"github.com/sigmacoders/guardian/internal/infrastructure"
	"github.com/sigmacoders/guardian/pkg/middleware"
	"github.com/sigmacoders/guardian/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The returned Domain exposes the scheduler so the server can resume
// evaluation loops after startup.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)

	var verifier middleware.Verifier
	if cfg.Auth.IsEnabled() {
		v, err := middleware.NewOIDCVerifier(
			infra.Lifecycle.Context(),
			cfg.Auth.Issuer,
			cfg.Auth.Audience,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("init token verifier: %w", err)
		}
		verifier = v
	}

	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Auth(verifier))
	m.Use(middleware.Logger(runtime.Logger))

	return m, domain, nil
}
