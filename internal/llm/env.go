package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/roundtutor/internal/store"
)

// NewProviderFromEnv builds a provider from the environment. Explicit
// ROUNDTUTOR_* configuration wins; otherwise the standard API key env
// vars are probed. Returns an error when no provider is configured so
// callers can degrade gracefully.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()

	if err := cfg.Validate(); err != nil {
		if os.Getenv("ROUNDTUTOR_LLM_PROVIDER") != "" {
			// The user picked a provider explicitly; a missing key for it
			// is a real configuration error, not absence of config.
			return nil, err
		}
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: %w", err)
		}
		cfg = discovered
	}

	return NewProvider(ctx, cfg, eventRepo)
}
