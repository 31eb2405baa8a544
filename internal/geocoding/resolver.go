package geocoding

import (
	"context"

	"github.com/rs/zerolog"
)

// Resolver tries each provider in its fixed priority order and returns the
// first hit. Provider errors are deliberately folded into misses: one
// provider's outage must not block the pipeline, and the job-level retry
// schedule covers transient failures.
type Resolver struct {
	providers []Provider
	log       zerolog.Logger
}

func NewResolver(log zerolog.Logger, providers ...Provider) *Resolver {
	return &Resolver{providers: providers, log: log}
}

// Resolve returns the first provider's result for the address, or nil when
// every provider misses. The primary's answer is authoritative: a hit
// short-circuits without consulting the rest.
func (r *Resolver) Resolve(ctx context.Context, address string) *Result {
	for _, p := range r.providers {
		result, err := p.Geocode(ctx, address)
		if err != nil {
			r.log.Warn().
				Err(err).
				Str("provider", p.Name()).
				Msg("provider failed, treating as miss")
			continue
		}
		if result != nil {
			return result
		}
	}
	return nil
}
