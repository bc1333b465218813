package resolve

import (
	"context"
	"errors"

	"github.com/rathboma/sbt-sublime/internal/artifact"
	"github.com/rathboma/sbt-sublime/internal/manifest"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a declared dependency is absent from every repository.
var ErrNotFound = errors.New("artifact not found in any repository")

// Resolver returns the artifacts fetched for one module's dependencies.
type Resolver interface {
	Resolve(ctx context.Context, mod manifest.Module, deps []artifact.Coordinate) ([]artifact.Resolved, error)
}

// Collect resolves each module in order and de-duplicates the combined result.
// A module that fails to resolve contributes no artifacts; the failure is
// logged and collection continues. Only context cancellation aborts.
func Collect(ctx context.Context, r Resolver, modules []manifest.Module, crossSuffix string, log zerolog.Logger) ([]artifact.Resolved, error) {
	var all []artifact.Resolved
	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		deps := m.Coordinates(crossSuffix)
		if len(deps) == 0 {
			continue
		}
		arts, err := r.Resolve(ctx, m, deps)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Warn().Err(err).Str("module", m.ID).Msg("dependency resolution failed; skipping module")
			continue
		}
		log.Debug().Str("module", m.ID).Int("artifacts", len(arts)).Msg("resolved module")
		all = append(all, arts...)
	}
	return artifact.UniqueResolved(all), nil
}
