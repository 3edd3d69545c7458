// Package fetch implements one ports.SourceFetcher per source variant
// (§4.D): repository archive, version control checkout, local path,
// remote URL, and builtin.
package fetch

import (
	"context"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

// Dispatcher routes a fetch to the SourceFetcher supporting the source's
// kind. It implements ports.SourceFetcher itself so callers needing a
// single fetcher can use one regardless of source variant.
type Dispatcher struct {
	fetchers []ports.SourceFetcher
}

// NewDispatcher builds a Dispatcher trying fetchers in order.
func NewDispatcher(fetchers ...ports.SourceFetcher) *Dispatcher {
	return &Dispatcher{fetchers: fetchers}
}

func (d *Dispatcher) Supports(kind domain.SourceKind) bool {
	for _, f := range d.fetchers {
		if f.Supports(kind) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) Fetch(ctx context.Context, name string, src domain.Source) (ports.FetchResult, error) {
	for _, f := range d.fetchers {
		if f.Supports(src.Kind) {
			return f.Fetch(ctx, name, src)
		}
	}
	return ports.FetchResult{}, zerr.With(domain.ErrFetchFailed, "package", name)
}
