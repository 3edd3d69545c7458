package fetch

import (
	"context"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

// BuiltinFetcher performs no fetch: a builtin name is supplied by the
// platform itself and is recorded only for reporting (§4.D "Builtin").
type BuiltinFetcher struct{}

// NewBuiltinFetcher builds a BuiltinFetcher.
func NewBuiltinFetcher() *BuiltinFetcher {
	return &BuiltinFetcher{}
}

func (f *BuiltinFetcher) Supports(kind domain.SourceKind) bool {
	return kind == domain.SourceKindBuiltin
}

func (f *BuiltinFetcher) Fetch(_ context.Context, name string, src domain.Source) (ports.FetchResult, error) {
	if src.Builtin == nil {
		return ports.FetchResult{}, zerr.With(domain.ErrFetchFailed, "package", name)
	}
	return ports.FetchResult{
		Record: domain.PackageRecord{Name: name, Version: src.Builtin.Version},
	}, nil
}
