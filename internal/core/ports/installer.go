package ports

import (
	"context"

	"go.trai.ch/rv/internal/core/domain"
)

// InstallRequest is everything the external installer needs for one
// package: the fetched source tree, a staging target path, and the
// options that govern the build (§9 "Installer boundary").
type InstallRequest struct {
	Node            domain.ResolvedNode
	SourceTreePath  string
	StagingPath     string
	Env             map[string]string
	ConfigureArgs   []string
}

// Installer invokes the external platform install tool for one package.
// The core trusts the exit status and the post-condition check (a valid
// metadata file at the staged target); it does not introspect the
// installer's log.
type Installer interface {
	Install(ctx context.Context, req InstallRequest) error
}
