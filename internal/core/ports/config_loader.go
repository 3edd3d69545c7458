// Package ports defines the interfaces core resolve-plan-sync logic
// depends on, implemented by adapters outside internal/core.
package ports

import "go.trai.ch/rv/internal/core/domain"

// ConfigLoader reads a project's declarative configuration document
// (§6) from a project root.
type ConfigLoader interface {
	Load(projectRoot string) (domain.ProjectConfig, error)
}
