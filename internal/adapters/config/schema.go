// Package config loads a project's declarative configuration document
// (§6) from a TOML file.
package config

// repositoryDTO mirrors one entry in project.repositories.
type repositoryDTO struct {
	Alias       string `toml:"alias"`
	URL         string `toml:"url"`
	ForceSource bool   `toml:"force_source"`
}

// rawProjectFile is decoded first so dependencies (which mix bare
// strings and inline tables) can be normalized by hand; BurntSushi/toml
// decodes heterogeneous array elements into []any for this purpose.
type rawProjectFile struct {
	Project rawProjectTable `toml:"project"`
}

type rawProjectTable struct {
	Name                  string          `toml:"name"`
	RVersion              string          `toml:"r_version"`
	Repositories          []repositoryDTO `toml:"repositories"`
	Dependencies          []any           `toml:"dependencies"`
	PreferRepositoriesFor []string        `toml:"prefer_repositories_for"`
}
