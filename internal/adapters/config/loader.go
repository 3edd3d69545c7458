package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.ConfigLoader by decoding rv.toml.
type Loader struct{}

// New creates a new Loader.
func New() ports.ConfigLoader {
	return &Loader{}
}

// Load reads and decodes the project configuration at projectRoot.
func (l *Loader) Load(projectRoot string) (domain.ProjectConfig, error) {
	path := filepath.Join(projectRoot, domain.ProjectConfigName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ProjectConfig{}, zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return domain.ProjectConfig{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var raw rawProjectFile
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return domain.ProjectConfig{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	deps, err := normalizeDependencies(raw.Project.Dependencies)
	if err != nil {
		return domain.ProjectConfig{}, zerr.With(err, "path", path)
	}

	platformVersion, err := domain.ParseVersion(raw.Project.RVersion)
	if err != nil {
		return domain.ProjectConfig{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "field", "project.r_version")
	}

	cfg := domain.ProjectConfig{
		Name:                  raw.Project.Name,
		PlatformVersion:       platformVersion,
		Repositories:          toRepositoryConfigs(raw.Project.Repositories),
		Dependencies:          deps,
		PreferRepositoriesFor: raw.Project.PreferRepositoriesFor,
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, err
	}

	return cfg, nil
}

func toRepositoryConfigs(dtos []repositoryDTO) []domain.RepositoryConfig {
	out := make([]domain.RepositoryConfig, len(dtos))
	for i, r := range dtos {
		out[i] = domain.RepositoryConfig{Alias: r.Alias, URL: r.URL, ForceSource: r.ForceSource}
	}
	return out
}

// normalizeDependencies handles the two shapes a dependency entry may
// take in the TOML document: a bare name string, or an inline table
// carrying per-dependency options.
func normalizeDependencies(raw []any) ([]domain.DependencyOption, error) {
	out := make([]domain.DependencyOption, 0, len(raw))

	for _, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, domain.DependencyOption{Name: v})
		case map[string]any:
			opt, err := dependencyFromMap(v)
			if err != nil {
				return nil, err
			}
			out = append(out, opt)
		default:
			return nil, zerr.With(domain.ErrConfigParseFailed, "field", "project.dependencies")
		}
	}

	return out, nil
}

func dependencyFromMap(m map[string]any) (domain.DependencyOption, error) {
	name, _ := m["name"].(string)
	if name == "" {
		return domain.DependencyOption{}, zerr.With(domain.ErrDescriptorMissingField, "field", "dependencies[].name")
	}

	opt := domain.DependencyOption{
		Name:               name,
		VersionConstraint:  stringField(m, "version"),
		RepositoryAlias:    stringField(m, "repository"),
		Git:                stringField(m, "git"),
		Branch:             stringField(m, "branch"),
		Tag:                stringField(m, "tag"),
		Commit:             stringField(m, "commit"),
		Subdirectory:       stringField(m, "subdirectory"),
		Path:               stringField(m, "path"),
		URL:                stringField(m, "url"),
		SHA256:             stringField(m, "sha"),
		InstallSuggestions: boolField(m, "install_suggestions"),
		DependenciesOnly:   boolField(m, "dependencies_only"),
		ForceSource:        boolField(m, "force_source"),
		ConfigureArgs:      stringSliceField(m, "configure_args"),
		Env:                stringMapField(m, "env"),
	}

	return opt, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func stringSliceField(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringMapField(m map[string]any, key string) map[string]string {
	raw, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
