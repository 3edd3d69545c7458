package lockfile

import "go.trai.ch/rv/internal/core/domain"

// documentDTO is the on-disk YAML shape of a lockfile. Field order here
// governs marshal order, which is why the shape is hand-written rather
// than derived from domain.Lockfile directly (§4.F "keys ordered").
type documentDTO struct {
	SchemaVersion   int             `yaml:"schema_version"`
	PlatformVersion string          `yaml:"platform_version"`
	Repositories    []repositoryDTO `yaml:"repositories,omitempty"`
	Packages        []entryDTO      `yaml:"packages"`
}

type repositoryDTO struct {
	Alias       string `yaml:"alias"`
	URL         string `yaml:"url"`
	ForceSource bool   `yaml:"force_source,omitempty"`
}

type entryDTO struct {
	Name           string          `yaml:"name"`
	Version        string          `yaml:"version"`
	Source         sourceDTO       `yaml:"source"`
	Distribution   string          `yaml:"distribution,omitempty"`
	SHA256         string          `yaml:"sha256,omitempty"`
	Deps           []string        `yaml:"deps,omitempty"`
	InstallOptions *installOptsDTO `yaml:"install_options,omitempty"`
}

// sourceDTO flattens domain.Source's sum type into one YAML block
// discriminated by kind; only the fields belonging to that kind are set.
type sourceDTO struct {
	Kind string `yaml:"kind"`

	Alias        string `yaml:"alias,omitempty"`
	Distribution string `yaml:"distribution,omitempty"`
	URL          string `yaml:"url,omitempty"`
	SHA256       string `yaml:"sha256,omitempty"`

	RefKind      string `yaml:"ref_kind,omitempty"`
	Ref          string `yaml:"ref,omitempty"`
	Subdirectory string `yaml:"subdirectory,omitempty"`
	CommitSHA    string `yaml:"commit_sha,omitempty"`

	Path string `yaml:"path,omitempty"`

	BuiltinVersion string `yaml:"builtin_version,omitempty"`
}

type installOptsDTO struct {
	ForceSource        bool              `yaml:"force_source,omitempty"`
	InstallSuggestions bool              `yaml:"install_suggestions,omitempty"`
	DependenciesOnly   bool              `yaml:"dependencies_only,omitempty"`
	ConfigureArgs      []string          `yaml:"configure_args,omitempty"`
	Env                map[string]string `yaml:"env,omitempty"`
}

func isZeroInstallOptions(o domain.InstallOptions) bool {
	return !o.ForceSource && !o.InstallSuggestions && !o.DependenciesOnly &&
		len(o.ConfigureArgs) == 0 && len(o.Env) == 0
}
