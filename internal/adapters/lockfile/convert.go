package lockfile

import (
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/zerr"
)

func toDocument(l domain.Lockfile) documentDTO {
	repos := make([]repositoryDTO, len(l.Repositories))
	for i, r := range l.Repositories {
		repos[i] = repositoryDTO{Alias: r.Alias, URL: r.URL, ForceSource: r.ForceSource}
	}

	entries := make([]entryDTO, len(l.Entries))
	for i, e := range l.Entries {
		entries[i] = entryDTO{
			Name:         e.Name,
			Version:      e.Version.String(),
			Source:       toSourceDTO(e.Source),
			Distribution: string(e.Distribution),
			SHA256:       e.SHA256,
			Deps:         e.Deps,
		}
		if !isZeroInstallOptions(e.InstallOptions) {
			entries[i].InstallOptions = &installOptsDTO{
				ForceSource:        e.InstallOptions.ForceSource,
				InstallSuggestions: e.InstallOptions.InstallSuggestions,
				DependenciesOnly:   e.InstallOptions.DependenciesOnly,
				ConfigureArgs:      e.InstallOptions.ConfigureArgs,
				Env:                e.InstallOptions.Env,
			}
		}
	}

	return documentDTO{
		SchemaVersion:   l.SchemaVersion,
		PlatformVersion: l.PlatformVersion.String(),
		Repositories:    repos,
		Packages:        entries,
	}
}

func toSourceDTO(s domain.Source) sourceDTO {
	dto := sourceDTO{Kind: string(s.Kind)}
	switch s.Kind {
	case domain.SourceKindRepository:
		dto.Alias = s.Repository.Alias
		dto.Distribution = string(s.Repository.Kind)
		dto.URL = s.Repository.URL
		dto.SHA256 = s.Repository.SHA256
	case domain.SourceKindVCS:
		dto.URL = s.VCS.URL
		dto.RefKind = string(s.VCS.RefKind)
		dto.Ref = s.VCS.Ref
		dto.Subdirectory = s.VCS.Subdirectory
		dto.CommitSHA = s.VCS.CommitSHA
	case domain.SourceKindLocalPath:
		dto.Path = s.LocalPath.Path
	case domain.SourceKindRemoteURL:
		dto.URL = s.RemoteURL.URL
		dto.SHA256 = s.RemoteURL.SHA256
	case domain.SourceKindBuiltin:
		dto.BuiltinVersion = s.Builtin.Version.String()
	}
	return dto
}

func fromDocument(doc documentDTO) (domain.Lockfile, error) {
	platformVersion, err := domain.ParseVersion(doc.PlatformVersion)
	if err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "field", "platform_version")
	}

	repos := make([]domain.LockfileRepository, len(doc.Repositories))
	for i, r := range doc.Repositories {
		repos[i] = domain.LockfileRepository{Alias: r.Alias, URL: r.URL, ForceSource: r.ForceSource}
	}

	entries := make([]domain.LockfileEntry, len(doc.Packages))
	for i, e := range doc.Packages {
		version, err := domain.ParseVersion(e.Version)
		if err != nil {
			return domain.Lockfile{}, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "field", "packages["+e.Name+"].version")
		}
		src, err := fromSourceDTO(e.Source)
		if err != nil {
			return domain.Lockfile{}, zerr.With(err, "name", e.Name)
		}

		entry := domain.LockfileEntry{
			Name:         e.Name,
			Version:      version,
			Source:       src,
			Distribution: domain.DistributionKind(e.Distribution),
			SHA256:       e.SHA256,
			Deps:         e.Deps,
		}
		if e.InstallOptions != nil {
			entry.InstallOptions = domain.InstallOptions{
				ForceSource:        e.InstallOptions.ForceSource,
				InstallSuggestions: e.InstallOptions.InstallSuggestions,
				DependenciesOnly:   e.InstallOptions.DependenciesOnly,
				ConfigureArgs:      e.InstallOptions.ConfigureArgs,
				Env:                e.InstallOptions.Env,
			}
		}
		entries[i] = entry
	}

	return domain.Lockfile{
		SchemaVersion:   doc.SchemaVersion,
		PlatformVersion: platformVersion,
		Repositories:    repos,
		Entries:         entries,
	}, nil
}

func fromSourceDTO(dto sourceDTO) (domain.Source, error) {
	switch domain.SourceKind(dto.Kind) {
	case domain.SourceKindRepository:
		return domain.NewRepositorySource(domain.RepositorySource{
			Alias: dto.Alias, Kind: domain.DistributionKind(dto.Distribution), URL: dto.URL, SHA256: dto.SHA256,
		}), nil
	case domain.SourceKindVCS:
		return domain.NewVCSSource(domain.VCSSource{
			URL: dto.URL, RefKind: domain.VCSRefKind(dto.RefKind), Ref: dto.Ref,
			Subdirectory: dto.Subdirectory, CommitSHA: dto.CommitSHA,
		}), nil
	case domain.SourceKindLocalPath:
		return domain.NewLocalPathSource(domain.LocalPathSource{Path: dto.Path}), nil
	case domain.SourceKindRemoteURL:
		return domain.NewRemoteURLSource(domain.RemoteURLSource{URL: dto.URL, SHA256: dto.SHA256}), nil
	case domain.SourceKindBuiltin:
		v, err := domain.ParseVersion(dto.BuiltinVersion)
		if err != nil {
			return domain.Source{}, zerr.Wrap(err, domain.ErrLockfileParseFailed.Error())
		}
		return domain.NewBuiltinSource(domain.BuiltinSource{Version: v}), nil
	default:
		return domain.Source{}, zerr.With(zerr.With(domain.ErrLockfileParseFailed, "reason", "unknown source kind"), "kind", dto.Kind)
	}
}
