package sync

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

// installStep fetches, stages, installs, and materializes one package
// into the library (§4.H "Staging"). A builtin source needs none of
// this and is treated as trivially satisfied.
func installStep(ctx context.Context, input ports.SyncInput, step domain.PlanStep) error {
	node := step.Node
	if node == nil {
		return zerr.With(domain.ErrInstallFailed, "name", step.Name)
	}
	if node.Source.Kind == domain.SourceKindBuiltin {
		return nil
	}

	sourceTree, err := fetchSource(ctx, input.Fetchers, step.Name, node.Source)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "name", step.Name)
	}

	stagingPath := filepath.Join(input.StagingRoot, step.Name)
	if err := os.RemoveAll(stagingPath); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "name", step.Name)
	}

	req := ports.InstallRequest{
		Node:           *node,
		SourceTreePath: sourceTree,
		StagingPath:    stagingPath,
		Env:            node.InstallOptions.Env,
		ConfigureArgs:  node.InstallOptions.ConfigureArgs,
	}
	if err := input.Installer.Install(ctx, req); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "name", step.Name)
	}

	ok, err := input.Library.MetadataExists(stagingPath, step.Name, node.Version)
	if err != nil || !ok {
		return zerr.With(domain.ErrInstallPostConditionFailed, "name", step.Name)
	}

	libraryDir := filepath.Join(input.LibraryPath, step.Name)
	if err := materialize(input, stagingPath, libraryDir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "name", step.Name)
	}

	fingerprint := filepath.Join(libraryDir, domain.FingerprintFileName)
	if err := os.WriteFile(fingerprint, []byte(node.Source.String()), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "name", step.Name)
	}

	return nil
}

// materialize transfers the staged directory into the library via the
// configured link mode, falling back to copy on any runtime failure
// (§4.H "Any attempted mode that fails at runtime falls back to copy").
func materialize(input ports.SyncInput, src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	if err := input.LinkMode.Materialize(src, dst); err == nil {
		return nil
	}
	if input.CopyFallback == nil {
		return zerr.With(domain.ErrLinkModeFailed, "reason", "no copy fallback configured")
	}
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	return input.CopyFallback.Materialize(src, dst)
}

// fetchSource dispatches to the first fetcher supporting src's kind.
func fetchSource(ctx context.Context, fetchers []ports.SourceFetcher, name string, src domain.Source) (string, error) {
	for _, f := range fetchers {
		if f.Supports(src.Kind) {
			result, err := f.Fetch(ctx, name, src)
			if err != nil {
				return "", err
			}
			return result.WorkingTreePath, nil
		}
	}
	return "", zerr.With(domain.ErrFetchFailed, "name", name)
}

// removeStep deletes name's library directory, first consulting the
// open-file check unless it has been opted out of (§4.H "Removal safety").
func removeStep(input ports.SyncInput, step domain.PlanStep) (deferred bool, err error) {
	dir := filepath.Join(input.LibraryPath, step.Name)

	if !input.SkipSafetyCheck && input.OpenFileChecker != nil {
		open, checkErr := input.OpenFileChecker.IsOpen(dir)
		if checkErr != nil {
			return false, zerr.With(zerr.Wrap(checkErr, domain.ErrRemovalRefused.Error()), "name", step.Name)
		}
		if open {
			return true, nil
		}
	}

	if err := input.Library.Remove(input.LibraryPath, step.Name); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrRemovalRefused.Error()), "name", step.Name)
	}
	return false, nil
}
