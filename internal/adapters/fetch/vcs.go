package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.trai.ch/rv/internal/adapters/filelock"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

// VCSFetcher clones and checks out version-control sources into a
// content-addressed cache keyed by (url, ref) (§4.D "VersionControl").
type VCSFetcher struct {
	cacheDir          string
	recurseSubmodules bool
}

// NewVCSFetcher builds a VCSFetcher rooted at cacheDir. recurseSubmodules
// mirrors the RV_VCS_SUBMODULES environment toggle (§6).
func NewVCSFetcher(cacheDir string, recurseSubmodules bool) *VCSFetcher {
	return &VCSFetcher{cacheDir: cacheDir, recurseSubmodules: recurseSubmodules}
}

func (f *VCSFetcher) Supports(kind domain.SourceKind) bool {
	return kind == domain.SourceKindVCS
}

func (f *VCSFetcher) Fetch(ctx context.Context, name string, src domain.Source) (ports.FetchResult, error) {
	if src.VCS == nil {
		return ports.FetchResult{}, zerr.With(domain.ErrFetchFailed, "package", name)
	}
	v := src.VCS

	dest := f.cloneDir(v.URL, v.Ref)

	var commit string
	lockErr := filelock.WithLock(f.repoLockPath(v.URL), func() error {
		repo, cloneErr := f.cloneOrOpen(ctx, dest, v)
		if cloneErr != nil {
			return zerr.With(zerr.Wrap(cloneErr, domain.ErrFetchFailed.Error()), "url", v.URL)
		}

		c, checkoutErr := f.resolveAndCheckout(repo, dest, v)
		if checkoutErr != nil {
			return zerr.With(zerr.Wrap(checkoutErr, domain.ErrVCSRefNotFound.Error()), "ref", v.Ref)
		}
		commit = c
		return nil
	})
	if lockErr != nil {
		return ports.FetchResult{}, lockErr
	}

	root := dest
	if v.Subdirectory != "" {
		root = filepath.Join(dest, v.Subdirectory)
	}

	record, err := parseMetadataFileAt(root)
	if err != nil {
		return ports.FetchResult{}, err
	}

	return ports.FetchResult{WorkingTreePath: root, Record: record, ResolvedCommit: commit}, nil
}

func (f *VCSFetcher) cloneDir(url, ref string) string {
	h := xxhash.New()
	_, _ = h.Write([]byte(url))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(ref))
	return filepath.Join(f.cacheDir, strconv.FormatUint(h.Sum64(), 16))
}

// repoLockPath returns the lock file guarding every ref of url, so the
// clone cache serializes per-repository across concurrently running rv
// processes (§4.D "the version-control clone cache is shared across
// projects").
func (f *VCSFetcher) repoLockPath(url string) string {
	h := xxhash.New()
	_, _ = h.Write([]byte(url))
	return filepath.Join(f.cacheDir, ".locks", strconv.FormatUint(h.Sum64(), 16)+".lock")
}

func (f *VCSFetcher) cloneOrOpen(ctx context.Context, dest string, v *domain.VCSSource) (*git.Repository, error) {
	if _, err := os.Stat(filepath.Join(dest, ".git")); err == nil {
		repo, openErr := git.PlainOpen(dest)
		if openErr != nil {
			return nil, openErr
		}
		// A branch ref may have moved upstream; a tag or commit pin never does.
		if v.RefKind == domain.VCSRefBranch {
			wt, err := repo.Worktree()
			if err != nil {
				return nil, err
			}
			_ = wt.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
		}
		return repo, nil
	}

	return git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:               v.URL,
		RecurseSubmodules: submoduleOption(f.recurseSubmodules),
	})
}

func (f *VCSFetcher) resolveAndCheckout(repo *git.Repository, dest string, v *domain.VCSSource) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}

	var opts git.CheckoutOptions
	switch v.RefKind {
	case domain.VCSRefBranch:
		opts.Branch = plumbing.NewRemoteReferenceName("origin", v.Ref)
	case domain.VCSRefTag:
		opts.Branch = plumbing.NewTagReferenceName(v.Ref)
	case domain.VCSRefCommit:
		opts.Hash = plumbing.NewHash(v.Ref)
	default:
		return "", errors.New("unrecognized vcs ref kind")
	}

	if err := wt.Checkout(&opts); err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

func submoduleOption(recurse bool) git.SubmoduleRescursivity {
	if recurse {
		return git.DefaultSubmoduleRecursionDepth
	}
	return 0
}
