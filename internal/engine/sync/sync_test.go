package sync_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	syncengine "go.trai.ch/rv/internal/engine/sync"
)

// recordingInstaller records the order in which packages are installed,
// so tests can assert that dependencies were installed before dependents.
type recordingInstaller struct {
	mu    sync.Mutex
	order []string
	delay map[string]time.Duration
	fail  map[string]bool
}

func (r *recordingInstaller) Install(ctx context.Context, req ports.InstallRequest) error {
	if d, ok := r.delay[req.Node.Name]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	r.order = append(r.order, req.Node.Name)
	fail := r.fail[req.Node.Name]
	r.mu.Unlock()
	if fail {
		return assert.AnError
	}
	return nil
}

type stubLibrary struct{}

func (stubLibrary) Read(string) (domain.LibraryState, error)                        { return domain.LibraryState{}, nil }
func (stubLibrary) MetadataExists(string, string, domain.Version) (bool, error)     { return true, nil }
func (stubLibrary) Remove(string, string) error                                     { return nil }

type stubFetcher struct{}

func (stubFetcher) Supports(kind domain.SourceKind) bool { return kind == domain.SourceKindLocalPath }
func (stubFetcher) Fetch(_ context.Context, name string, _ domain.Source) (ports.FetchResult, error) {
	return ports.FetchResult{WorkingTreePath: "/tmp/" + name}, nil
}

type noopLinkStrategy struct{}

func (noopLinkStrategy) Mode() ports.LinkMode                       { return ports.LinkModeCopy }
func (noopLinkStrategy) Materialize(_, _ string) error              { return nil }

func nodeStep(name string, deps ...string) domain.PlanStep {
	node := domain.ResolvedNode{
		Name:    name,
		Version: domain.MustParseVersion("1.0.0"),
		Source:  domain.NewLocalPathSource(domain.LocalPathSource{Path: "/src/" + name}),
		Deps:    deps,
	}
	return domain.PlanStep{Name: name, Action: domain.ActionInstall, Node: &node}
}

func baseInput(plan domain.Plan, installer *recordingInstaller) ports.SyncInput {
	return ports.SyncInput{
		Plan:         plan,
		LibraryPath:  "/library",
		StagingRoot:  "/staging",
		Workers:      4,
		LinkMode:     noopLinkStrategy{},
		CopyFallback: noopLinkStrategy{},
		Installer:    installer,
		Fetchers:     []ports.SourceFetcher{stubFetcher{}},
		Library:      stubLibrary{},
	}
}

func TestEngine_Run_InstallsDependenciesBeforeDependents(t *testing.T) {
	// c depends on b, b depends on a; a is deliberately slower so a
	// naive unordered scheduler would still get this wrong if it ran
	// leaves in name order without respecting Deps.
	plan := domain.Plan{Steps: []domain.PlanStep{
		nodeStep("a"),
		nodeStep("b", "a"),
		nodeStep("c", "b"),
	}}
	installer := &recordingInstaller{delay: map[string]time.Duration{"a": 20 * time.Millisecond}}

	result, err := syncengine.New().Run(context.Background(), baseInput(plan, installer))
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.ElementsMatch(t, []string{"a", "b", "c"}, result.Installed)

	posA, posB, posC := indexOf(installer.order, "a"), indexOf(installer.order, "b"), indexOf(installer.order, "c")
	assert.Less(t, posA, posB)
	assert.Less(t, posB, posC)
}

func TestEngine_Run_IndependentStepsRunConcurrently(t *testing.T) {
	plan := domain.Plan{Steps: []domain.PlanStep{
		nodeStep("a"),
		nodeStep("b"),
	}}
	installer := &recordingInstaller{delay: map[string]time.Duration{"a": 30 * time.Millisecond, "b": 30 * time.Millisecond}}

	start := time.Now()
	result, err := syncengine.New().Run(context.Background(), baseInput(plan, installer))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Less(t, elapsed, 55*time.Millisecond, "independent steps should run in parallel, not serially")
}

func TestEngine_Run_CancellationLeavesConsistentPrefix(t *testing.T) {
	// b depends on a; a is slow enough that the context is cancelled
	// while a is still running, so b must never be attempted.
	plan := domain.Plan{Steps: []domain.PlanStep{
		nodeStep("a"),
		nodeStep("b", "a"),
	}}
	installer := &recordingInstaller{delay: map[string]time.Duration{"a": 50 * time.Millisecond}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	result, err := syncengine.New().Run(ctx, baseInput(plan, installer))
	require.Error(t, err)
	assert.NotContains(t, result.Installed, "b")
}

func TestEngine_Run_OneFailureDoesNotAbortIndependentSteps(t *testing.T) {
	plan := domain.Plan{Steps: []domain.PlanStep{
		nodeStep("a"),
		nodeStep("b"),
	}}
	installer := &recordingInstaller{fail: map[string]bool{"a": true}}

	result, err := syncengine.New().Run(context.Background(), baseInput(plan, installer))
	require.Error(t, err)
	assert.False(t, result.Succeeded())
	assert.Contains(t, result.Installed, "b")
	assert.Contains(t, result.Failed, "a")
}

func TestEngine_Run_FailureMarksDependentsUnreachable(t *testing.T) {
	// c depends on b, b depends on a; a fails so b and c must never be
	// attempted and must surface as unreachable rather than vanish.
	plan := domain.Plan{Steps: []domain.PlanStep{
		nodeStep("a"),
		nodeStep("b", "a"),
		nodeStep("c", "b"),
		nodeStep("d"),
	}}
	installer := &recordingInstaller{fail: map[string]bool{"a": true}}

	result, err := syncengine.New().Run(context.Background(), baseInput(plan, installer))
	require.Error(t, err)
	assert.False(t, result.Succeeded())
	assert.Contains(t, result.Failed, "a")
	assert.ElementsMatch(t, []string{"b", "c"}, result.Unreachable)
	assert.Contains(t, result.Installed, "d")
	assert.NotContains(t, installer.order, "b")
	assert.NotContains(t, installer.order, "c")
}

func TestEngine_Run_BuiltinStepsSkipInstallAndFetch(t *testing.T) {
	node := domain.ResolvedNode{
		Name:    "methods",
		Version: domain.MustParseVersion("4.3.1"),
		Source:  domain.NewBuiltinSource(domain.BuiltinSource{Version: domain.MustParseVersion("4.3.1")}),
	}
	plan := domain.Plan{Steps: []domain.PlanStep{{Name: "methods", Action: domain.ActionInstall, Node: &node}}}
	installer := &recordingInstaller{}

	result, err := syncengine.New().Run(context.Background(), baseInput(plan, installer))
	require.NoError(t, err)
	assert.Contains(t, result.Installed, "methods")
	assert.Empty(t, installer.order)
}

type failingChecker struct{ open bool }

func (f failingChecker) IsOpen(string) (bool, error) { return f.open, nil }

func TestEngine_Run_RemovalDeferredWhenPackageOpen(t *testing.T) {
	installedNode := domain.InstalledPackage{Name: "old", Version: domain.MustParseVersion("1.0.0")}
	plan := domain.Plan{Steps: []domain.PlanStep{{Name: "old", Action: domain.ActionRemove, Installed: &installedNode}}}

	input := baseInput(plan, &recordingInstaller{})
	input.OpenFileChecker = failingChecker{open: true}

	result, err := syncengine.New().Run(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, result.Deferred, "old")
	assert.Empty(t, result.Removed)
}

func TestEngine_Run_RemovalProceedsWhenPackageClosed(t *testing.T) {
	installedNode := domain.InstalledPackage{Name: "old", Version: domain.MustParseVersion("1.0.0")}
	plan := domain.Plan{Steps: []domain.PlanStep{{Name: "old", Action: domain.ActionRemove, Installed: &installedNode}}}

	input := baseInput(plan, &recordingInstaller{})
	input.OpenFileChecker = failingChecker{open: false}

	result, err := syncengine.New().Run(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, result.Removed, "old")
	assert.Empty(t, result.Deferred)
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
