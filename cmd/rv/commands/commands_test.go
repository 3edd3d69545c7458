package commands_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/rv/cmd/rv/commands"
	"go.trai.ch/rv/internal/app"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
)

// stubConfigLoader returns a fixed, valid configuration with no
// dependencies, so Plan/Sync always produce an empty plan.
type stubConfigLoader struct {
	cfg domain.ProjectConfig
	err error
}

func (s stubConfigLoader) Load(string) (domain.ProjectConfig, error) { return s.cfg, s.err }

type stubRepositoryDB struct {
	cleared bool
}

func (stubRepositoryDB) Load(context.Context, domain.RepositoryConfig, domain.Version, string) (*domain.RepositoryIndex, error) {
	return &domain.RepositoryIndex{}, nil
}
func (stubRepositoryDB) Lookup(*domain.RepositoryIndex, string) []domain.RepositoryCandidate {
	return nil
}
func (s *stubRepositoryDB) Clear() error {
	s.cleared = true
	return nil
}

type stubResolver struct{}

func (stubResolver) Resolve(context.Context, ports.ResolutionInput) ([]domain.ResolvedNode, error) {
	return nil, nil
}

type stubLockfileStore struct {
	written *domain.Lockfile
}

func (s *stubLockfileStore) Read(string) (*domain.Lockfile, error) { return nil, nil }
func (s *stubLockfileStore) Write(_ string, l domain.Lockfile) error {
	s.written = &l
	return nil
}

type stubPlanner struct{}

func (stubPlanner) Plan([]domain.ResolvedNode, domain.LibraryState) domain.Plan {
	return domain.Plan{}
}

type stubSyncEngine struct {
	result ports.SyncResult
	err    error
}

func (s stubSyncEngine) Run(context.Context, ports.SyncInput) (ports.SyncResult, error) {
	return s.result, s.err
}

type stubInstaller struct{}

func (stubInstaller) Install(context.Context, ports.InstallRequest) error { return nil }

type stubLibrary struct{}

func (stubLibrary) Read(string) (domain.LibraryState, error)                    { return domain.LibraryState{}, nil }
func (stubLibrary) MetadataExists(string, string, domain.Version) (bool, error) { return true, nil }
func (stubLibrary) Remove(string, string) error                                 { return nil }

type stubOpenFileChecker struct{}

func (stubOpenFileChecker) IsOpen(string) (bool, error) { return false, nil }

type stubLogger struct{}

func (stubLogger) Info(string)         {}
func (stubLogger) Warn(string)         {}
func (stubLogger) Error(error)         {}
func (stubLogger) SetOutput(io.Writer) {}
func (stubLogger) SetJSON(bool)        {}

type stubSpan struct{ io.Writer }

func (stubSpan) End()                     {}
func (stubSpan) RecordError(error)        {}
func (stubSpan) SetAttribute(string, any) {}

type stubTracer struct{}

func (stubTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, stubSpan{Writer: io.Discard}
}

func newTestApp(t *testing.T, syncEngine ports.SyncEngine, lockfileStore ports.LockfileStore) *app.App {
	return newTestAppWithRepositoryDB(t, syncEngine, lockfileStore, &stubRepositoryDB{})
}

func newTestAppWithRepositoryDB(t *testing.T, syncEngine ports.SyncEngine, lockfileStore ports.LockfileStore, repositoryDB ports.RepositoryDatabase) *app.App {
	t.Helper()
	cfg := domain.ProjectConfig{
		Name:            "test-project",
		PlatformVersion: domain.MustParseVersion("4.3.1"),
	}
	return app.New(
		stubConfigLoader{cfg: cfg},
		repositoryDB,
		stubResolver{},
		lockfileStore,
		stubPlanner{},
		syncEngine,
		stubInstaller{},
		stubLibrary{},
		stubOpenFileChecker{},
		nil,
		stubLogger{},
		stubTracer{},
	)
}

func runCLI(t *testing.T, a *app.App, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := &bytes.Buffer{}
	cli.SetOut(buf)
	cli.SetArgs(args)

	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCLI_Plan_SucceedsWithEmptyPlan(t *testing.T) {
	projectDir := t.TempDir()
	a := newTestApp(t, stubSyncEngine{}, &stubLockfileStore{})

	out, err := runCLI(t, a, "plan", "--project", projectDir)
	require.NoError(t, err)
	assert.Contains(t, out, "already matches the desired state")
}

func TestCLI_Lock_WritesLockfile(t *testing.T) {
	projectDir := t.TempDir()
	store := &stubLockfileStore{}
	a := newTestApp(t, stubSyncEngine{}, store)

	out, err := runCLI(t, a, "lock", "--project", projectDir)
	require.NoError(t, err)
	require.NotNil(t, store.written)
	assert.Contains(t, out, "wrote lockfile")
}

func TestCLI_Sync_ReportsSyncEngineError(t *testing.T) {
	projectDir := t.TempDir()
	engine := stubSyncEngine{err: assert.AnError}
	a := newTestApp(t, engine, &stubLockfileStore{})

	out, err := runCLI(t, a, "sync", "--project", projectDir)
	assert.Error(t, err)
	assert.Contains(t, out, "sync completed with failures")
}

func TestCLI_Sync_WritesLockfileOnSuccess(t *testing.T) {
	projectDir := t.TempDir()
	store := &stubLockfileStore{}
	engine := stubSyncEngine{result: ports.SyncResult{Installed: []string{"pkgA"}}}
	a := newTestApp(t, engine, store)

	out, err := runCLI(t, a, "sync", "--project", projectDir)
	require.NoError(t, err)
	require.NotNil(t, store.written)
	assert.Contains(t, out, "sync complete")
}

func TestCLI_UpgradeFlag_SelectsUpgradeMode(t *testing.T) {
	projectDir := t.TempDir()
	a := newTestApp(t, stubSyncEngine{}, &stubLockfileStore{})

	_, err := runCLI(t, a, "plan", "--project", projectDir, "--upgrade")
	require.NoError(t, err)
}

func TestCLI_CacheClean_ClearsRepositoryDatabase(t *testing.T) {
	repositoryDB := &stubRepositoryDB{}
	a := newTestAppWithRepositoryDB(t, stubSyncEngine{}, &stubLockfileStore{}, repositoryDB)

	out, err := runCLI(t, a, "cache", "clean")
	require.NoError(t, err)
	assert.True(t, repositoryDB.cleared)
	assert.Contains(t, out, "cache cleared")
}

func TestCLI_UnknownCommand_ReturnsError(t *testing.T) {
	a := newTestApp(t, stubSyncEngine{}, &stubLockfileStore{})
	_, err := runCLI(t, a, "bogus")
	assert.Error(t, err)
}
