package installer_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/rv/internal/adapters/installer"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
)

type discardLogger struct{}

func (discardLogger) Info(string)          {}
func (discardLogger) Warn(string)          {}
func (discardLogger) Error(error)          {}
func (discardLogger) SetOutput(io.Writer)  {}
func (discardLogger) SetJSON(bool)         {}

// fakeInstallScript stands in for "R CMD INSTALL": a shell script that
// records its arguments and environment, then exits 0.
func fakeInstallScript(t *testing.T, recordPath string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake install script is a POSIX shell script")
	}
	script := filepath.Join(t.TempDir(), "R")
	contents := "#!/bin/sh\necho \"$@\" > " + recordPath + "\necho \"R_LIBS_USER=$R_LIBS_USER\" >> " + recordPath + "\nexit 0\n"
	require.NoError(t, os.WriteFile(script, []byte(contents), 0o755))
	return script
}

func TestInstaller_Install_InvokesCommandWithStagingLibrary(t *testing.T) {
	recordPath := filepath.Join(t.TempDir(), "record.txt")
	script := fakeInstallScript(t, recordPath)

	staging := t.TempDir()
	inst := installer.New(script, discardLogger{})

	req := ports.InstallRequest{
		Node:           domain.ResolvedNode{Name: "demo"},
		SourceTreePath: "/src/demo",
		StagingPath:    staging,
	}
	err := inst.Install(context.Background(), req)
	require.NoError(t, err)

	data, err := os.ReadFile(recordPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CMD INSTALL")
	assert.Contains(t, string(data), "--library="+staging)
	assert.Contains(t, string(data), "R_LIBS_USER="+staging)
}

func TestInstaller_Install_FailingCommandReturnsError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake install script is a POSIX shell script")
	}
	script := filepath.Join(t.TempDir(), "R")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 1\n"), 0o755))

	inst := installer.New(script, discardLogger{})
	req := ports.InstallRequest{
		Node:           domain.ResolvedNode{Name: "demo"},
		SourceTreePath: "/src/demo",
		StagingPath:    t.TempDir(),
	}
	err := inst.Install(context.Background(), req)
	require.Error(t, err)
}
