// Package installer invokes the external platform install tool for one
// package (§9 "Installer boundary"). The core trusts the exit status and
// the metadata post-condition; it never introspects the installer's log.
package installer

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Installer)(nil)

// Installer shells out to the platform's own install command
// ("R CMD INSTALL" and equivalents), the same boundary every renv-style
// tool in this ecosystem delegates native compilation to.
type Installer struct {
	command string
	logger  ports.Logger
}

// New creates an Installer that runs the given command (its argv[0]) to
// perform installs, logging its combined output through logger.
func New(command string, logger ports.Logger) *Installer {
	if command == "" {
		command = "R"
	}
	return &Installer{command: command, logger: logger}
}

// Install runs the configured install command against req's source tree,
// targeting req.StagingPath, with req.Env and req.ConfigureArgs applied.
func (i *Installer) Install(ctx context.Context, req ports.InstallRequest) error {
	if err := os.MkdirAll(req.StagingPath, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "name", req.Node.Name)
	}

	args := []string{"CMD", "INSTALL", "--library=" + req.StagingPath, "--use-vanilla"}
	for _, arg := range req.ConfigureArgs {
		args = append(args, "--configure-args="+arg)
	}
	args = append(args, req.SourceTreePath)

	cmd := exec.CommandContext(ctx, i.command, args...) //nolint:gosec // command and args are project-configured, not user input at call time
	cmd.Env = mergeEnv(os.Environ(), req.StagingPath, req.Env)
	cmd.Stdout = &logWriter{logger: i.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: i.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "name", req.Node.Name), "exit_code", exitCode)
	}
	return nil
}

// mergeEnv layers req's per-package overrides on top of the ambient
// process environment, strips any pre-existing library-path variables,
// and points both the site and user library at the staging path so the
// installer never touches a library outside its target.
func mergeEnv(base []string, stagingPath string, override map[string]string) []string {
	merged := make(map[string]string, len(base)+len(override)+2)
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.HasPrefix(k, "R_LIBS") {
			continue
		}
		merged[k] = v
	}
	merged["R_LIBS_SITE"] = stagingPath
	merged["R_LIBS_USER"] = stagingPath
	for k, v := range override {
		merged[k] = v
	}

	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	return out
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
