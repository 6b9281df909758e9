package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

func setupOrigin(t *testing.T) string {
	t.Helper()
	origin := t.TempDir()
	mustGit(t, origin, "init", "-b", "main")
	mustGit(t, origin, "config", "user.name", "Test User")
	mustGit(t, origin, "config", "user.email", "test@example.com")
	require.NoError(t, os.WriteFile(filepath.Join(origin, "README"), []byte("origin\n"), 0o644))
	mustGit(t, origin, "add", "README")
	mustGit(t, origin, "commit", "-m", "initial commit")
	return origin
}

// writeTestConfig writes a config pointing at a local origin and returns its
// path along with the base path for checkouts.
func writeTestConfig(t *testing.T, origin string) (configPath, basePath string) {
	t.Helper()
	dir := t.TempDir()
	basePath = filepath.Join(dir, "src")
	configPath = filepath.Join(dir, "config.yaml")
	content := "base_path: " + basePath + "\n" +
		"registry_path: " + filepath.Join(dir, "registry.db") + "\n" +
		"artifacts:\n" +
		"  - name: suite\n" +
		"    repo: " + origin + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath, basePath
}

// runApp executes the CLI with args and returns its stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := New()
	buf := new(bytes.Buffer)
	app.rootCmd.SetOut(buf)
	app.rootCmd.SetErr(buf)
	app.rootCmd.SetArgs(args)
	err := app.Execute()
	return buf.String(), err
}

func TestSyncCmd(t *testing.T) {
	origin := setupOrigin(t)
	configPath, basePath := writeTestConfig(t, origin)

	out, err := runApp(t, "--config", configPath, "sync", "suite", "main")
	require.NoError(t, err)

	dest := filepath.Join(basePath, "suite_main")
	assert.Equal(t, dest, strings.TrimSpace(out))
	assert.Equal(t,
		mustGit(t, origin, "rev-parse", "HEAD"),
		mustGit(t, dest, "rev-parse", "HEAD"))
}

func TestSyncCmd_MissingBranch(t *testing.T) {
	origin := setupOrigin(t)
	configPath, basePath := writeTestConfig(t, origin)

	_, err := runApp(t, "--config", configPath, "sync", "suite", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")

	_, statErr := os.Stat(filepath.Join(basePath, "suite_nope"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSyncCmd_UnknownArtifact(t *testing.T) {
	origin := setupOrigin(t)
	configPath, _ := writeTestConfig(t, origin)

	_, err := runApp(t, "--config", configPath, "sync", "other", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestPrefetchCmd(t *testing.T) {
	origin := setupOrigin(t)
	configPath, basePath := writeTestConfig(t, origin)

	out, err := runApp(t, "--config", configPath, "prefetch", "main")
	require.NoError(t, err)
	assert.Contains(t, out, "suite")
	assert.Contains(t, out, filepath.Join(basePath, "suite_main"))
}

func TestStatusCmd(t *testing.T) {
	origin := setupOrigin(t)
	configPath, _ := writeTestConfig(t, origin)

	_, err := runApp(t, "--config", configPath, "sync", "suite", "main")
	require.NoError(t, err)

	out, err := runApp(t, "--config", configPath, "status", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "suite")
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "ok")
}

func TestStatusCmd_Empty(t *testing.T) {
	origin := setupOrigin(t)
	configPath, _ := writeTestConfig(t, origin)

	out, err := runApp(t, "--config", configPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "no checkouts materialized")
}

func TestHistoryCmd(t *testing.T) {
	origin := setupOrigin(t)
	configPath, _ := writeTestConfig(t, origin)

	_, err := runApp(t, "--config", configPath, "sync", "suite", "main")
	require.NoError(t, err)
	_, _ = runApp(t, "--config", configPath, "sync", "suite", "nope")

	out, err := runApp(t, "--config", configPath, "history", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "failed")
}

func TestVersionCmd_Output(t *testing.T) {
	app := New()
	app.SetVersion("1.2.3", "abc1234", "2024-01-15T10:30:00Z")

	cmd := NewVersionCmd(app)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "1.2.3")
	assert.Contains(t, output, "abc1234")
	assert.Contains(t, output, "2024-01-15T10:30:00Z")
}
