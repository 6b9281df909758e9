// Package testutil holds helpers shared by tests that run real git.
package testutil

import "os"

var gitEnvVars = []string{
	"GIT_DIR",
	"GIT_WORK_TREE",
	"GIT_INDEX_FILE",
	"GIT_COMMON_DIR",
	"GIT_PREFIX",
	"GIT_OBJECT_DIRECTORY",
	"GIT_ALTERNATE_OBJECT_DIRECTORIES",
	"GIT_CEILING_DIRECTORIES",
}

// UnsetGitEnv clears git environment variables that can redirect repo
// operations, so tests that clone and fetch real repositories are not
// affected by the invoking environment.
func UnsetGitEnv() {
	for _, key := range gitEnvVars {
		_ = os.Unsetenv(key)
	}
}

// IsolateGitConfig points git's global and system config at /dev/null so
// user settings (e.g. init.defaultBranch, URL rewrites) cannot leak into
// tests.
func IsolateGitConfig() {
	_ = os.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	_ = os.Setenv("GIT_CONFIG_SYSTEM", "/dev/null")
}
