package checkout

import (
	"os"
	"testing"

	"github.com/srcup/srcup/internal/testutil"
)

func TestMain(m *testing.M) {
	testutil.UnsetGitEnv()
	testutil.IsolateGitConfig()
	os.Exit(m.Run())
}
