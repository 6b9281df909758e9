package checkout

import (
	"context"
	"log"
	"os"
	"os/exec"
	"strings"
)

// bootstrapScript is the per-branch setup executable expected at the root of
// a freshly reconciled checkout.
const bootstrapScript = "./bootstrap"

// noClobberEnv tells the branch's bootstrap script not to rebuild an
// existing environment. The script has to check the variable itself.
const noClobberEnv = "NO_CLOBBER"

// runBootstrap invokes the checkout's bootstrap script. Bootstrap failure is
// never fatal to the reconciliation result: a nonzero exit is logged as a
// warning along with the script's output.
func (m *Manager) runBootstrap(ctx context.Context, dest string) {
	log.Printf("bootstrapping %s", dest)

	ctx, cancel := context.WithTimeout(ctx, m.cfg.BootstrapTimeoutDuration())
	defer cancel()

	cmd := exec.CommandContext(ctx, bootstrapScript)
	cmd.Dir = dest
	cmd.Env = append(os.Environ(), noClobberEnv+"=1")

	out, err := cmd.CombinedOutput()
	if err != nil {
		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			if line != "" {
				log.Printf("warning: bootstrap: %s", line)
			}
		}
		log.Printf("warning: bootstrap for %s failed: %v", dest, err)
		return
	}
	log.Printf("bootstrap for %s exited with status 0", dest)
}
