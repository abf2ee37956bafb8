package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bep/helpers/envhelpers"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   filepath.Join("testdata", "scripts"),
		Setup: setupScriptEnv,
		Condition: func(cond string) (bool, error) {
			switch cond {
			case "root":
				return os.Geteuid() == 0, nil
			}
			return false, fmt.Errorf("unknown condition %q", cond)
		},
	})
}

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"reposcan": main,
	})
}

// setupScriptEnv isolates each script from the user's configuration.
func setupScriptEnv(env *testscript.Env) error {
	work := env.WorkDir
	envhelpers.SetEnvVars(&env.Vars,
		"HOME", work,
		"XDG_CONFIG_HOME", filepath.Join(work, ".config"),
		"REPOSCAN_PROJECTS_FILE", filepath.Join(work, "state", "projects.toml"),
		"REPOSCAN_DISCOVERY_ROOT", filepath.Join(work, "src"),
	)
	return nil
}
