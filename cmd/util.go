package cmd

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"

	"thoreinstein.com/reposcan/pkg/git"
)

// touchTarget resolves the path for 'projects touch'.
func touchTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}
	root, err := git.FindRoot(cwd)
	if err != nil {
		return "", errors.Wrap(err, "failed to find repository root")
	}
	if root == "" {
		return "", errors.Newf("%s is not inside a git repository", cwd)
	}
	return root, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
