package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"thoreinstein.com/reposcan/pkg/discovery"
)

var (
	// ErrCancelled is returned when the user cancels the selection
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoProjects is returned when there are no projects to select from
	ErrNoProjects = errors.New("no projects found")
)

// SelectProject prompts the user to select a project using fzf
func SelectProject(projects []discovery.Project) (*discovery.Project, error) {
	if len(projects) == 0 {
		return nil, ErrNoProjects
	}

	// Check if fzf is installed
	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return nil, fmt.Errorf("fzf not found in PATH: %w", err)
	}

	// --with-nth=1,2: Display and search both name and path
	// #nosec G204 - fzf binary is looked up in PATH, no user-controlled arguments are passed directly
	cmd := exec.Command(fzfPath,
		"--height=40%",
		"--layout=reverse",
		"--delimiter=\t",
		"--with-nth=1,2",
		"--cycle",
	)
	cmd.Stdin = bytes.NewBufferString(formatChoices(projects))
	cmd.Stderr = os.Stderr // fzf uses stderr for UI rendering
	var output bytes.Buffer
	cmd.Stdout = &output

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// fzf returns 130 on cancellation (ESC, Ctrl-C, Ctrl-G)
			if exitErr.ExitCode() == 130 {
				return nil, ErrCancelled
			}
		}
		return nil, fmt.Errorf("fzf failed: %w", err)
	}

	return parseSelection(projects, output.String())
}

// formatChoices renders one "name<TAB>path" line per project.
func formatChoices(projects []discovery.Project) string {
	var b strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&b, "%s\t%s\n", p.DisplayName(), p.Path)
	}
	return b.String()
}

// parseSelection maps fzf output back to the project it came from.
func parseSelection(projects []discovery.Project, output string) (*discovery.Project, error) {
	selectedLine := strings.TrimSpace(output)
	if selectedLine == "" {
		return nil, ErrCancelled
	}

	parts := strings.SplitN(selectedLine, "\t", 2)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid selection output: %q", selectedLine)
	}

	selectedPath := parts[1]
	for i := range projects {
		if projects[i].Path == selectedPath {
			return &projects[i], nil
		}
	}

	return nil, fmt.Errorf("selected project path %q not found in original list", selectedPath)
}
