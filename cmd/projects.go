package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/reposcan/pkg/discovery"
	"thoreinstein.com/reposcan/pkg/ui"
)

var listJSON bool
var addName string

// projectsCmd represents the projects command
var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"p"},
	Short:   "Manage the list of known projects",
	Long: `Manage the list of known projects.

The list lives in projects.file (default ~/.config/reposcan/projects.toml).
Each entry has a path, an optional display name and the time it was last
opened through 'reposcan projects touch' or 'reposcan projects pick'.`,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known projects, most recently used first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := newEngine().Projects()
		if err != nil {
			return err
		}
		return printProjects(cmd.OutOrStdout(), projects)
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a directory to the project list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newEngine().Add(args[0], addName)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", p.DisplayName(), p.Path)
		return nil
	},
}

var projectsRemoveCmd = &cobra.Command{
	Use:     "remove <path>",
	Aliases: []string{"rm"},
	Short:   "Remove a project from the list",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := newEngine().Remove(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return errors.Newf("project %q not found in known projects", args[0])
		}
		return nil
	},
}

var projectsTouchCmd = &cobra.Command{
	Use:   "touch [path]",
	Short: "Record that a project was just opened",
	Long: `Record that a project was just opened.

Without a path, the git repository containing the current directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := touchTarget(args)
		if err != nil {
			return err
		}
		touched, err := newEngine().Touch(path)
		if err != nil {
			return err
		}
		if !touched {
			return errors.Newf("project %q not found in known projects", path)
		}
		return nil
	},
}

var projectsPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a project interactively with fzf and print its path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine()
		projects, err := engine.Projects()
		if err != nil {
			return err
		}

		selected, err := ui.SelectProject(projects)
		if err != nil {
			if errors.Is(err, ui.ErrNoProjects) {
				return errors.New("No projects found. Run 'reposcan scan --save' first.")
			}
			return err
		}

		if _, err := engine.Touch(selected.Path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), selected.Path)
		return nil
	},
}

func init() {
	projectsListCmd.Flags().BoolVar(&listJSON, "json", false, "print the list as JSON")
	projectsAddCmd.Flags().StringVarP(&addName, "name", "n", "", "display name for the project")

	projectsCmd.AddCommand(projectsListCmd, projectsAddCmd, projectsRemoveCmd, projectsTouchCmd, projectsPickCmd)
	rootCmd.AddCommand(projectsCmd)
}

func printProjects(w io.Writer, projects []discovery.Project) error {
	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	}

	if !isTerminal(w) {
		for _, p := range projects {
			fmt.Fprintln(w, p.Path)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATH\tLAST ACCESSED")
	for _, p := range projects {
		last := "never"
		if t := p.LastAccessedTime(); !t.IsZero() {
			last = t.Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.DisplayName(), p.Path, last)
	}
	return tw.Flush()
}
