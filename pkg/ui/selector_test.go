package ui

import (
	"errors"
	"testing"

	"thoreinstein.com/reposcan/pkg/discovery"
)

func TestSelectProject_NoProjects(t *testing.T) {
	_, err := SelectProject(nil)
	if !errors.Is(err, ErrNoProjects) {
		t.Errorf("SelectProject(nil) error = %v, want ErrNoProjects", err)
	}
}

func TestFormatChoices(t *testing.T) {
	projects := []discovery.Project{
		{Path: "/src/alpha"},
		{Path: "/src/beta", Name: "Beta"},
	}

	want := "alpha\t/src/alpha\nBeta\t/src/beta\n"
	if got := formatChoices(projects); got != want {
		t.Errorf("formatChoices() = %q, want %q", got, want)
	}
}

func TestParseSelection(t *testing.T) {
	projects := []discovery.Project{
		{Path: "/src/alpha"},
		{Path: "/src/with\ttab"},
	}

	tests := []struct {
		name    string
		output  string
		want    string
		wantErr error
	}{
		{name: "selected", output: "alpha\t/src/alpha\n", want: "/src/alpha"},
		{name: "tab in path", output: "x\t/src/with\ttab\n", want: "/src/with\ttab"},
		{name: "empty", output: "\n", wantErr: ErrCancelled},
		{name: "unknown", output: "gone\t/src/gone\n"},
		{name: "malformed", output: "no-tab\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelection(projects, tt.output)
			if tt.want != "" {
				if err != nil {
					t.Fatalf("parseSelection() error = %v", err)
				}
				if got.Path != tt.want {
					t.Errorf("parseSelection() = %q, want %q", got.Path, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatal("parseSelection() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("parseSelection() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
