package errors

import (
	"fmt"
	"io/fs"
	"strings"
)

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	// Check for ConfigError
	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	// Check for RootResolutionError
	var rootErr *RootResolutionError
	if As(err, &rootErr) {
		return formatRootResolutionError(rootErr)
	}

	// Check for DirectoryReadError
	var dirErr *DirectoryReadError
	if As(err, &dirErr) {
		return fmt.Sprintf("Scan aborted: could not read directory %s\n\nUnderlying error: %v", dirErr.Dir, dirErr.Cause)
	}

	// Check for EntryReadError
	var entryErr *EntryReadError
	if As(err, &entryErr) {
		return fmt.Sprintf("Scan aborted: could not read an entry of %s (was it modified during the scan?)\n\nUnderlying error: %v", entryErr.Dir, entryErr.Cause)
	}

	// Check for StoreError
	var storeErr *StoreError
	if As(err, &storeErr) {
		return formatStoreError(storeErr)
	}

	// Default: return the error message as-is
	return err.Error()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check your config file: ~/.config/reposcan/config.toml\n")
	b.WriteString("  • Override a single value with REPOSCAN_<SECTION>_<KEY>\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

func formatRootResolutionError(err *RootResolutionError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Cannot scan %s\n", err.Root)
	switch {
	case Is(err.Cause, fs.ErrNotExist):
		b.WriteString("\nThe path does not exist or is a broken symlink.\n")
	case Is(err.Cause, fs.ErrPermission):
		b.WriteString("\nPermission denied while resolving the path.\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

func formatStoreError(err *StoreError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project list %s failed for %s: %s\n", strings.ToLower(err.Operation), err.Path, err.Message)
	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check the file is valid and writable\n")
	b.WriteString("  • Point projects.file at another location in ~/.config/reposcan/config.toml\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}
