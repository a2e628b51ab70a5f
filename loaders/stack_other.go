//go:build !windows

package loaders

// DefaultStack returns the platform loader stack. Without zero-copy
// capture support, only the blank fallback is available.
func DefaultStack(_ int) []Loader {
	return []Loader{NewBlank()}
}
