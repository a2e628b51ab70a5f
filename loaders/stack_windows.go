//go:build windows

package loaders

// DefaultStack returns the platform loader stack in priority order:
// Katanga shared-memory import, DXGI desktop duplication of the given
// output, GDI pixel copy, then the blank fallback.
func DefaultStack(output int) []Loader {
	return []Loader{
		NewKatanga(),
		NewDesktopDuplication(output),
		NewFrameCopy(NewGDIGrabber()),
		NewBlank(),
	}
}
