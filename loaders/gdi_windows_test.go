//go:build windows

package loaders

import "testing"

// Needs an interactive window station; services and detached sessions
// have no primary display to blit from.
func TestGDIGrabberGrab(t *testing.T) {
	g := NewGDIGrabber()
	defer g.Close()

	w, h, err := g.Geometry()
	if err != nil {
		t.Skipf("no display: %v", err)
	}
	pix, err := g.Grab(0)
	if err != nil {
		t.Skipf("gdi capture unavailable: %v", err)
	}
	if len(pix) != int(w)*int(h)*4 {
		t.Fatalf("len(pix) = %d, want %d for %dx%d BGRA", len(pix), int(w)*int(h)*4, w, h)
	}

	// Second grab reuses the cached handles and must still read back.
	if _, err := g.Grab(0); err != nil {
		t.Fatalf("second Grab() = %v", err)
	}
}
