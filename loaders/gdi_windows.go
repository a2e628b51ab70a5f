//go:build windows

package loaders

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

var (
	user32DLL = syscall.NewLazyDLL("user32.dll")
	gdi32DLL  = syscall.NewLazyDLL("gdi32.dll")

	procGetDC            = user32DLL.NewProc("GetDC")
	procReleaseDC        = user32DLL.NewProc("ReleaseDC")
	procGetSystemMetrics = user32DLL.NewProc("GetSystemMetrics")

	procCreateCompatibleDC     = gdi32DLL.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32DLL.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32DLL.NewProc("SelectObject")
	procBitBlt                 = gdi32DLL.NewProc("BitBlt")
	procDeleteDC               = gdi32DLL.NewProc("DeleteDC")
	procDeleteObject           = gdi32DLL.NewProc("DeleteObject")
	procGetDIBits              = gdi32DLL.NewProc("GetDIBits")
)

const (
	smCxScreen   = 0
	smCyScreen   = 1
	srcCopy      = 0x00CC0020
	captureBlt   = 0x40000000
	biRGB        = 0
	dibRGBColors = 0
)

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type bitmapInfo struct {
	BmiHeader bitmapInfoHeader
	BmiColors [1]uint32
}

// gdiGrabber captures the primary display through GDI. Handles are
// created lazily on first use and reused across frames.
type gdiGrabber struct {
	screenDC  uintptr
	memDC     uintptr
	hBitmap   uintptr
	oldBitmap uintptr
	bi        bitmapInfo
	pixBuf    []byte
	width     uint32
	height    uint32
}

// NewGDIGrabber returns a FrameGrabber over GDI BitBlt capture of the
// primary display.
func NewGDIGrabber() FrameGrabber {
	return &gdiGrabber{}
}

func (g *gdiGrabber) Geometry() (uint32, uint32, error) {
	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("loaders: GetSystemMetrics reported %dx%d", w, h)
	}
	return uint32(w), uint32(h), nil
}

func (g *gdiGrabber) initHandles() error {
	w, h, err := g.Geometry()
	if err != nil {
		return err
	}
	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return fmt.Errorf("loaders: GetDC failed")
	}
	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		procReleaseDC.Call(0, screenDC)
		return fmt.Errorf("loaders: CreateCompatibleDC failed")
	}
	hBitmap, _, _ := procCreateCompatibleBitmap.Call(screenDC, uintptr(w), uintptr(h))
	if hBitmap == 0 {
		procDeleteDC.Call(memDC)
		procReleaseDC.Call(0, screenDC)
		return fmt.Errorf("loaders: CreateCompatibleBitmap failed")
	}
	oldBitmap, _, _ := procSelectObject.Call(memDC, hBitmap)

	g.screenDC = screenDC
	g.memDC = memDC
	g.hBitmap = hBitmap
	g.oldBitmap = oldBitmap
	g.width = w
	g.height = h
	g.pixBuf = make([]byte, int(w)*int(h)*4)
	g.bi = bitmapInfo{
		BmiHeader: bitmapInfoHeader{
			BiSize:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
			BiWidth:       int32(w),
			BiHeight:      -int32(h), // top-down
			BiPlanes:      1,
			BiBitCount:    32,
			BiCompression: biRGB,
		},
	}
	return nil
}

func (g *gdiGrabber) releaseHandles() {
	if g.oldBitmap != 0 {
		procSelectObject.Call(g.memDC, g.oldBitmap)
		g.oldBitmap = 0
	}
	if g.hBitmap != 0 {
		procDeleteObject.Call(g.hBitmap)
		g.hBitmap = 0
	}
	if g.memDC != 0 {
		procDeleteDC.Call(g.memDC)
		g.memDC = 0
	}
	if g.screenDC != 0 {
		procReleaseDC.Call(0, g.screenDC)
		g.screenDC = 0
	}
	g.pixBuf = nil
}

// Grab BitBlts the screen into the reusable bitmap and reads the
// pixels back as top-down BGRA. GDI capture is synchronous; the
// timeout is unused.
func (g *gdiGrabber) Grab(timeout time.Duration) ([]byte, error) {
	if g.memDC == 0 {
		if err := g.initHandles(); err != nil {
			return nil, err
		}
	}
	w, h, err := g.Geometry()
	if err != nil {
		return nil, err
	}
	if w != g.width || h != g.height {
		g.releaseHandles()
		if err := g.initHandles(); err != nil {
			return nil, err
		}
	}
	ret, _, _ := procBitBlt.Call(g.memDC, 0, 0, uintptr(g.width), uintptr(g.height),
		g.screenDC, 0, 0, srcCopy|captureBlt)
	if ret == 0 {
		// Secure-desktop transitions can reject CAPTUREBLT.
		ret, _, _ = procBitBlt.Call(g.memDC, 0, 0, uintptr(g.width), uintptr(g.height),
			g.screenDC, 0, 0, srcCopy)
		if ret == 0 {
			return nil, fmt.Errorf("loaders: BitBlt failed")
		}
	}
	// GetDIBits forbids reading a bitmap while it is selected into a
	// DC; swap the original bitmap back in around the readback.
	procSelectObject.Call(g.memDC, g.oldBitmap)
	ret, _, _ = procGetDIBits.Call(
		g.memDC,
		g.hBitmap,
		0,
		uintptr(g.height),
		uintptr(unsafe.Pointer(&g.pixBuf[0])),
		uintptr(unsafe.Pointer(&g.bi)),
		dibRGBColors,
	)
	procSelectObject.Call(g.memDC, g.hBitmap)
	if ret == 0 {
		return nil, fmt.Errorf("loaders: GetDIBits failed")
	}
	return g.pixBuf, nil
}

func (g *gdiGrabber) Close() error {
	g.releaseHandles()
	return nil
}
