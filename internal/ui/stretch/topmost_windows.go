//go:build windows

package stretch

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"golang.org/x/sys/windows"
)

const (
	swpNoSize = 0x0001
	swpNoMove = 0x0002
)

var (
	user32DLL        = windows.NewLazySystemDLL("user32.dll")
	procSetWindowPos = user32DLL.NewProc("SetWindowPos")
	hwndTopmost      = ^uintptr(0)
)

// keepOnTop raises the popup above other windows.
func keepOnTop(window fyne.Window) {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}
		procSetWindowPos.Call(hwnd, hwndTopmost, 0, 0, 0, 0, swpNoMove|swpNoSize)
	})
}
