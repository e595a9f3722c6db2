//go:build !windows

package stretch

import "fyne.io/fyne/v2"

// keepOnTop is a no-op: fyne has no portable always-on-top window hint.
func keepOnTop(fyne.Window) {}
