package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const iconDir = "icons/"

// Icon file names.
const (
	IconActive = "icon_active.png"
	IconPaused = "icon_paused.png"
	IconBreak  = "icon_break.png"
)

//go:embed icons/*.png
var iconFS embed.FS

var iconCache sync.Map

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(fileName); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := IconBytes(fileName)
	if err != nil {
		return nil, err
	}

	resource := fyne.NewStaticResource(fileName, data)
	iconCache.Store(fileName, resource)
	return resource, nil
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// IconBytes returns the raw PNG data. The system tray takes bytes, not resources.
func IconBytes(fileName string) ([]byte, error) {
	data, err := iconFS.ReadFile(iconDir + fileName)
	if err != nil {
		return nil, fmt.Errorf("load icon %s: %w", fileName, err)
	}
	return data, nil
}
