package resources

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconsAreEmbeddedPNGs(t *testing.T) {
	for _, name := range []string{IconActive, IconPaused, IconBreak} {
		data, err := IconBytes(name)
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), name)

		resource := MustIcon(name)
		assert.Equal(t, name, resource.Name())
		assert.Same(t, resource, MustIcon(name), "icons are cached")
	}
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("nope.png")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("nope.png") })
}
