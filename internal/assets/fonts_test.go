package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontManagerCachesFaces(t *testing.T) {
	m := NewFontManager()
	a, err := m.Face(12, false)
	require.NoError(t, err)
	b, err := m.Face(12, false)
	require.NoError(t, err)
	assert.Same(t, a, b)

	bold, err := m.Face(12, true)
	require.NoError(t, err)
	assert.NotSame(t, a, bold)
	assert.Positive(t, a.Metrics().Height.Ceil())
}
