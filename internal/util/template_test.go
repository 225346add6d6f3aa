package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate("plain text", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text", out)

	out, err = RenderTemplate("Hotels in {{.Location}} & more", map[string]any{"Location": "Paris"})
	require.NoError(t, err)
	assert.Equal(t, "Hotels in Paris & more", out, "output must not be HTML escaped")

	out, err = RenderTemplate(`{{default "soon" .Date}} in {{upper .Location}}`, struct{ Location, Date string }{"rome", ""})
	require.NoError(t, err)
	assert.Equal(t, "soon in ROME", out)

	_, err = RenderTemplate("{{.Missing}}", map[string]any{})
	assert.Error(t, err)

	_, err = RenderTemplate("{{", nil)
	assert.Error(t, err)
}
