package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	data := WelcomeData{AppName: "Todos", Email: "a@x.com", JoinedAt: time.Now()}.ToMap()

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Todos: welcome aboard", subject)
	assert.Contains(t, text, "Hi a@x.com")
	assert.Contains(t, html, "<strong>Todos</strong>")
}

func TestRender_WelcomeDefaultsAppName(t *testing.T) {
	subject, _, _, err := Render(Welcome, map[string]any{"Email": "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Todos: welcome aboard", subject)
}

func TestRender_EscapesHTML(t *testing.T) {
	_, _, html, err := Render(Welcome, map[string]any{"Email": "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("does_not_exist", nil)
	assert.Error(t, err)
}
