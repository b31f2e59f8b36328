package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderVerifiedPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	err = engine.Render(rr, http.StatusOK, "pages/verified.html", TemplateData{
		Title: "Email verification",
		Data:  map[string]any{"Error": true, "Message": "Link has expired. Please sign up again"},
	})
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "Link has expired. Please sign up again")
}

func TestRenderEscapesMessage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	err = engine.Render(rr, http.StatusOK, "pages/verified.html", TemplateData{
		Data: map[string]any{"Error": true, "Message": "<script>alert(1)</script>"},
	})
	require.NoError(t, err)
	assert.NotContains(t, rr.Body.String(), "<script>alert(1)</script>")
}

func TestRenderNilEngine(t *testing.T) {
	var engine *Engine
	assert.Error(t, engine.Render(httptest.NewRecorder(), http.StatusOK, "pages/verified.html", TemplateData{}))
}
