package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 hour", HumanDuration(time.Hour))
	assert.Equal(t, "6 hours", HumanDuration(6*time.Hour))
	assert.Equal(t, "90 minutes", HumanDuration(90*time.Minute))
	assert.Equal(t, "1 minute", HumanDuration(time.Minute))
	assert.Equal(t, "30 seconds", HumanDuration(30*time.Second))
}

func TestRendererUsesConfiguredTTL(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, err := r.Render(TemplateReset, LinkData{Link: "https://app.example.com/reset/u/t", TTL: 60 * time.Minute})
	require.NoError(t, err)
	assert.Contains(t, html, "expires in 1 hour")
	assert.Contains(t, html, `href="https://app.example.com/reset/u/t"`)

	html, err = r.Render(TemplateVerify, LinkData{Link: "https://api.example.com/user/verify/u/t", TTL: 6 * time.Hour})
	require.NoError(t, err)
	assert.Contains(t, html, "expires in 6 hours")
}
