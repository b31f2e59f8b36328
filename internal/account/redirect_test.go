package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedirectPolicy(t *testing.T) {
	p := NewRedirectPolicy([]string{"https://app.budgetly.test/", " http://localhost:3000 "})

	assert.True(t, p.Allowed("https://app.budgetly.test/reset"))
	assert.True(t, p.Allowed("HTTPS://APP.budgetly.test/reset"))
	assert.True(t, p.Allowed("http://localhost:3000/passwordreset"))
	assert.False(t, p.Allowed("https://app.budgetly.test.evil.com/reset"))
	assert.False(t, p.Allowed("http://app.budgetly.test/reset"), "scheme is part of the origin")
	assert.False(t, p.Allowed("https://user@app.budgetly.test/reset"))
	assert.False(t, p.Allowed("/relative/path"))
	assert.False(t, p.Allowed("ftp://app.budgetly.test/reset"))
	assert.True(t, p.Allowed("https://app.budgetly.test/reset?lang=en"))
	assert.False(t, p.Allowed("https://app.budgetly.test/#/reset"))
	assert.False(t, p.Allowed("https://app.budgetly.test/reset#"))
}

func TestRedirectPolicyEmptyAllowsAnyHTTP(t *testing.T) {
	p := NewRedirectPolicy(nil)

	assert.True(t, p.Allowed("https://anywhere.example/reset"))
	assert.False(t, p.Allowed("javascript:alert(1)"))
}
