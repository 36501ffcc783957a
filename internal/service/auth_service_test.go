package service

import (
	"testing"

	"github.com/Sanni11/slapbook/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestAllowlistedIsCaseInsensitive(t *testing.T) {
	cfg := &config.Config{
		Allowlist: config.AllowlistConfig{
			Emails: []string{"Sanni@Example.com", "friend@example.com"},
		},
	}

	svc := NewAuthService(nil, cfg)

	assert.True(t, svc.Allowlisted("sanni@example.com"))
	assert.True(t, svc.Allowlisted("SANNI@EXAMPLE.COM"))
	assert.True(t, svc.Allowlisted("friend@example.com"))
	assert.False(t, svc.Allowlisted("stranger@example.com"))
	assert.False(t, svc.Allowlisted(""))
}
