package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"server", "-a", ":7070", "-d", "dsn", "-s", "flag-secret", "-t", "5", "-r", "120"}
	defer func() { os.Args = origArgs }()

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, c.EndpointAddrHTTP, ":7070")
	assert.Equal(t, c.DatabaseDSN, "dsn")
	assert.Equal(t, c.SecretKey, "flag-secret")
	assert.Equal(t, c.AccessTokenValidityDuration, 5*time.Minute)
	assert.Equal(t, c.RefreshTokenValidityDuration, 120*time.Minute)
}

func TestParseFlags_KeepsDefaultsWhenAbsent(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"server"}
	defer func() { os.Args = origArgs }()

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
	assert.Equal(t, c.AccessTokenValidityDuration, 15*time.Minute)
}
