package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
		"endpoint_addr_http": ":9090",
		"database_dsn": "postgres://u:p@db:5432/stackr",
		"secret_key": "json-secret",
		"access_token_validity_duration": "30m",
		"refresh_token_validity_duration": "48h",
		"s3_root_user": "root",
		"s3_root_password": "pw",
		"s3_bucket": "avatars",
		"s3_region": "eu-west-1",
		"s3_base_endpoint": "http://minio:9000/"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	origArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = origArgs }()

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, c.EndpointAddrHTTP, ":9090")
	assert.Equal(t, c.DatabaseDSN, "postgres://u:p@db:5432/stackr")
	assert.Equal(t, c.SecretKey, "json-secret")
	assert.Equal(t, c.AccessTokenValidityDuration, 30*time.Minute)
	assert.Equal(t, c.RefreshTokenValidityDuration, 48*time.Hour)
	assert.Equal(t, c.S3Bucket, "avatars")
}

func TestParseJson_NoFlagLeavesDefaults(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"server"}
	defer func() { os.Args = origArgs }()

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
}
