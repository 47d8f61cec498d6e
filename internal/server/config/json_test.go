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
	path := filepath.Join(dir, "server.json")

	data := `{
		"endpoint_addr": ":9090",
		"database_dsn": "postgres://u:p@h:5432/db",
		"secret_key": "json-secret",
		"token_validity_duration": "48h",
		"session_validity_duration": "6h",
		"bcrypt_cost": 10,
		"oauth_provider_name": "google",
		"oauth_client_id": "cid",
		"oauth_client_secret": "csecret",
		"oauth_redirect_url": "http://localhost:9090/oauth2/callback",
		"oauth_auth_url": "https://example.com/auth",
		"oauth_token_url": "https://example.com/token",
		"oauth_userinfo_url": "https://example.com/userinfo",
		"s3_root_user": "minio",
		"s3_root_password": "miniopwd",
		"s3_bucket": "img",
		"s3_region": "eu-west-1",
		"s3_base_endpoint": "http://minio:9000/"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"test", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "postgres://u:p@h:5432/db", cfg.DatabaseDSN)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 6*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "cid", cfg.OAuthClientID)
	assert.Equal(t, "img", cfg.S3Bucket)
}

func TestParseJson_NoFileIsNoop(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"test"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
}
