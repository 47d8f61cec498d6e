package config

import (
	"encoding/json"
	"os"

	"github.com/acamacho/dulceria/internal/flagx"
	"github.com/acamacho/dulceria/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "24h" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr            string         `json:"endpoint_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	TokenValidityDuration   timex.Duration `json:"token_validity_duration"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	BcryptCost              int            `json:"bcrypt_cost"`
	OAuthProviderName       string         `json:"oauth_provider_name"`
	OAuthClientID           string         `json:"oauth_client_id"`
	OAuthClientSecret       string         `json:"oauth_client_secret"`
	OAuthRedirectURL        string         `json:"oauth_redirect_url"`
	OAuthAuthURL            string         `json:"oauth_auth_url"`
	OAuthTokenURL           string         `json:"oauth_token_url"`
	OAuthUserInfoURL        string         `json:"oauth_userinfo_url"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.SessionValidityDuration = c.SessionValidityDuration.Duration
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	config.OAuthProviderName = c.OAuthProviderName
	config.OAuthClientID = c.OAuthClientID
	config.OAuthClientSecret = c.OAuthClientSecret
	config.OAuthRedirectURL = c.OAuthRedirectURL
	config.OAuthAuthURL = c.OAuthAuthURL
	config.OAuthTokenURL = c.OAuthTokenURL
	config.OAuthUserInfoURL = c.OAuthUserInfoURL
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
