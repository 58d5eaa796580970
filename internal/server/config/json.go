package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/debtmanager/internal/flagx"
	"github.com/dmitrijs2005/debtmanager/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations
// accept strings such as "30m" as well as integer nanoseconds. Fields left
// out of the file keep their current value.
type JsonConfig struct {
	HTTPAddress      *string         `json:"http_address"`
	GRPCAddress      *string         `json:"grpc_address"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	RefreshSecretKey *string         `json:"refresh_secret_key"`
	Algorithm        *string         `json:"algorithm"`
	AccessTokenTTL   *timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL  *timex.Duration `json:"refresh_token_ttl"`
	BcryptCost       *int            `json:"bcrypt_cost"`
	LogFormat        *string         `json:"log_format"`
	LogLevel         *string         `json:"log_level"`
	IsDevelopment    *bool           `json:"is_development"`
}

// parseJson overlays the file named by -c/-config onto config. Without the
// flag nothing is loaded.
func parseJson(config *Config) error {
	path := flagx.ConfigFilePath()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.HTTPAddress, c.HTTPAddress)
	setString(&config.GRPCAddress, c.GRPCAddress)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.RefreshSecretKey, c.RefreshSecretKey)
	setString(&config.Algorithm, c.Algorithm)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
	if c.AccessTokenTTL != nil {
		config.AccessTokenTTL = c.AccessTokenTTL.Duration
	}
	if c.RefreshTokenTTL != nil {
		config.RefreshTokenTTL = c.RefreshTokenTTL.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.IsDevelopment != nil {
		config.IsDevelopment = *c.IsDevelopment
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
