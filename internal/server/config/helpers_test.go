package config

import (
	"os"
	"testing"
)

var envKeys = []string{
	"SERVER_ADDRESS", "GRPC_ADDRESS", "DATABASE_DSN", "SECRET_KEY", "REFRESH_SECRET_KEY",
	"ALGORITHM", "LOG_FORMAT", "LOG_LEVEL", "ACCESS_TOKEN_EXPIRE_MINUTES",
	"REFRESH_TOKEN_EXPIRE_DAYS", "BCRYPT_COST", "ENVIRONMENT", "ENV_FILE_PATH",
	"AWS_SECRETS_MANAGER_SECRET_ID", "AWS_SECRETS_MANAGER_REGION",
	"AWS_SECRETS_MANAGER_VERSION_STAGE", "AWS_SECRETS_MANAGER_OVERWRITE",
}

// clearEnv unsets every variable the loader reads and restores them after
// the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}
