// internal/app/bootstrap/config_test.go
package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "train_hub_test",
		JWTSecret:        "test-secret-0123456789",
		TokenTTL:         24 * time.Hour,
		OTPExpiry:        10 * time.Minute,
		StorageType:      "local",
		StorageLocalPath: "./uploads",
		StorageLocalURL:  "/files",
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	core := &config.CoreConfig{Env: "dev"}
	if err := ValidateConfig(core, validAppConfig(), zap.NewNop()); err != nil {
		t.Fatalf("ValidateConfig failed on a valid config: %v", err)
	}
}

func TestValidateConfig_BadMongoURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "not-a-mongo-uri"
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for malformed Mongo URI")
	}
}

func TestValidateConfig_EmptyJWTSecret(t *testing.T) {
	cfg := validAppConfig()
	cfg.JWTSecret = ""
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty jwt_secret")
	}
}

func TestValidateConfig_DevSecretInProd(t *testing.T) {
	cfg := validAppConfig()
	cfg.JWTSecret = "dev-only-change-me-please-0123456789ABCDEF"
	if err := ValidateConfig(&config.CoreConfig{Env: "prod"}, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for development secret in prod")
	}
}

func TestValidateConfig_BadStorageType(t *testing.T) {
	cfg := validAppConfig()
	cfg.StorageType = "ftp"
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown storage type")
	}
}

func TestValidateConfig_S3MissingFields(t *testing.T) {
	cfg := validAppConfig()
	cfg.StorageType = "s3"
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for s3 storage without region and bucket")
	}
}
