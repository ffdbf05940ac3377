package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment        string `envconfig:"ENV" default:"development"`
	Port               string `envconfig:"PORT" default:"8080"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`

	// Two independent signing secrets: a user token must never verify against
	// the admin secret, and vice versa.
	JWTUserSecret  string `envconfig:"JWT_SECRET_USER"`
	JWTAdminSecret string `envconfig:"JWT_SECRET_ADMIN"`
	TokenTTLHours  int    `envconfig:"TOKEN_TTL_HOURS" default:"168"`

	S3URL       string `envconfig:"S3_URL" required:"true"`
	S3PublicURL string `envconfig:"S3_PUBLIC_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET" required:"true"`
	S3Region    string `envconfig:"S3_REGION" required:"true"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" required:"true"`

	// Optional GCP integration. When GCPProjectID is empty the purchase event
	// publisher is disabled and signing secrets come straight from env.
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	PurchaseEventTopic string `envconfig:"PURCHASE_EVENT_TOPIC" default:"purchase_events"`
	JWTUserSecretName  string `envconfig:"JWT_SECRET_USER_NAME"`
	JWTAdminSecretName string `envconfig:"JWT_SECRET_ADMIN_NAME"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
