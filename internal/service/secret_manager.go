package service

import (
	"context"
	"fmt"

	"courseapp/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// SecretResolver fetches signing secrets at startup so they can be passed
// explicitly into constructors instead of read ad hoc from the environment.
type SecretResolver interface {
	ResolveSigningSecrets(ctx context.Context, cfg *config.Config) (userSecret, adminSecret string, err error)
}

type secretManagerResolver struct {
	client    *secretmanager.Client
	projectID string
}

// NewSecretManagerResolver creates a resolver backed by Google Secret Manager.
// Used in non-development environments when secret names are configured.
func NewSecretManagerResolver(ctx context.Context, cfg *config.Config) (SecretResolver, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is not set")
	}

	var opts []option.ClientOption
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &secretManagerResolver{client: client, projectID: cfg.GCPProjectID}, nil
}

func (r *secretManagerResolver) ResolveSigningSecrets(ctx context.Context, cfg *config.Config) (string, string, error) {
	userSecret, err := r.access(ctx, cfg.JWTUserSecretName)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve user signing secret: %w", err)
	}
	adminSecret, err := r.access(ctx, cfg.JWTAdminSecretName)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve admin signing secret: %w", err)
	}
	return userSecret, adminSecret, nil
}

func (r *secretManagerResolver) access(ctx context.Context, secretName string) (string, error) {
	resourceName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", r.projectID, secretName)

	result, err := r.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: resourceName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return string(result.Payload.Data), nil
}
