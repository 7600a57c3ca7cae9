package fbadmin

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// credentialsFromSecret reads a service account key stored in Secret Manager.
// name is a full version resource: projects/<p>/secrets/<s>/versions/<v>.
// The Secret Manager client itself authenticates with application default
// credentials.
func credentialsFromSecret(ctx context.Context, name string) ([]byte, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access secret %s: %w", name, err)
	}

	data := resp.GetPayload().GetData()
	if len(data) == 0 {
		return nil, fmt.Errorf("secret %s is empty", name)
	}

	return data, nil
}
