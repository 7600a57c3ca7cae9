package fbadmin

import (
	"context"
	"errors"
	"os"
	"time"

	"google.golang.org/api/iterator"

	"github.com/ecommerce-adminapp/adminctl/internal/config"
)

// ServiceStatus represents the status of a service
type ServiceStatus int

const (
	ServiceUnknown ServiceStatus = iota
	ServiceUp
	ServiceDown
)

func (s ServiceStatus) String() string {
	switch s {
	case ServiceUp:
		return "UP"
	case ServiceDown:
		return "DOWN"
	default:
		return "UNKNOWN"
	}
}

// StackStatus represents the status of everything adminctl talks to
type StackStatus struct {
	Credentials ServiceStatus
	Auth        ServiceStatus
	Database    ServiceStatus

	AuthErr     error
	DatabaseErr error
}

const probeTimeout = 10 * time.Second

// CredentialsStatus reports whether credentials are configured and, for a
// key file, whether it exists. A secret can only be checked by using it.
func CredentialsStatus(cfg config.FirebaseConfig) ServiceStatus {
	if cfg.CredentialsSecret != "" {
		return ServiceUnknown
	}
	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		return ServiceDown
	}
	return ServiceUp
}

// Status probes Auth and the Realtime Database
func (c *Client) Status(ctx context.Context) *StackStatus {
	status := &StackStatus{Credentials: ServiceUp}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	status.Auth, status.AuthErr = c.checkAuth(ctx)
	status.Database, status.DatabaseErr = c.checkDatabase(ctx)

	return status
}

// checkAuth lists the first user; an empty project still counts as up.
func (c *Client) checkAuth(ctx context.Context) (ServiceStatus, error) {
	it := c.auth.Users(ctx, "")
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return ServiceDown, err
	}
	return ServiceUp, nil
}

func (c *Client) checkDatabase(ctx context.Context) (ServiceStatus, error) {
	var keys map[string]interface{}
	if err := c.db.NewRef(c.adminsPath).GetShallow(ctx, &keys); err != nil {
		return ServiceDown, err
	}
	return ServiceUp, nil
}
