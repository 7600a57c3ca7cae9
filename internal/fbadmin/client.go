// Package fbadmin adapts the Firebase Admin SDK to the identity provider and
// admin store interfaces used by adminctl.
package fbadmin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/ecommerce-adminapp/adminctl/internal/admins"
	"github.com/ecommerce-adminapp/adminctl/internal/config"
	"github.com/ecommerce-adminapp/adminctl/internal/provision"
)

// AdminClaim is the custom claim the backend checks to authorize admin actions.
const AdminClaim = "admin"

// serverTimestamp is the Realtime Database sentinel resolved to the server's
// clock in milliseconds on write.
var serverTimestamp = map[string]string{".sv": "timestamp"}

// CredentialsNotFoundError reports a service account key missing on disk
type CredentialsNotFoundError struct {
	Path string
}

func (e *CredentialsNotFoundError) Error() string {
	return fmt.Sprintf("service account key not found at: %s", e.Path)
}

// Client wraps the Auth and Realtime Database clients of one Firebase app
type Client struct {
	auth       *auth.Client
	db         *db.Client
	adminsPath string
	log        *slog.Logger
}

var (
	_ provision.Identity = (*Client)(nil)
	_ provision.Store    = (*Client)(nil)
)

// New initializes the Admin SDK from cfg.
func New(ctx context.Context, cfg config.FirebaseConfig, adminsPath string, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	opt, err := credentialOption(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: cfg.DatabaseURL,
		ProjectID:   cfg.ProjectID,
	}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth client: %w", err)
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database client: %w", err)
	}

	log.Debug("firebase initialized", "database", cfg.DatabaseURL, "admins", adminsPath)

	return &Client{
		auth:       authClient,
		db:         dbClient,
		adminsPath: adminsPath,
		log:        log,
	}, nil
}

func credentialOption(ctx context.Context, cfg config.FirebaseConfig) (option.ClientOption, error) {
	if cfg.CredentialsSecret != "" {
		data, err := credentialsFromSecret(ctx, cfg.CredentialsSecret)
		if err != nil {
			return nil, err
		}
		return option.WithCredentialsJSON(data), nil
	}

	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &CredentialsNotFoundError{Path: cfg.CredentialsFile}
		}
		return nil, fmt.Errorf("failed to stat service account key: %w", err)
	}

	return option.WithCredentialsFile(cfg.CredentialsFile), nil
}

// CreateUser creates a verified email/password user and returns its UID.
// A taken email is reported as provision.ErrEmailExists.
func (c *Client) CreateUser(ctx context.Context, acct admins.Account) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(acct.Email).
		Password(acct.Password).
		DisplayName(acct.DisplayName).
		EmailVerified(true)

	c.log.Debug("auth.CreateUser", "email", acct.Email)
	user, err := c.auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", fmt.Errorf("%w: %s", provision.ErrEmailExists, acct.Email)
		}
		return "", err
	}

	return user.UID, nil
}

// GetUserByEmail returns the UID registered for email.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (string, error) {
	c.log.Debug("auth.GetUserByEmail", "email", email)
	user, err := c.auth.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.UID, nil
}

// SetAdminClaim replaces the user's custom claims with {"admin": true}.
func (c *Client) SetAdminClaim(ctx context.Context, uid string) error {
	c.log.Debug("auth.SetCustomUserClaims", "uid", uid)
	return c.auth.SetCustomUserClaims(ctx, uid, map[string]interface{}{AdminClaim: true})
}

// PutAdmin overwrites <adminsPath>/<uid> with rec and a server timestamp.
func (c *Client) PutAdmin(ctx context.Context, uid string, rec admins.Record, stamp admins.Stamp) error {
	if err := admins.ValidateUID(uid); err != nil {
		return err
	}
	c.log.Debug("db.Set", "path", c.adminsPath+"/"+uid)
	return c.db.NewRef(c.adminsPath).Child(uid).Set(ctx, recordPayload(rec, stamp))
}

// Admins reads every record under the admins path.
func (c *Client) Admins(ctx context.Context) (admins.Set, error) {
	c.log.Debug("db.Get", "path", c.adminsPath)

	var set admins.Set
	if err := c.db.NewRef(c.adminsPath).Get(ctx, &set); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.adminsPath, err)
	}
	return set, nil
}

// recordPayload builds the value written for an admin record. Only the
// timestamp selected by stamp is set; the other one is dropped with the
// rest of the old value.
func recordPayload(rec admins.Record, stamp admins.Stamp) map[string]interface{} {
	return map[string]interface{}{
		"email":       rec.Email,
		"displayName": rec.DisplayName,
		"isAdmin":     rec.IsAdmin,
		stamp.Field(): serverTimestamp,
	}
}
