// Package provision creates admin accounts in the identity provider and
// mirrors them into the admin records store.
//
// Each account is handled independently: a failure is reported and the next
// account is attempted. There are no retries and nothing is rolled back.
package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ecommerce-adminapp/adminctl/internal/admins"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

// ErrEmailExists is returned by Identity.CreateUser when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// Identity is the subset of the identity provider used for provisioning
type Identity interface {
	CreateUser(ctx context.Context, acct admins.Account) (string, error)
	GetUserByEmail(ctx context.Context, email string) (string, error)
	SetAdminClaim(ctx context.Context, uid string) error
}

// Store persists admin records
type Store interface {
	PutAdmin(ctx context.Context, uid string, rec admins.Record, stamp admins.Stamp) error
	Admins(ctx context.Context) (admins.Set, error)
}

// Outcome describes what happened to one account
type Outcome int

const (
	Failed Outcome = iota
	Created
	Claimed
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Claimed:
		return "claimed"
	default:
		return "failed"
	}
}

// Result is the per-account report returned by Run
type Result struct {
	Account admins.Account
	UID     string
	Outcome Outcome
	Err     error
}

// Provisioner drives account creation
type Provisioner struct {
	identity Identity
	store    Store
	out      io.Writer
	log      *slog.Logger
}

// New returns a Provisioner printing progress to out.
func New(identity Identity, store Store, out io.Writer, log *slog.Logger) *Provisioner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Provisioner{
		identity: identity,
		store:    store,
		out:      out,
		log:      log,
	}
}

// Run provisions every account in order, separated by a blank line.
func (p *Provisioner) Run(ctx context.Context, accounts []admins.Account) []Result {
	results := make([]Result, 0, len(accounts))
	for i, acct := range accounts {
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		results = append(results, p.Provision(ctx, acct))
	}
	return results
}

// Provision creates acct, or claims it when the email is already registered.
func (p *Provisioner) Provision(ctx context.Context, acct admins.Account) Result {
	res := Result{Account: acct}

	p.log.Debug("creating user", "email", acct.Email)
	uid, err := p.identity.CreateUser(ctx, acct)
	if errors.Is(err, ErrEmailExists) {
		ui.Warn(p.out, "User with email %s already exists", acct.Email)
		return p.claim(ctx, acct)
	}
	if err != nil {
		ui.Fail(p.out, "Error creating user: %v", err)
		res.Err = err
		return res
	}

	res.UID = uid
	ui.Success(p.out, "User created successfully:")
	ui.Plain(p.out, "   Email: %s", acct.Email)
	ui.Plain(p.out, "   UID: %s", uid)

	if err := p.grant(ctx, uid, acct, admins.StampCreated); err != nil {
		ui.Fail(p.out, "Error creating user: %v", err)
		res.Err = err
		return res
	}

	res.Outcome = Created
	return res
}

func (p *Provisioner) claim(ctx context.Context, acct admins.Account) Result {
	res := Result{Account: acct}

	p.log.Debug("looking up existing user", "email", acct.Email)
	uid, err := p.identity.GetUserByEmail(ctx, acct.Email)
	if err != nil {
		ui.Fail(p.out, "Error updating existing user: %v", err)
		res.Err = fmt.Errorf("get user %s: %w", acct.Email, err)
		return res
	}
	res.UID = uid

	if err := p.grant(ctx, uid, acct, admins.StampUpdated); err != nil {
		ui.Fail(p.out, "Error updating existing user: %v", err)
		res.Err = err
		return res
	}

	ui.Success(p.out, "Admin privileges updated for existing user")
	res.Outcome = Claimed
	return res
}

// grant overwrites the admin record and then sets the admin claim.
func (p *Provisioner) grant(ctx context.Context, uid string, acct admins.Account, stamp admins.Stamp) error {
	rec := admins.Record{
		Email:       acct.Email,
		DisplayName: acct.DisplayName,
		IsAdmin:     true,
	}

	p.log.Debug("writing admin record", "uid", uid, "stamp", stamp.Field())
	if err := p.store.PutAdmin(ctx, uid, rec, stamp); err != nil {
		return fmt.Errorf("write admin record %s: %w", uid, err)
	}
	if stamp == admins.StampCreated {
		ui.Success(p.out, "Admin privileges set in database")
	}

	p.log.Debug("setting admin claim", "uid", uid)
	if err := p.identity.SetAdminClaim(ctx, uid); err != nil {
		return fmt.Errorf("set admin claim %s: %w", uid, err)
	}
	if stamp == admins.StampCreated {
		ui.Success(p.out, "Custom admin claims set")
	}

	return nil
}

// ListAdmins prints every stored admin record.
func (p *Provisioner) ListAdmins(ctx context.Context) error {
	set, err := p.store.Admins(ctx)
	if err != nil {
		ui.Fail(p.out, "Error listing admins: %v", err)
		return err
	}

	PrintAdmins(p.out, set)
	return nil
}

// PrintAdmins renders the stored admin list, or a warning when it is empty.
func PrintAdmins(w io.Writer, set admins.Set) {
	if len(set) == 0 {
		fmt.Fprintln(w)
		ui.Warn(w, "No admin users found")
		return
	}

	fmt.Fprintln(w)
	ui.Info(w, "Current Admin Users:")
	ui.Rule(w, "-")
	for _, e := range set {
		ui.Plain(w, "Email: %s", orNA(e.Record.Email))
		ui.Plain(w, "Name: %s", orNA(e.Record.DisplayName))
		ui.Plain(w, "UID: %s", e.UID)
		ui.Plain(w, "Is Admin: %t", e.Record.IsAdmin)
		ui.Rule(w, "-")
	}
}

// PrintSummary prints the closing banner with the credentials to log in with.
func PrintSummary(w io.Writer, accounts []admins.Account) {
	fmt.Fprintln(w)
	ui.Rule(w, "=")
	ui.Success(w, "Admin setup completed!")
	ui.Rule(w, "=")
	if len(accounts) == 0 {
		return
	}
	fmt.Fprintln(w)
	ui.Info(w, "You can now login with:")
	for i, acct := range accounts {
		if i > 0 {
			ui.Plain(w, "\n   OR\n")
		}
		ui.Plain(w, "   Email: %s", acct.Email)
		ui.Plain(w, "   Password: %s", acct.Password)
	}
	fmt.Fprintln(w)
	ui.Rule(w, "=")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
