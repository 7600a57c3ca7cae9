// Package diagnose prints the admin records of a local data file next to a
// checklist for fixing UID mismatches between Firebase Authentication and
// the Realtime Database.
package diagnose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/ecommerce-adminapp/adminctl/internal/admins"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

// Troubleshooting is printed after the admin blocks.
const Troubleshooting = `
1. Check the logs for the actual UID from Firebase Auth
   Look for: "Login successful. User UID: XXXXX"

2. Compare with the UID in admin-data.json above

3. If they DON'T MATCH:
   a. Option 1: Update admin-data.json with the actual UID
      - Replace the UID in admin-data.json with the one from logs
      - Run: adminctl import

   b. Option 2: Delete and recreate the Firebase Auth user
      - Go to Firebase Console → Authentication
      - Delete the existing user
      - Create new user with same email/password
      - Note the new UID
      - Update admin-data.json with new UID
      - Run: adminctl import

4. After fixing, re-import the admin data:
   adminctl import

5. Test login again
`

// Lookup resolves an email to its identity provider UID.
type Lookup interface {
	GetUserByEmail(ctx context.Context, email string) (string, error)
}

// Report summarizes a check run
type Report struct {
	Admins     int
	Mismatches int
	Err        error
}

// Run prints the banner, then the records found in path and the
// troubleshooting checklist. Failures are printed, never returned; the
// report carries them for callers that want an exit status. When lookup is
// non-nil each email is also resolved against the identity provider and
// compared with its key.
func Run(ctx context.Context, w io.Writer, path string, lookup Lookup) Report {
	PrintBanner(w)
	return Inspect(ctx, w, path, lookup)
}

// PrintBanner prints the checker's title banner.
func PrintBanner(w io.Writer) {
	ui.Banner(w, "FIREBASE USER UID CHECKER")
}

// Inspect is Run without the banner, for callers that print their own
// output between the banner and the records.
func Inspect(ctx context.Context, w io.Writer, path string, lookup Lookup) Report {
	name := filepath.Base(path)

	f, err := admins.LoadFile(path)
	if err != nil {
		var perr *admins.ParseError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintln(w)
			ui.Fail(w, "Error: %s not found", name)
			ui.Plain(w, "Make sure you're running this from the AdminApp directory")
		case errors.As(err, &perr):
			fmt.Fprintln(w)
			ui.Fail(w, "Error parsing %s: %v", name, perr.Err)
		default:
			fmt.Fprintln(w)
			ui.Fail(w, "Unexpected error: %v", err)
		}
		return Report{Err: err}
	}

	if len(f.Admins) == 0 {
		fmt.Fprintln(w)
		ui.Fail(w, "No admin users found in %s", name)
		return Report{}
	}

	fmt.Fprintln(w)
	ui.Info(w, "Admin users in database:")
	ui.Rule(w, "-")

	for _, e := range f.Admins {
		fmt.Fprintln(w)
		ui.Success(w, "Email: %s", orNA(e.Record.Email))
		ui.Plain(w, "  Name: %s", orNA(e.Record.DisplayName))
		ui.Plain(w, "  UID: %s", e.UID)
		ui.Plain(w, "  Admin: %t", e.Record.IsAdmin)
	}

	rep := Report{Admins: len(f.Admins)}
	if lookup != nil {
		rep.Mismatches = verify(ctx, w, f.Admins, lookup)
	}

	fmt.Fprintln(w)
	ui.Rule(w, "=")
	ui.Info(w, "TROUBLESHOOTING STEPS:")
	ui.Rule(w, "=")
	fmt.Fprint(w, Troubleshooting)

	return rep
}

// verify compares each record's key with the UID Auth reports for its email
// and flags records the admin app's login gate would refuse.
func verify(ctx context.Context, w io.Writer, set admins.Set, lookup Lookup) int {
	fmt.Fprintln(w)
	ui.Rule(w, "=")
	ui.Info(w, "AUTH VERIFICATION:")
	ui.Rule(w, "=")

	problems := 0
	for _, e := range set {
		if e.Record.Email == "" {
			ui.Warn(w, "%s: no email recorded, cannot look up", e.UID)
			problems++
			continue
		}

		uid, err := lookup.GetUserByEmail(ctx, e.Record.Email)
		if err != nil {
			ui.Fail(w, "%s: lookup failed: %v", e.Record.Email, err)
			problems++
			continue
		}

		if uid != e.UID {
			ui.Fail(w, "%s: Auth UID %s does not match record key %s", e.Record.Email, uid, e.UID)
			problems++
			continue
		}

		if !e.Record.IsAdmin {
			ui.Warn(w, "%s: UID matches but isAdmin is not true, login will be refused", e.Record.Email)
			problems++
			continue
		}

		ui.Success(w, "%s: UID matches", e.Record.Email)
	}

	return problems
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
