package provision

import (
	"context"

	"github.com/ecommerce-adminapp/adminctl/internal/admins"
	"github.com/ecommerce-adminapp/adminctl/internal/ui"
)

// Import overwrites the record at each uid with the entry's email, display
// name and isAdmin flag, stamped with the server's updatedAt. Timestamps in
// the file are not carried over. Entries whose uid is not a single valid key
// are skipped. With claims, records flagged isAdmin also get the admin claim.
// It returns the number of entries that failed.
func (p *Provisioner) Import(ctx context.Context, set admins.Set, claims bool) int {
	failed := 0
	for _, e := range set {
		if err := admins.ValidateUID(e.UID); err != nil {
			ui.Fail(p.out, "%q: skipped: %v", e.UID, err)
			failed++
			continue
		}

		p.log.Debug("importing admin record", "uid", e.UID)
		if err := p.store.PutAdmin(ctx, e.UID, e.Record, admins.StampUpdated); err != nil {
			ui.Fail(p.out, "%s: write failed: %v", e.UID, err)
			failed++
			continue
		}

		if claims && e.Record.IsAdmin {
			if err := p.identity.SetAdminClaim(ctx, e.UID); err != nil {
				ui.Fail(p.out, "%s: record written, admin claim failed: %v", e.UID, err)
				failed++
				continue
			}
		}

		ui.Success(p.out, "%s (%s) imported", e.UID, orNA(e.Record.Email))
	}
	return failed
}
