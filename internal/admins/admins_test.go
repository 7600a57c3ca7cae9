package admins

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFileKeepsDocumentOrder(t *testing.T) {
	path := writeFile(t, "admin-data.json", `{
  "Admins": {
    "zUid": {"email": "z@shop.com", "displayName": "Zed", "isAdmin": true},
    "aUid": {"email": "a@shop.com", "isAdmin": false},
    "mUid": {"displayName": "Em", "isAdmin": true, "createdAt": 1700000000000}
  }
}`)

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	wantOrder := []string{"zUid", "aUid", "mUid"}
	if len(f.Admins) != len(wantOrder) {
		t.Fatalf("got %d admins, want %d", len(f.Admins), len(wantOrder))
	}
	for i, uid := range wantOrder {
		if f.Admins[i].UID != uid {
			t.Errorf("admins[%d].UID = %q, want %q", i, f.Admins[i].UID, uid)
		}
	}

	rec, ok := f.Admins.Get("mUid")
	if !ok {
		t.Fatal("Get(mUid) not found")
	}
	if rec.Email != "" || rec.DisplayName != "Em" || !rec.IsAdmin || rec.CreatedAt != 1700000000000 {
		t.Errorf("mUid record = %+v", rec)
	}
}

func TestLoadFileDuplicateUIDKeepsLastValue(t *testing.T) {
	path := writeFile(t, "admin-data.json", `{
  "Admins": {
    "u1": {"email": "old@shop.com", "isAdmin": false},
    "u2": {"email": "b@shop.com", "isAdmin": true},
    "u1": {"email": "new@shop.com", "isAdmin": true}
  }
}`)

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(f.Admins) != 2 {
		t.Fatalf("got %d admins, want 2: %+v", len(f.Admins), f.Admins)
	}
	if f.Admins[0].UID != "u1" || f.Admins[1].UID != "u2" {
		t.Errorf("order = %q, %q, want u1, u2", f.Admins[0].UID, f.Admins[1].UID)
	}
	if rec := f.Admins[0].Record; rec.Email != "new@shop.com" || !rec.IsAdmin {
		t.Errorf("u1 record = %+v, want the later value", rec)
	}
}

func TestValidateUID(t *testing.T) {
	tests := []struct {
		uid     string
		wantErr bool
	}{
		{"kX9fQ2abcDEF", false},
		{"new-uid_1", false},
		{"", true},
		{"a/b", true},
		{"/u1", true},
		{"x.y", true},
		{"a#b", true},
		{"$key", true},
		{"k[0]", true},
	}

	for _, tt := range tests {
		err := ValidateUID(tt.uid)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateUID(%q) error = %v, wantErr %v", tt.uid, err, tt.wantErr)
		}
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantParse bool
	}{
		{name: "truncated json", file: "admin-data.json", content: `{"Admins": {`, wantParse: true},
		{name: "admins is a list", file: "admin-data.json", content: `{"Admins": []}`, wantParse: true},
		{name: "record is a string", file: "admin-data.json", content: `{"Admins": {"u1": "nope"}}`, wantParse: true},
		{name: "bad yaml", file: "admin-data.yaml", content: "Admins: [unclosed", wantParse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("LoadFile() expected error")
			}
			var perr *ParseError
			if errors.As(err, &perr) != tt.wantParse {
				t.Errorf("errors.As(ParseError) = %v, want %v (err: %v)", !tt.wantParse, tt.wantParse, err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "admin-data.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadFileNullAndEmpty(t *testing.T) {
	for _, content := range []string{`{}`, `{"Admins": null}`, `{"Admins": {}}`} {
		path := writeFile(t, "admin-data.json", content)
		f, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) error = %v", content, err)
		}
		if len(f.Admins) != 0 {
			t.Errorf("LoadFile(%s) got %d admins, want 0", content, len(f.Admins))
		}
	}
}

func TestSaveFileRoundTripsOrder(t *testing.T) {
	in := &File{Admins: Set{
		{UID: "second", Record: Record{Email: "b@shop.com", IsAdmin: true}},
		{UID: "first", Record: Record{Email: "a@shop.com", DisplayName: "A", IsAdmin: true}},
	}}

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := SaveFile(in, path); err != nil {
				t.Fatalf("SaveFile() error = %v", err)
			}
			out, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if len(out.Admins) != 2 || out.Admins[0].UID != "second" || out.Admins[1].UID != "first" {
				t.Errorf("round trip = %+v", out.Admins)
			}
			if out.Admins[1].Record.DisplayName != "A" {
				t.Errorf("displayName lost: %+v", out.Admins[1].Record)
			}
		})
	}
}

func TestSetMarshalJSONShape(t *testing.T) {
	data, err := json.Marshal(File{Admins: Set{{UID: "u1", Record: Record{Email: "x@y.z", IsAdmin: true}}}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"Admins":{"u1":{"email":"x@y.z","isAdmin":true}}}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestStampField(t *testing.T) {
	if StampCreated.Field() != "createdAt" {
		t.Errorf("StampCreated.Field() = %q", StampCreated.Field())
	}
	if StampUpdated.Field() != "updatedAt" {
		t.Errorf("StampUpdated.Field() = %q", StampUpdated.Field())
	}
}

func TestDefaultAccounts(t *testing.T) {
	accounts := DefaultAccounts()
	if len(accounts) != 2 {
		t.Fatalf("got %d default accounts, want 2", len(accounts))
	}
	if accounts[0].Email != "admin@ecommerce.com" || accounts[1].Email != "test@admin.com" {
		t.Errorf("unexpected defaults: %+v", accounts)
	}
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			t.Errorf("default account %s invalid: %v", a.Email, err)
		}
	}
}

func TestLoadAccounts(t *testing.T) {
	path := writeFile(t, "accounts.yaml", `accounts:
  - email: ops@shop.com
    password: opspassword
  - email: lead@shop.com
    password: leadpassword
    displayName: Lead
`)

	accounts, err := LoadAccounts(path)
	if err != nil {
		t.Fatalf("LoadAccounts() error = %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}
	if accounts[0].DisplayName != DefaultDisplayName {
		t.Errorf("accounts[0].DisplayName = %q, want default", accounts[0].DisplayName)
	}
	if accounts[1].DisplayName != "Lead" {
		t.Errorf("accounts[1].DisplayName = %q, want Lead", accounts[1].DisplayName)
	}
}

func TestAccountValidate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr bool
	}{
		{name: "valid", account: Account{Email: "a@b.co", Password: "123456"}, wantErr: false},
		{name: "missing at", account: Account{Email: "ab.co", Password: "123456"}, wantErr: true},
		{name: "empty local part", account: Account{Email: "@b.co", Password: "123456"}, wantErr: true},
		{name: "empty domain", account: Account{Email: "a@", Password: "123456"}, wantErr: true},
		{name: "short password", account: Account{Email: "a@b.co", Password: "12345"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAccountsRejectsEmpty(t *testing.T) {
	path := writeFile(t, "accounts.json", `{"accounts": []}`)
	if _, err := LoadAccounts(path); err == nil {
		t.Error("LoadAccounts() should reject an empty list")
	}
}
