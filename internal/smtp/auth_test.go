package smtp

import (
	"encoding/base64"
	"testing"
)

func TestAuthenticatorEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"both set", "user", "pass", true},
		{"both empty", "", "", false},
		{"only username", "user", "", false},
		{"only password", "", "pass", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := NewAuthenticator(tt.username, tt.password)
			if got := a.Enabled(); got != tt.want {
				t.Errorf("Enabled: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerifyPlain(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("user", "pass")

	valid := base64.StdEncoding.EncodeToString([]byte("\x00user\x00pass"))
	if err := a.VerifyPlain(valid); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}

	wrong := base64.StdEncoding.EncodeToString([]byte("\x00user\x00wrong"))
	if err := a.VerifyPlain(wrong); err == nil {
		t.Error("wrong password accepted")
	}

	if err := a.VerifyPlain("not-base64!!!"); err == nil {
		t.Error("invalid base64 accepted")
	}

	malformed := base64.StdEncoding.EncodeToString([]byte("useronly"))
	if err := a.VerifyPlain(malformed); err == nil {
		t.Error("malformed AUTH PLAIN payload accepted")
	}
}

func TestVerifyLogin(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("user", "pass")

	user := base64.StdEncoding.EncodeToString([]byte("user"))
	pass := base64.StdEncoding.EncodeToString([]byte("pass"))
	if err := a.VerifyLogin(user, pass); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}

	wrong := base64.StdEncoding.EncodeToString([]byte("nope"))
	if err := a.VerifyLogin(user, wrong); err == nil {
		t.Error("wrong password accepted")
	}

	if err := a.VerifyLogin("%%%", pass); err == nil {
		t.Error("invalid base64 username accepted")
	}
}
