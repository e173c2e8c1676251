package auth

import (
	"net/http"
	"strings"
	"testing"

	"github.com/saturnines/polar-sync/pkg/errors"
)

func assertHeader(t *testing.T, req *http.Request, header, expected string) {
	t.Helper()
	if value := req.Header.Get(header); value != expected {
		t.Errorf("Expected %s header '%s', got '%s'", header, expected, value)
	}
}

func TestBearerAuth(t *testing.T) {
	t.Run("ValidToken", func(t *testing.T) {
		auth, err := NewBearerAuth("polar_oat_123")
		if err != nil {
			t.Fatalf("NewBearerAuth failed: %v", err)
		}
		req, _ := http.NewRequest("GET", "https://api.polar.sh/v1/products", nil)

		if err := auth.ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}

		assertHeader(t, req, "Authorization", "Bearer polar_oat_123")
	})

	t.Run("EmptyToken", func(t *testing.T) {
		_, err := NewBearerAuth("")
		if !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("Expected ErrMissingCredentials, got %v", err)
		}
		if !errors.Is(err, errors.ErrConfiguration) {
			t.Errorf("Expected ErrConfiguration, got %v", err)
		}
	})

	t.Run("ZeroValueRefusesToApply", func(t *testing.T) {
		auth := &BearerAuth{}
		req, _ := http.NewRequest("GET", "https://api.polar.sh/v1/products", nil)

		if err := auth.ApplyAuth(req); err == nil {
			t.Fatal("Expected error for empty token, got nil")
		}
		assertHeader(t, req, "Authorization", "")
	})

	t.Run("StringMethod", func(t *testing.T) {
		auth, _ := NewBearerAuth("polar_oat_123")
		if strings.Contains(auth.String(), "polar_oat_123") {
			t.Errorf("String() should not contain the actual token, got: %s", auth.String())
		}
	})
}
