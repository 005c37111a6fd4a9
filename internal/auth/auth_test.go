package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yourorg/spoctl/internal/auth"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *auth.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return auth.NewService(auth.Config{
		Authority: server.URL,
		TenantID:  "contoso.onmicrosoft.com",
		ClientID:  "client-123",
	})
}

func TestAccessToken(t *testing.T) {
	var (
		capturedPath string
		capturedForm map[string][]string
	)
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		capturedForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"access_token":"abc","token_type":"Bearer","resource":"https://contoso.sharepoint.com"}`)); err != nil {
			t.Fatalf("write response: %v", err)
		}
	})

	token, err := service.AccessToken(context.Background(), "https://contoso.sharepoint.com", "refresh-xyz")
	if err != nil {
		t.Fatalf("AccessToken returned error: %v", err)
	}
	if token != "abc" {
		t.Fatalf("token = %q, want abc", token)
	}

	if want := "/contoso.onmicrosoft.com/oauth2/token"; capturedPath != want {
		t.Fatalf("path = %q, want %q", capturedPath, want)
	}
	expectations := map[string]string{
		"grant_type":    "refresh_token",
		"client_id":     "client-123",
		"refresh_token": "refresh-xyz",
		"resource":      "https://contoso.sharepoint.com",
	}
	for key, want := range expectations {
		if got := capturedForm[key]; len(got) != 1 || got[0] != want {
			t.Fatalf("form[%q] = %v, want %q", key, got, want)
		}
	}
}

func TestAccessTokenErrorSurfacesDescription(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte(`{"error":"invalid_grant","error_description":"AADSTS700082: The refresh token has expired."}`)); err != nil {
			t.Fatalf("write response: %v", err)
		}
	})

	_, err := service.AccessToken(context.Background(), "https://contoso.sharepoint.com", "stale")
	if err == nil {
		t.Fatalf("expected error from token endpoint")
	}

	var ae *auth.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *auth.Error, got %T (%v)", err, err)
	}
	if ae.Code != "invalid_grant" {
		t.Fatalf("Code = %q", ae.Code)
	}
	if want := "AADSTS700082: The refresh token has expired."; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAccessTokenValidatesInput(t *testing.T) {
	service := auth.NewService(auth.Config{})

	if _, err := service.AccessToken(context.Background(), "", "refresh"); err == nil {
		t.Fatalf("expected error for empty resource")
	}
	if _, err := service.AccessToken(context.Background(), "https://contoso.sharepoint.com", ""); err == nil {
		t.Fatalf("expected error for empty refresh token")
	}
}
