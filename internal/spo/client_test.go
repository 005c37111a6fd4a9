package spo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/yourorg/spoctl/internal/spo"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*spo.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := spo.NewClient(spo.ClientConfig{Token: "test-token"})
	client.WithLimiter(rate.NewLimiter(rate.Inf, 0))

	return client, server
}

func TestClientSetsHeaders(t *testing.T) {
	var capturedHeaders http.Header

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"ok":true}`)); err != nil {
			t.Fatalf("write response: %v", err)
		}
	})

	if err := client.Do(context.Background(), "GET", server.URL+"/_api/web", nil, &struct{ OK bool }{}); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}

	if got, want := capturedHeaders.Get("Authorization"), "Bearer test-token"; got != want {
		t.Fatalf("Authorization header = %q, want %q", got, want)
	}
	if got, want := capturedHeaders.Get("Accept"), "application/json;odata=nometadata"; got != want {
		t.Fatalf("Accept header = %q, want %q", got, want)
	}
}

func TestClientDoesNotRetry(t *testing.T) {
	attempts := 0

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(`{"odata.error":{"code":"-1","message":{"lang":"en-US","value":"try later"}}}`)); err != nil {
			t.Fatalf("write response: %v", err)
		}
	})

	err := client.Do(context.Background(), "GET", server.URL+"/_api/web", nil, nil)
	if err == nil {
		t.Fatalf("expected error for 503 response")
	}
	if attempts != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", attempts)
	}
}

func TestClientDecodesODataError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		payload := `{"odata.error":{"code":"-1, System.ArgumentException",` +
			`"message":{"lang":"en-US","value":"List 'Documents' does not exist at site with URL 'https://contoso.sharepoint.com/sites/x'."}}}`
		if _, err := w.Write([]byte(payload)); err != nil {
			t.Fatalf("write response: %v", err)
		}
	})

	err := client.Do(context.Background(), "GET", server.URL+"/_api/web", nil, nil)

	var se *spo.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *spo.Error, got %T (%v)", err, err)
	}
	if want := "List 'Documents' does not exist at site with URL 'https://contoso.sharepoint.com/sites/x'."; se.Message != want {
		t.Fatalf("Message = %q, want %q", se.Message, want)
	}
	if se.Status != http.StatusNotFound {
		t.Fatalf("Status = %d, want %d", se.Status, http.StatusNotFound)
	}
	if se.Code != "-1, System.ArgumentException" {
		t.Fatalf("Code = %q", se.Code)
	}
}

func TestClientDecodesErrorDescription(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		if _, err := w.Write([]byte(`{"error":"invalid_grant","error_description":"AADSTS70000: refresh token expired"}`)); err != nil {
			t.Fatalf("write response: %v", err)
		}
	})

	err := client.Do(context.Background(), "GET", server.URL+"/_api/web", nil, nil)

	var se *spo.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *spo.Error, got %T (%v)", err, err)
	}
	if want := "AADSTS70000: refresh token expired"; se.Message != want {
		t.Fatalf("Message = %q, want %q", se.Message, want)
	}
	if se.Code != "invalid_grant" {
		t.Fatalf("Code = %q, want invalid_grant", se.Code)
	}
}

func TestClientRejectsRelativeTarget(t *testing.T) {
	client := spo.NewClient(spo.ClientConfig{Token: "test-token"})
	client.WithLimiter(rate.NewLimiter(rate.Inf, 0))

	if err := client.Do(context.Background(), "GET", "/_api/web", nil, nil); err == nil {
		t.Fatalf("expected error for relative target")
	}
}
