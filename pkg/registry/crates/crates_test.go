package crates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.Handler) (*Client, func()) {
	server := httptest.NewServer(handler)
	client := NewClient(server.Client())
	client.baseURL = server.URL
	return client, server.Close
}

func TestFetchLicense(t *testing.T) {
	client, closeServer := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crates/serde/1.0.193" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"version":{"license":"MIT OR Apache-2.0"}}`))
	}))
	defer closeServer()

	license, found, err := client.FetchLicense(context.Background(), "serde", "1.0.193")
	if err != nil {
		t.Fatalf("FetchLicense: %v", err)
	}
	if !found {
		t.Fatal("license not found")
	}
	if license != "MIT OR Apache-2.0" {
		t.Errorf("license = %q", license)
	}
}

func TestFetchLicenseNotFound(t *testing.T) {
	client, closeServer := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer closeServer()

	_, found, err := client.FetchLicense(context.Background(), "no-such-crate", "0.0.1")
	if err != nil {
		t.Fatalf("FetchLicense: %v", err)
	}
	if found {
		t.Error("found should be false for an unknown crate")
	}
}

func TestFetchLicenseEmptyField(t *testing.T) {
	client, closeServer := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":{"license":""}}`))
	}))
	defer closeServer()

	_, found, err := client.FetchLicense(context.Background(), "unlicensed", "1.0.0")
	if err != nil {
		t.Fatalf("FetchLicense: %v", err)
	}
	if found {
		t.Error("found should be false when the registry has no license on file")
	}
}

func TestUserAgentHeader(t *testing.T) {
	var got string
	client, closeServer := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte(`{"version":{"license":"MIT"}}`))
	}))
	defer closeServer()

	if _, _, err := client.FetchLicense(context.Background(), "serde", "1.0.0"); err != nil {
		t.Fatalf("FetchLicense: %v", err)
	}
	if got == "" || got[:11] != "licensegate" {
		t.Errorf("User-Agent = %q", got)
	}
}
