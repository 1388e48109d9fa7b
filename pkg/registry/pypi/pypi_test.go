package pypi

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

func TestFetchLicensePinned(t *testing.T) {
	client, closeServer := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/requests/2.31.0/json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"info":{"license":"Apache 2.0"}}`))
	}))
	defer closeServer()

	license, found, err := client.FetchLicense(context.Background(), "requests", "2.31.0")
	if err != nil {
		t.Fatalf("FetchLicense: %v", err)
	}
	if !found || license != "Apache 2.0" {
		t.Errorf("license = %q, found = %v", license, found)
	}
}

func TestFetchLicenseUnpinned(t *testing.T) {
	client, closeServer := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flask/json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"info":{"license":"BSD-3-Clause"}}`))
	}))
	defer closeServer()

	license, found, err := client.FetchLicense(context.Background(), "flask", "*")
	if err != nil {
		t.Fatalf("FetchLicense: %v", err)
	}
	if !found || license != "BSD-3-Clause" {
		t.Errorf("license = %q, found = %v", license, found)
	}
}

func TestFetchLicenseEmptyField(t *testing.T) {
	client, closeServer := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"info":{"license":"  "}}`))
	}))
	defer closeServer()

	_, found, err := client.FetchLicense(context.Background(), "mystery", "1.0")
	if err != nil {
		t.Fatalf("FetchLicense: %v", err)
	}
	if found {
		t.Error("found should be false for a blank license field")
	}
}

func TestFetchLicenseNotFound(t *testing.T) {
	client, closeServer := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer closeServer()

	_, found, err := client.FetchLicense(context.Background(), "no-such-package", "1.0")
	if err != nil {
		t.Fatalf("FetchLicense: %v", err)
	}
	if found {
		t.Error("found should be false for an unknown package")
	}
}
