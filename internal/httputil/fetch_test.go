package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchFollowsRedirectAndReportsFinalURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Referer"); got != "https://site.example/" {
			t.Errorf("Referer = %q, want https://site.example/", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><h1>Hello</h1></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(srv.Client(), "")
	page, err := f.Fetch(context.Background(), srv.URL+"/old", "https://site.example/")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if page.URL != srv.URL+"/new" {
		t.Errorf("page.URL = %q, want %q", page.URL, srv.URL+"/new")
	}
	if got := page.Doc.Find("h1").Text(); got != "Hello" {
		t.Errorf("h1 = %q, want Hello", got)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.Client(), "").Fetch(context.Background(), srv.URL, "")
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("Fetch() error = %v, want ErrStatus", err)
	}
}

func TestFetchDecodesLegacyCharset(t *testing.T) {
	// "مرحبا" in windows-1256.
	body := []byte("<html><body><p>\xe3\xd1\xcd\xc8\xc7</p></body></html>")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1256")
		w.Write(body)
	}))
	defer srv.Close()

	page, err := NewFetcher(srv.Client(), "").Fetch(context.Background(), srv.URL, "")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if got := strings.TrimSpace(page.Doc.Find("p").Text()); got != "مرحبا" {
		t.Errorf("decoded text = %q, want مرحبا", got)
	}
}

func TestFetchRejectsInvalidScheme(t *testing.T) {
	_, err := NewFetcher(nil, "").Fetch(context.Background(), "javascript:alert(1)", "")
	if err == nil {
		t.Fatal("expected error for javascript: URL")
	}
}
