package httputil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// maxBodySize limits how much of a page is read.
const maxBodySize = 10 * 1024 * 1024

// ErrStatus is returned (wrapped) when a fetch ends with a non-success status.
var ErrStatus = errors.New("unexpected status")

// Page is a fetched and parsed document.
type Page struct {
	URL  string // Final URL after redirects
	HTML string // Raw body, decoded to UTF-8
	Doc  *goquery.Document
}

// NewPage parses html as the document found at pageURL.
func NewPage(pageURL, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(html)))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Page{URL: pageURL, HTML: html, Doc: doc}, nil
}

// Fetcher retrieves pages over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher. A nil client gets NewClient defaults.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	if client == nil {
		client = NewClient(0)
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch GETs rawURL and parses the response into a Page. Redirects are
// followed and Page.URL reports the final location. Bodies in legacy
// encodings are converted to UTF-8 using the Content-Type and meta hints.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, referer string) (*Page, error) {
	resp, err := Get(ctx, f.client, rawURL, referer, f.userAgent)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d for %s", ErrStatus, resp.StatusCode, rawURL)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return NewPage(finalURL, string(data))
}
