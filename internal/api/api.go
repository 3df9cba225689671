// Package api exposes the catalog and link resolution over JSON HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reelscout/internal/log"
	"reelscout/internal/media"
	"reelscout/internal/provider"
	"reelscout/internal/subtitle"
)

// LinkResolver finds playable links behind a movie or episode page.
type LinkResolver interface {
	Resolve(ctx context.Context, unitURL string, onSubtitle func(media.Subtitle), onLink func(media.ResolvedLink)) bool
}

// Handler serves the catalog API.
type Handler struct {
	Provider provider.Provider
	Resolver LinkResolver
	Origin   string // Site origin, unit URLs must live under it
}

// NewHandler creates a Handler.
func NewHandler(p provider.Provider, r LinkResolver, origin string) *Handler {
	return &Handler{Provider: p, Resolver: r, Origin: strings.TrimRight(origin, "/")}
}

// LinksResponse is the body of GET /api/links.
type LinksResponse struct {
	Found     bool                 `json:"found"`
	Links     []media.ResolvedLink `json:"links"`
	Subtitles []media.Subtitle     `json:"subtitles"`
}

// Router wires the API routes and /metrics.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/home", h.Home).Methods(http.MethodGet)
	api.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	api.HandleFunc("/load", h.Load).Methods(http.MethodGet)
	api.HandleFunc("/links", h.Links).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// Home serves GET /api/home?page=N.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "page must be a positive integer", http.StatusBadRequest)
			return
		}
		page = n
	}

	home, err := h.Provider.Home(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, home)
}

// Search serves GET /api/search?q=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}

	items, err := h.Provider.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []media.CatalogItem{}
	}
	writeJSON(w, items)
}

// Load serves GET /api/load?url=...
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	u := r.URL.Query().Get("url")
	if u == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	d, err := h.Provider.Load(r.Context(), u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, d)
}

// Links serves GET /api/links?url=...[&lang=...]
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	u := r.URL.Query().Get("url")
	if u == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(u, h.Origin+"/") {
		http.Error(w, provider.ErrOutsideSite.Error(), http.StatusBadRequest)
		return
	}

	resp := LinksResponse{Links: []media.ResolvedLink{}, Subtitles: []media.Subtitle{}}
	resp.Found = h.Resolver.Resolve(r.Context(), u,
		func(s media.Subtitle) { resp.Subtitles = append(resp.Subtitles, s) },
		func(l media.ResolvedLink) { resp.Links = append(resp.Links, l) })

	resp.Subtitles = subtitle.Dedupe(resp.Subtitles)
	if lang := r.URL.Query().Get("lang"); lang != "" {
		resp.Subtitles = subtitle.Filter(resp.Subtitles, lang)
		if resp.Subtitles == nil {
			resp.Subtitles = []media.Subtitle{}
		}
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, provider.ErrNoTitle):
		status = http.StatusNotFound
	case errors.Is(err, provider.ErrOutsideSite):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithField("path", r.URL.Path).Debugf("%s %s in %s", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}
