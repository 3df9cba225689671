package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelscout/internal/httputil"
	"reelscout/internal/media"
	"reelscout/internal/provider"
)

const origin = "https://tv2.egydead.live"

type stubProvider struct {
	err      error
	lastPage int
}

func (s *stubProvider) Home(_ context.Context, page int) (*media.HomePage, error) {
	s.lastPage = page
	if s.err != nil {
		return nil, s.err
	}
	return &media.HomePage{
		Rows:    []media.HomeRow{{Name: "Latest", Items: []media.CatalogItem{{Title: "Dark", DetailURL: origin + "/serie/dark/", Kind: media.Series}}}},
		HasNext: true,
	}, nil
}

func (s *stubProvider) Search(_ context.Context, query string) ([]media.CatalogItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	if query == "nothing" {
		return nil, nil
	}
	return []media.CatalogItem{{Title: query, DetailURL: origin + "/x/", Kind: media.Movie}}, nil
}

func (s *stubProvider) Load(_ context.Context, detailURL string) (*media.Detail, error) {
	if s.err != nil {
		return nil, fmt.Errorf("loading %s: %w", detailURL, s.err)
	}
	return &media.Detail{Title: "Inception", URL: detailURL, Kind: media.Movie, DataURL: detailURL}, nil
}

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, unitURL string, onSubtitle func(media.Subtitle), onLink func(media.ResolvedLink)) bool {
	if unitURL != origin+"/inception/" {
		return false
	}
	onSubtitle(media.Subtitle{Language: "Arabic", URL: "https://cdn.example/ar.vtt"})
	onSubtitle(media.Subtitle{Language: "Arabic", URL: "https://cdn.example/ar.vtt"})
	onSubtitle(media.Subtitle{Language: "English", URL: "https://cdn.example/en.vtt"})
	onLink(media.NewLink("https://cdn.example/a.m3u8", unitURL, "stub"))
	return true
}

func serve(t *testing.T, p provider.Provider, target string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(p, stubResolver{}, origin+"/")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHome(t *testing.T) {
	p := &stubProvider{}
	rec := serve(t, p, "/api/home?page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, p.lastPage)

	var home media.HomePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &home))
	assert.True(t, home.HasNext)
	require.Len(t, home.Rows, 1)
	assert.Contains(t, rec.Body.String(), `"kind":"series"`)
}

func TestHomeBadPage(t *testing.T) {
	rec := serve(t, &stubProvider{}, "/api/home?page=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch(t *testing.T) {
	rec := serve(t, &stubProvider{}, "/api/search?q=matrix")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"matrix"`)

	rec = serve(t, &stubProvider{}, "/api/search?q=nothing")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = serve(t, &stubProvider{}, "/api/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no title", provider.ErrNoTitle, http.StatusNotFound},
		{"outside site", provider.ErrOutsideSite, http.StatusBadRequest},
		{"upstream status", fmt.Errorf("GET: %w", httputil.ErrStatus), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubProvider{err: tt.err}, "/api/load?url="+url.QueryEscape(origin+"/x/"))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestLinks(t *testing.T) {
	rec := serve(t, &stubProvider{}, "/api/links?url="+url.QueryEscape(origin+"/inception/"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LinksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	require.Len(t, resp.Links, 1)
	assert.Equal(t, media.HLS, resp.Links[0].Format)
	assert.Len(t, resp.Subtitles, 2, "duplicate tracks are collapsed")
	assert.Contains(t, rec.Body.String(), `"format":"hls"`)
}

func TestLinksLanguageFilter(t *testing.T) {
	rec := serve(t, &stubProvider{}, "/api/links?lang=ar&url="+url.QueryEscape(origin+"/inception/"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LinksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Subtitles, 1)
	assert.Equal(t, "Arabic", resp.Subtitles[0].Language)
}

func TestLinksNotFound(t *testing.T) {
	rec := serve(t, &stubProvider{}, "/api/links?url="+url.QueryEscape(origin+"/other/"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"found":false,"links":[],"subtitles":[]}`, rec.Body.String())
}

func TestLinksRejectsForeignURL(t *testing.T) {
	rec := serve(t, &stubProvider{}, "/api/links?url="+url.QueryEscape("http://169.254.169.254/latest/"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, &stubProvider{}, "/api/links")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	rec := serve(t, &stubProvider{}, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
