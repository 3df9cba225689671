package extract

import (
	"context"

	"reelscout/internal/media"
)

// Direct passes URLs that already point at a media file through unchanged.
type Direct struct{}

func (Direct) Name() string { return "direct" }

func (Direct) Extract(_ context.Context, embedURL, referer string) (*Result, error) {
	return &Result{Links: []media.ResolvedLink{media.NewLink(embedURL, referer, "direct")}}, nil
}
