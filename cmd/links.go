package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"reelscout/internal/api"
	"reelscout/internal/media"
	"reelscout/internal/subtitle"
	"reelscout/internal/ui"
)

var linksCmd = &cobra.Command{
	Use:   "links <url>",
	Short: "Resolve playable links for a movie or episode page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveAndPrint(cmd.Context(), newServices(), args[0])
	},
}

// resolveAndPrint resolves unit and prints every link as it arrives.
func resolveAndPrint(ctx context.Context, svc *services, unit string) error {
	debugf("resolving: %s", unit)

	resp := api.LinksResponse{Links: []media.ResolvedLink{}, Subtitles: []media.Subtitle{}}
	resp.Found = svc.resolver.Resolve(ctx, unit,
		func(s media.Subtitle) { resp.Subtitles = append(resp.Subtitles, s) },
		func(l media.ResolvedLink) {
			resp.Links = append(resp.Links, l)
			if !flagJSON {
				fmt.Println(ui.FormatLink(l))
			}
		})
	resp.Subtitles = subtitle.Dedupe(resp.Subtitles)

	if flagJSON {
		return printJSON(resp)
	}
	if !resp.Found {
		return fmt.Errorf("no playable links found for %s", unit)
	}
	if best := subtitle.BestMatch(resp.Subtitles, cfg.SubsLanguage); best != nil {
		fmt.Printf("Subtitle (%s): %s\n", best.Label, best.URL)
	}
	return nil
}
