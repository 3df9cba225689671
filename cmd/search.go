package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelscout/internal/media"
	"reelscout/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  searchRun,
}

// searchRun is also the default command: reelscout <query>
func searchRun(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return cmd.Help()
	}

	debugf("searching for: %s", query)

	svc := newServices()
	items, err := svc.provider.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return showItems(cmd.Context(), svc, "Search: "+query, items)
}

// showItems prints items, or lets the user pick one when attached to a
// terminal and JSON output is off.
func showItems(ctx context.Context, svc *services, prompt string, items []media.CatalogItem) error {
	if flagJSON {
		if items == nil {
			items = []media.CatalogItem{}
		}
		return printJSON(items)
	}
	if len(items) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	if !ui.IsInteractive() {
		printItems(items)
		return nil
	}
	return pickAndResolve(ctx, svc, prompt, items)
}

// pickAndResolve handles title selection, episode selection for series,
// and link resolution for the chosen unit.
func pickAndResolve(ctx context.Context, svc *services, prompt string, items []media.CatalogItem) error {
	idx, err := ui.Select(prompt, ui.CatalogItems(items))
	if err != nil {
		return err
	}

	selected := items[idx]
	debugf("selected: %s (%s, %s)", selected.Title, selected.Kind, selected.DetailURL)

	d, err := svc.provider.Load(ctx, selected.DetailURL)
	if err != nil {
		return fmt.Errorf("loading %q: %w", selected.Title, err)
	}

	unit := d.DataURL
	if d.Kind == media.Series {
		epIdx, err := ui.Select(d.Title, ui.EpisodeItems(d.Episodes))
		if err != nil {
			return err
		}
		unit = d.Episodes[epIdx].URL
		debugf("episode: %s", d.Episodes[epIdx].Label)
	}

	return resolveAndPrint(ctx, svc, unit)
}
