package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelscout/internal/media"
)

var loadCmd = &cobra.Command{
	Use:   "load <url>",
	Short: "Show a title's details and episodes",
	Args:  cobra.ExactArgs(1),
	RunE:  loadRun,
}

func loadRun(cmd *cobra.Command, args []string) error {
	svc := newServices()
	d, err := svc.provider.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(d)
	}

	fmt.Printf("%s [%s]\n", d.Title, d.Kind)
	if d.Year > 0 {
		fmt.Printf("Year:   %d\n", d.Year)
	}
	if d.PosterURL != "" {
		fmt.Printf("Poster: %s\n", d.PosterURL)
	}
	if d.Plot != "" {
		fmt.Printf("\n%s\n", d.Plot)
	}
	if d.Kind == media.Movie {
		fmt.Printf("\nPlay:   %s\n", d.DataURL)
		return nil
	}

	fmt.Printf("\n%d episode(s):\n", len(d.Episodes))
	for _, ep := range d.Episodes {
		fmt.Printf("  %-30s %s\n", ep.Label, ep.URL)
	}
	return nil
}
