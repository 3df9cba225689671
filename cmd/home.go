package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelscout/internal/media"
)

var homeCmd = &cobra.Command{
	Use:   "home [page]",
	Short: "Browse the home page listing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  homeRun,
}

func homeRun(cmd *cobra.Command, args []string) error {
	page, err := parsePageArg(args)
	if err != nil {
		return err
	}

	svc := newServices()
	home, err := svc.provider.Home(cmd.Context(), page)
	if err != nil {
		return fmt.Errorf("getting home page: %w", err)
	}

	if flagJSON {
		return printJSON(home)
	}

	var all []media.CatalogItem
	for _, row := range home.Rows {
		all = append(all, row.Items...)
	}
	if err := showItems(cmd.Context(), svc, fmt.Sprintf("Home (page %d)", page), all); err != nil {
		return err
	}
	if home.HasNext {
		debugf("more results: reelscout home %d", page+1)
	}
	return nil
}

func parsePageArg(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		return 0, fmt.Errorf("invalid page %q: must be a positive integer", args[0])
	}
	return page, nil
}
