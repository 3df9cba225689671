package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"reelscout/internal/media"
)

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printItems(items []media.CatalogItem) {
	for _, it := range items {
		fmt.Printf("%-7s %s\t%s\n", "["+it.Kind.String()+"]", it.Title, it.DetailURL)
	}
}
