package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mynades/mynades/internal/app"
	"github.com/mynades/mynades/internal/store"
	"github.com/spf13/cobra"
)

var (
	mapsMatch string
	mapsJSON  bool
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List the maps shortcuts can be attached to",
	Long:  `List the maps stored in the database, optionally filtered by a glob on the map name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if mapsMatch != "" && !doublestar.ValidatePattern(mapsMatch) {
			return fmt.Errorf("invalid --match pattern %q", mapsMatch)
		}

		ctx := context.Background()
		h, err := app.NewHost(ctx, configPath)
		if err != nil {
			return fmt.Errorf("cant init host: %w", err)
		}
		defer h.Close()

		maps, err := h.Bridge().GetMaps(ctx)
		if err != nil {
			return err
		}
		maps = filterMaps(maps, mapsMatch)

		if mapsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(maps)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tIMAGE")
		for _, m := range maps {
			fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, m.Name, m.ImagePath)
		}
		return w.Flush()
	},
}

func filterMaps(maps []store.Map, pattern string) []store.Map {
	if pattern == "" {
		return maps
	}
	filtered := []store.Map{}
	for _, m := range maps {
		// pattern was validated up front
		if ok, _ := doublestar.Match(pattern, m.Name); ok {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func init() {
	rootCmd.AddCommand(mapsCmd)

	mapsCmd.Flags().StringVar(&mapsMatch, "match", "", "Only list maps whose name matches the glob, e.g. 'D*'")
	mapsCmd.Flags().BoolVar(&mapsJSON, "json", false, "Print the maps as json")
}
