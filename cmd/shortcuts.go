package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/mynades/mynades/internal/app"
	"github.com/mynades/mynades/internal/store"
	"github.com/spf13/cobra"
)

var (
	shortcutsMapID    int
	shortcutsMarkdown bool
)

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Print the shortcuts of a map",
	Long:  `Print every shortcut stored for a map, as a table or as a rendered markdown cheat-sheet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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
		var target *store.Map
		for i := range maps {
			if maps[i].ID == shortcutsMapID {
				target = &maps[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("no map with id %d, see `%s maps`", shortcutsMapID, BinaryName)
		}

		shortcuts, err := h.Bridge().ListShortcutsByMap(ctx, target.ID)
		if err != nil {
			return err
		}

		if !shortcutsMarkdown {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSHORTCUT\tDESCRIPTION")
			for _, sc := range shortcuts {
				fmt.Fprintf(w, "%d\t%s\t%s\n", sc.ID, sc.Shortcut, sc.Description)
			}
			return w.Flush()
		}

		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			return fmt.Errorf("cant create markdown renderer: %w", err)
		}
		out, err := renderer.Render(cheatSheet(*target, shortcuts))
		if err != nil {
			return fmt.Errorf("cant render cheat-sheet: %w", err)
		}
		fmt.Print(out)
		return nil
	},
}

func cheatSheet(m store.Map, shortcuts []store.Shortcut) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Name)
	if len(shortcuts) == 0 {
		b.WriteString("_No shortcuts yet._\n")
		return b.String()
	}
	b.WriteString("| Shortcut | Description |\n|---|---|\n")
	for _, sc := range shortcuts {
		desc := strings.ReplaceAll(sc.Description, "|", `\|`)
		desc = strings.ReplaceAll(desc, "\n", " ")
		fmt.Fprintf(&b, "| `%s` | %s |\n", sc.Shortcut, desc)
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(shortcutsCmd)

	shortcutsCmd.Flags().IntVar(&shortcutsMapID, "map", 0, "Id of the map to print")
	shortcutsCmd.Flags().BoolVar(&shortcutsMarkdown, "markdown", false, "Render a markdown cheat-sheet")
	_ = shortcutsCmd.MarkFlagRequired("map")
}
