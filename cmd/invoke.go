package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mynades/mynades/internal/app"
	"github.com/spf13/cobra"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke COMMAND [JSON]",
	Short: "Invoke a host command by name",
	Long: `Invoke one of the host commands the terminal UI uses, with camelCase json parameters.

Example:
  mynades invoke save_shortcut '{"mapId": 1, "shortcut": "Ctrl + K", "description": "kill feed"}'
  echo '{"mapId": 1}' | mynades invoke list_shortcuts_by_map -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		h, err := app.NewHost(ctx, configPath)
		if err != nil {
			return fmt.Errorf("cant init host: %w", err)
		}
		defer h.Close()

		params := ""
		if len(args) == 2 {
			params = args[1]
		}
		if params == "-" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("cant read params from stdin: %w", err)
			}
			params = string(raw)
		}

		result, err := h.Dispatcher().Invoke(ctx, args[0], []byte(params))
		if err != nil {
			return err
		}
		if result == nil {
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
}
