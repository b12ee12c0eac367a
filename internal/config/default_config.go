package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigContents = `# mynades configuration

[general]
# database = "$HOME/.config/mynades/mynades.db"
# log_file = "$HOME/.cache/mynades/mynades.log"
host_timeout_ms = 5000

[ui]
theme = "dark"
autosave_debounce_ms = 1000
flash_duration_ms = 800
toast_duration_ms = 3000
confirm_delete = false

[capture]
confirm_keys = ["alt+enter"]
cancel_keys = ["esc"]

[carousel]
card_width = 16
page_fraction = 0.7
flick_threshold = 0.5
momentum_ms = 200
arrow_tolerance = 5.0
page_animation_ms = 400

[notifications]
disabled = false
timeout_ms = 3000

[hot_reload_section]
disabled = false
debounce_time_ms = 1000
`

// CreateDefaultConfig writes the default configuration to configPath, parent directories included.
func CreateDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("cant create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfigContents), 0o600); err != nil {
		return fmt.Errorf("cant write default config: %w", err)
	}
	return nil
}
