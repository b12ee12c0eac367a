// Package config handles loading and validation of TOML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/mynades/mynades/internal/utils"
	"github.com/shibukawa/configdir"
	"github.com/sirupsen/logrus"
)

const (
	VendorName      = "mynades"
	ApplicationName = "mynades"
	databaseName    = "mynades.db"
)

// Config is a goroutine safe handle over the parsed configuration, it can be reloaded in place.
type Config struct {
	mu         sync.RWMutex
	configPath string
	cfg        *UnsafeConfig
}

// UnsafeConfig is the raw configuration, callers must not mutate it.
type UnsafeConfig struct {
	ConfigPath    string                `toml:"-"`
	General       *GeneralSection       `toml:"general"`
	UI            *UISection            `toml:"ui"`
	Capture       *CaptureSection       `toml:"capture"`
	Carousel      *CarouselSection      `toml:"carousel"`
	Notifications *NotificationsSection `toml:"notifications"`
	HotReload     *HotReloadSection     `toml:"hot_reload_section"`
	Maps          []*SeedMap            `toml:"maps"`
}

type GeneralSection struct {
	Database      *string `toml:"database"`
	LogFile       *string `toml:"log_file"`
	HostTimeoutMs *int    `toml:"host_timeout_ms"`
}

type UISection struct {
	Theme              *Theme `toml:"theme"`
	AutosaveDebounceMs *int   `toml:"autosave_debounce_ms"`
	FlashDurationMs    *int   `toml:"flash_duration_ms"`
	ToastDurationMs    *int   `toml:"toast_duration_ms"`
	ConfirmDelete      *bool  `toml:"confirm_delete"`
}

type CaptureSection struct {
	ConfirmKeys []string `toml:"confirm_keys"`
	CancelKeys  []string `toml:"cancel_keys"`
}

type CarouselSection struct {
	CardWidth       *int     `toml:"card_width"`
	PageFraction    *float64 `toml:"page_fraction"`
	FlickThreshold  *float64 `toml:"flick_threshold"`
	MomentumMs      *int     `toml:"momentum_ms"`
	ArrowTolerance  *float64 `toml:"arrow_tolerance"`
	PageAnimationMs *int     `toml:"page_animation_ms"`
}

type NotificationsSection struct {
	Disabled  *bool  `toml:"disabled"`
	TimeoutMs *int32 `toml:"timeout_ms"`
}

type HotReloadSection struct {
	Disabled            *bool `toml:"disabled"`
	UpdateDebounceTimer *int  `toml:"debounce_time_ms"`
}

type SeedMap struct {
	Name      string `toml:"name"`
	ImagePath string `toml:"image_path"`
}

type Theme int

const (
	DarkTheme Theme = iota
	LightTheme
)

var themes = []Theme{DarkTheme, LightTheme}

func (t Theme) Value() string {
	switch t {
	case DarkTheme:
		return "dark"
	case LightTheme:
		return "light"
	}
	return ""
}

func (t Theme) Toggle() Theme {
	if t == DarkTheme {
		return LightTheme
	}
	return DarkTheme
}

func (t *Theme) UnmarshalTOML(value any) error {
	sValue, ok := value.(string)
	if !ok {
		return fmt.Errorf("value %v is not a string type", value)
	}
	for _, enum := range themes {
		if enum.Value() == sValue {
			*t = enum
			return nil
		}
	}
	return fmt.Errorf("invalid theme %q, expected one of %s", sValue, utils.FormatEnumTypes(themes))
}

func (t Theme) MarshalTOML() ([]byte, error) {
	return []byte(`"` + t.Value() + `"`), nil
}

// DefaultSeedMaps mirrors the maps the application ships with.
func DefaultSeedMaps() []*SeedMap {
	return []*SeedMap{
		{Name: "Mirage", ImagePath: "assets/maps/mirage.png"},
		{Name: "Dust2", ImagePath: "assets/maps/dust2.png"},
		{Name: "Inferno", ImagePath: "assets/maps/inferno.png"},
		{Name: "Nuke", ImagePath: "assets/maps/nuke.png"},
		{Name: "Overpass", ImagePath: "assets/maps/overpass.png"},
		{Name: "Vertigo", ImagePath: "assets/maps/vertigo.png"},
		{Name: "Ancient", ImagePath: "assets/maps/ancient.png"},
		{Name: "Train", ImagePath: "assets/maps/train.png"},
		{Name: "Anubis", ImagePath: "assets/maps/anubis.png"},
	}
}

// NewConfig reads the configuration at configPath, creating a default one when missing.
func NewConfig(configPath string) (*Config, error) {
	configPath = os.ExpandEnv(configPath)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		logrus.WithField("path", configPath).Info("Configuration file not found, creating a default one")
		if err := CreateDefaultConfig(configPath); err != nil {
			return nil, fmt.Errorf("cant create default config: %w", err)
		}
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("cant convert config path to abs: %w", err)
	}

	c := &Config{configPath: absPath}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the currently loaded configuration.
func (c *Config) Get() *UnsafeConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Reload re-reads the configuration file, the previous config is kept on error.
func (c *Config) Reload() error {
	cfg, err := Load(c.configPath)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	logrus.WithFields(utils.NewLogrusCustomFields(logrus.Fields{"path": c.configPath}).
		WithLogID(utils.ConfigReloadedLogID)).Debug("Configuration loaded")
	return nil
}

func Load(configPath string) (*UnsafeConfig, error) {
	var cfg UnsafeConfig
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML: %w", err)
	}
	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *UnsafeConfig) Validate() error {
	if c.General == nil {
		c.General = &GeneralSection{}
	}
	if err := c.General.Validate(); err != nil {
		return fmt.Errorf("general section validation failed: %w", err)
	}

	if c.UI == nil {
		c.UI = &UISection{}
	}
	if err := c.UI.Validate(); err != nil {
		return fmt.Errorf("ui section validation failed: %w", err)
	}

	if c.Capture == nil {
		c.Capture = &CaptureSection{}
	}
	if err := c.Capture.Validate(); err != nil {
		return fmt.Errorf("capture section validation failed: %w", err)
	}

	if c.Carousel == nil {
		c.Carousel = &CarouselSection{}
	}
	if err := c.Carousel.Validate(); err != nil {
		return fmt.Errorf("carousel section validation failed: %w", err)
	}

	if c.Notifications == nil {
		c.Notifications = &NotificationsSection{}
	}
	c.Notifications.Validate()

	if c.HotReload == nil {
		c.HotReload = &HotReloadSection{}
	}
	if err := c.HotReload.Validate(); err != nil {
		return fmt.Errorf("hot reload section validation failed: %w", err)
	}

	if len(c.Maps) == 0 {
		c.Maps = DefaultSeedMaps()
	}
	seen := map[string]bool{}
	for i, m := range c.Maps {
		if m.Name == "" {
			return fmt.Errorf("maps[%d]: name is required", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("maps[%d]: duplicate map name %s", i, m.Name)
		}
		seen[m.Name] = true
	}

	return nil
}

func (g *GeneralSection) Validate() error {
	if g.Database == nil {
		g.Database = utils.StringPtr(defaultDatabasePath())
	}
	g.Database = utils.StringPtr(os.ExpandEnv(*g.Database))
	if *g.Database == "" {
		return errors.New("database cant be empty")
	}

	if g.LogFile != nil {
		g.LogFile = utils.StringPtr(os.ExpandEnv(*g.LogFile))
	}

	if g.HostTimeoutMs == nil {
		g.HostTimeoutMs = utils.IntPtr(5000)
	}
	if *g.HostTimeoutMs <= 0 {
		return errors.New("host_timeout_ms needs to be > 0")
	}

	return nil
}

func (u *UISection) Validate() error {
	if u.Theme == nil {
		u.Theme = utils.JustPtr(DarkTheme)
	}
	if u.AutosaveDebounceMs == nil {
		u.AutosaveDebounceMs = utils.IntPtr(1000)
	}
	if u.FlashDurationMs == nil {
		u.FlashDurationMs = utils.IntPtr(800)
	}
	if u.ToastDurationMs == nil {
		u.ToastDurationMs = utils.IntPtr(3000)
	}
	if u.ConfirmDelete == nil {
		u.ConfirmDelete = utils.BoolPtr(false)
	}

	for name, v := range map[string]int{
		"autosave_debounce_ms": *u.AutosaveDebounceMs,
		"flash_duration_ms":    *u.FlashDurationMs,
		"toast_duration_ms":    *u.ToastDurationMs,
	} {
		if v <= 0 {
			return fmt.Errorf("%s needs to be > 0", name)
		}
	}

	return nil
}

func (c *CaptureSection) Validate() error {
	if len(c.ConfirmKeys) == 0 {
		c.ConfirmKeys = []string{"alt+enter"}
	}
	if len(c.CancelKeys) == 0 {
		c.CancelKeys = []string{"esc"}
	}

	for _, confirm := range c.ConfirmKeys {
		for _, cancel := range c.CancelKeys {
			if confirm == cancel {
				return fmt.Errorf("key %s cant be used to both confirm and cancel", confirm)
			}
		}
	}

	return nil
}

func (c *CarouselSection) Validate() error {
	if c.CardWidth == nil {
		c.CardWidth = utils.IntPtr(16)
	}
	if c.PageFraction == nil {
		c.PageFraction = utils.JustPtr(0.7)
	}
	if c.FlickThreshold == nil {
		c.FlickThreshold = utils.JustPtr(0.5)
	}
	if c.MomentumMs == nil {
		c.MomentumMs = utils.IntPtr(200)
	}
	if c.ArrowTolerance == nil {
		c.ArrowTolerance = utils.JustPtr(5.0)
	}
	if c.PageAnimationMs == nil {
		c.PageAnimationMs = utils.IntPtr(400)
	}

	if *c.CardWidth < 6 {
		return errors.New("card_width needs to be >= 6")
	}
	if *c.PageFraction <= 0 || *c.PageFraction > 1 {
		return errors.New("page_fraction needs to be in (0, 1]")
	}
	if *c.FlickThreshold < 0 || *c.MomentumMs < 0 || *c.ArrowTolerance < 0 || *c.PageAnimationMs < 0 {
		return errors.New("flick_threshold, momentum_ms, arrow_tolerance and page_animation_ms cant be negative")
	}

	return nil
}

func (n *NotificationsSection) Validate() {
	if n.Disabled == nil {
		n.Disabled = utils.BoolPtr(false)
	}
	if n.TimeoutMs == nil {
		n.TimeoutMs = utils.JustPtr(int32(3000))
	}
}

func (h *HotReloadSection) Validate() error {
	if h.Disabled == nil {
		h.Disabled = utils.BoolPtr(false)
	}
	if h.UpdateDebounceTimer == nil {
		h.UpdateDebounceTimer = utils.IntPtr(1000)
	}
	if *h.UpdateDebounceTimer < 0 {
		return errors.New("debounce_time_ms cant be negative")
	}
	return nil
}

func defaultDatabasePath() string {
	dirs := configdir.New(VendorName, ApplicationName)
	folders := dirs.QueryFolders(configdir.Global)
	if len(folders) == 0 {
		return filepath.Join("$HOME", ".config", ApplicationName, databaseName)
	}
	return filepath.Join(folders[0].Path, databaseName)
}
