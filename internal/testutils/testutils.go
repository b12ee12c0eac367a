// Package testutils provides utils for testing
// should not be imported by any other app packages
package testutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type TestConfig struct {
	cfg     *config.UnsafeConfig
	t       *testing.T
	cfgFile *string
}

func NewTestConfig(t *testing.T) *TestConfig {
	return &TestConfig{cfg: &config.UnsafeConfig{}, t: t}
}

func (t *TestConfig) WithGeneral(g *config.GeneralSection) *TestConfig {
	t.cfg.General = g
	return t
}

func (t *TestConfig) WithUI(ui *config.UISection) *TestConfig {
	t.cfg.UI = ui
	return t
}

func (t *TestConfig) WithCapture(c *config.CaptureSection) *TestConfig {
	t.cfg.Capture = c
	return t
}

func (t *TestConfig) WithCarousel(c *config.CarouselSection) *TestConfig {
	t.cfg.Carousel = c
	return t
}

func (t *TestConfig) WithNotifications(n *config.NotificationsSection) *TestConfig {
	t.cfg.Notifications = n
	return t
}

func (t *TestConfig) WithHotReload(h *config.HotReloadSection) *TestConfig {
	t.cfg.HotReload = h
	return t
}

func (t *TestConfig) WithMaps(maps []*config.SeedMap) *TestConfig {
	t.cfg.Maps = maps
	return t
}

func (t *TestConfig) WithConfigDir(dir string) *TestConfig {
	require.NoError(t.t, os.MkdirAll(dir, 0o750))

	cfgFile := filepath.Join(dir, "config.toml")
	// nolint:gosec
	if _, err := os.Create(cfgFile); err != nil {
		t.t.Fatalf("Failed to create file: %v", err)
	}
	t.cfgFile = &cfgFile

	return t
}

func (t *TestConfig) WithConfigPath(path string) *TestConfig {
	t.cfgFile = &path
	return t
}

func (t *TestConfig) SaveToFile() *TestConfig {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(t.cfg); err != nil {
		t.t.Fatalf("cant encode config: %v", err)
	}
	require.NotNil(t.t, t.cfgFile, "cfgFile cant be nil")
	require.NoError(t.t, os.WriteFile(*t.cfgFile, buf.Bytes(), 0o600), "cant write config")
	return t
}

func (t *TestConfig) createConfig() *config.Config {
	logrus.WithFields(logrus.Fields{"path": *t.cfgFile}).Debug("Creating config")
	cfg, err := config.NewConfig(*t.cfgFile)
	require.NoError(t.t, err, "cant create config")

	return cfg
}

// FillDefaults points the database into a temp dir and keeps desktop notifications off.
func (t *TestConfig) FillDefaults() *TestConfig {
	if t.cfg.General == nil {
		t.cfg.General = &config.GeneralSection{}
	}
	if t.cfg.General.Database == nil {
		t.cfg.General.Database = utils.StringPtr(filepath.Join(t.t.TempDir(), "test.db"))
	}
	if t.cfg.Notifications == nil {
		t.cfg.Notifications = &config.NotificationsSection{Disabled: utils.BoolPtr(true)}
	}
	if t.cfgFile == nil {
		t = t.WithConfigDir(t.t.TempDir())
	}
	return t
}

func (t *TestConfig) Get() *config.Config {
	return t.FillDefaults().SaveToFile().createConfig()
}
