// Package notifications provides desktop notifications through dbus
package notifications

import (
	"fmt"

	"github.com/TheCreeper/go-notify"
	"github.com/mynades/mynades/internal/config"
	"github.com/sirupsen/logrus"
)

type Service struct {
	config *config.Config
	hints  map[string]interface{}
	show   func(summary, body string, timeoutMs int32, hints map[string]interface{}) error
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		hints: map[string]interface{}{
			"synchronous":       config.ApplicationName,
			"x-dunst-stack-tag": config.ApplicationName,
		},
		show: showNotification,
	}
}

// NotifyError shows a desktop notification for a failed persistence call.
func (s *Service) NotifyError(summary string, cause error) error {
	if *s.config.Get().Notifications.Disabled {
		logrus.Debug("notifications are not enabled, not sending")
		return nil
	}

	if err := s.show(summary, cause.Error(), *s.config.Get().Notifications.TimeoutMs, s.hints); err != nil {
		return fmt.Errorf("cant send notification for %q: %w", summary, err)
	}
	return nil
}

func showNotification(summary, body string, timeoutMs int32, hints map[string]interface{}) error {
	ntf := notify.NewNotification(summary, body)
	ntf.Timeout = timeoutMs
	ntf.Hints = hints
	_, err := ntf.Show()
	return err
}
