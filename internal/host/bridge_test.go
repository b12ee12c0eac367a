package host_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mynades/mynades/internal/errs"
	"github.com/mynades/mynades/internal/host"
	"github.com/mynades/mynades/internal/store"
	"github.com/mynades/mynades/internal/testutils"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	summaries []string
	errs      []error
}

func (f *fakeNotifier) NotifyError(summary string, err error) error {
	f.summaries = append(f.summaries, summary)
	f.errs = append(f.errs, err)
	return nil
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	out, formatter, level := logrus.StandardLogger().Out, logrus.StandardLogger().Formatter, logrus.GetLevel()
	logrus.SetOutput(buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logrus.SetOutput(out)
		logrus.SetFormatter(formatter)
		logrus.SetLevel(level)
	})
	return buf
}

func newService(t *testing.T) (*host.Service, *fakeNotifier, int) {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.SeedMaps(context.Background(), []store.Map{{Name: "Mirage"}, {Name: "Dust2"}})
	require.NoError(t, err)
	maps, err := s.ListMaps(context.Background())
	require.NoError(t, err)

	notifier := &fakeNotifier{}
	return host.NewService(s, notifier), notifier, maps[0].ID
}

func TestService_SaveListDelete(t *testing.T) {
	ctx := context.Background()
	svc, notifier, mapID := newService(t)
	logs := captureLogs(t)

	maps, err := svc.GetMaps(ctx)
	require.NoError(t, err)
	require.Len(t, maps, 2)

	id, err := svc.SaveShortcut(ctx, store.SaveShortcutRequest{MapID: mapID, Shortcut: "Ctrl + J"})
	require.NoError(t, err)

	shortcuts, err := svc.ListShortcutsByMap(ctx, mapID)
	require.NoError(t, err)
	require.Len(t, shortcuts, 1)
	assert.Equal(t, id, shortcuts[0].ID)
	assert.Equal(t, "", shortcuts[0].Description)

	require.NoError(t, svc.DeleteShortcut(ctx, mapID, id))
	shortcuts, err = svc.ListShortcutsByMap(ctx, mapID)
	require.NoError(t, err)
	assert.Empty(t, shortcuts)

	assert.Empty(t, notifier.summaries)
	testutils.AssertLogsPresent(t, logs.Bytes(),
		[]utils.LogID{utils.ShortcutSavedLogID, utils.ShortcutDeletedLogID})
}

func TestService_FailuresNotify(t *testing.T) {
	ctx := context.Background()
	svc, notifier, mapID := newService(t)

	err := svc.DeleteShortcut(ctx, mapID, 404)
	require.ErrorIs(t, err, errs.ErrShortcutNotFound)

	_, err = svc.SaveShortcut(ctx, store.SaveShortcutRequest{
		MapID: mapID, Shortcut: "Alt + K", ID: utils.JustPtr(int64(404)),
	})
	require.ErrorIs(t, err, errs.ErrShortcutNotFound)

	assert.Equal(t, []string{"Deleting shortcut failed", "Saving shortcut failed"}, notifier.summaries)
	for _, nerr := range notifier.errs {
		assert.True(t, errors.Is(nerr, errs.ErrShortcutNotFound))
	}
}

func TestService_LogMessage(t *testing.T) {
	svc, _, _ := newService(t)
	logs := captureLogs(t)

	svc.LogMessage(context.Background(), "no key captured")

	assert.Contains(t, logs.String(), `"source":"ui"`)
	assert.Contains(t, logs.String(), "no key captured")
	testutils.AssertLogsPresent(t, logs.Bytes(), []utils.LogID{utils.UIMessageLogID})
}

func TestService_NilNotifier(t *testing.T) {
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	svc := host.NewService(s, nil)
	err = svc.DeleteShortcut(context.Background(), 1, 1)
	assert.ErrorIs(t, err, errs.ErrShortcutNotFound)
}
