package host_test

import (
	"context"
	"testing"

	"github.com/mynades/mynades/internal/errs"
	"github.com/mynades/mynades/internal/host"
	"github.com/mynades/mynades/internal/store"
	"github.com/mynades/mynades/internal/testutils"
	"github.com/mynades/mynades/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher() (*host.Dispatcher, *testutils.FakeBridge) {
	bridge := testutils.NewFakeBridge(
		store.Map{ID: 1, Name: "A"},
		store.Map{ID: 2, Name: "B"},
	).WithShortcuts(2, store.Shortcut{ID: 5, Shortcut: "Ctrl + K", Description: "smoke"})
	return host.NewDispatcher(bridge), bridge
}

func TestDispatcher_Commands(t *testing.T) {
	d, _ := newDispatcher()
	assert.Equal(t, []string{
		host.DeleteShortcutCommand,
		host.GetMapsCommand,
		host.ListShortcutsByMapCommand,
		host.LogMessageCommand,
		host.SaveShortcutCommand,
	}, d.Commands())
}

func TestDispatcher_Invoke(t *testing.T) {
	tests := []struct {
		name    string
		command string
		params  string
		want    any
		wantErr error
	}{
		{
			name:    "get maps without params",
			command: host.GetMapsCommand,
			want:    []store.Map{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		},
		{
			name:    "list shortcuts",
			command: host.ListShortcutsByMapCommand,
			params:  `{"mapId": 2}`,
			want:    []store.Shortcut{{ID: 5, MapID: 2, Shortcut: "Ctrl + K", Description: "smoke"}},
		},
		{
			name:    "list shortcuts requires map id",
			command: host.ListShortcutsByMapCommand,
			params:  `{}`,
			wantErr: errs.ErrInvalidParams,
		},
		{
			name:    "map id must be an integer",
			command: host.ListShortcutsByMapCommand,
			params:  `{"mapId": "two"}`,
			wantErr: errs.ErrInvalidParams,
		},
		{
			name:    "fractional ids are rejected",
			command: host.ListShortcutsByMapCommand,
			params:  `{"mapId": 1.5}`,
			wantErr: errs.ErrInvalidParams,
		},
		{
			name:    "save creates with null id",
			command: host.SaveShortcutCommand,
			params:  `{"mapId": 1, "shortcut": "Ctrl + J", "description": "", "id": null}`,
			want:    int64(6),
		},
		{
			name:    "save echoes existing id",
			command: host.SaveShortcutCommand,
			params:  `{"mapId": 2, "shortcut": "Ctrl + K", "description": "flash", "id": 5}`,
			want:    int64(5),
		},
		{
			name:    "save requires a shortcut",
			command: host.SaveShortcutCommand,
			params:  `{"mapId": 1, "shortcut": ""}`,
			wantErr: errs.ErrInvalidParams,
		},
		{
			name:    "save rejects non string description",
			command: host.SaveShortcutCommand,
			params:  `{"mapId": 1, "shortcut": "F1", "description": 3}`,
			wantErr: errs.ErrInvalidParams,
		},
		{
			name:    "delete",
			command: host.DeleteShortcutCommand,
			params:  `{"mapId": 2, "shortcutId": 5}`,
		},
		{
			name:    "delete unknown shortcut propagates",
			command: host.DeleteShortcutCommand,
			params:  `{"mapId": 2, "shortcutId": 99}`,
			wantErr: errs.ErrShortcutNotFound,
		},
		{
			name:    "log message",
			command: host.LogMessageCommand,
			params:  `{"message": "hello"}`,
		},
		{
			name:    "unknown command",
			command: "drop_tables",
			wantErr: errs.ErrUnknownCommand,
		},
		{
			name:    "invalid json",
			command: host.GetMapsCommand,
			params:  `{"mapId": `,
			wantErr: errs.ErrInvalidParams,
		},
		{
			name:    "params must be an object",
			command: host.GetMapsCommand,
			params:  `[1, 2]`,
			wantErr: errs.ErrInvalidParams,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newDispatcher()
			got, err := d.Invoke(context.Background(), tt.command, []byte(tt.params))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDispatcher_SaveForwardsRequest(t *testing.T) {
	d, bridge := newDispatcher()

	_, err := d.Invoke(context.Background(), host.SaveShortcutCommand,
		[]byte(`{"mapId": 2, "shortcut": "Alt + Q", "description": "peek", "id": 5}`))
	require.NoError(t, err)
	_, err = d.Invoke(context.Background(), host.LogMessageCommand, []byte(`{"message": "typed"}`))
	require.NoError(t, err)

	assert.Equal(t, []store.SaveShortcutRequest{
		{MapID: 2, Shortcut: "Alt + Q", Description: "peek", ID: utils.JustPtr(int64(5))},
	}, bridge.SaveCalls())
	assert.Equal(t, []string{"typed"}, bridge.Messages())
}
