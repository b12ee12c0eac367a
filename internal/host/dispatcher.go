package host

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mynades/mynades/internal/errs"
	"github.com/mynades/mynades/internal/store"
	"github.com/tidwall/gjson"
)

const (
	GetMapsCommand            = "get_maps"
	ListShortcutsByMapCommand = "list_shortcuts_by_map"
	SaveShortcutCommand       = "save_shortcut"
	DeleteShortcutCommand     = "delete_shortcut"
	LogMessageCommand         = "log_message"
)

type handler func(ctx context.Context, params gjson.Result) (any, error)

// Dispatcher invokes bridge commands by name with camelCase JSON parameters,
// e.g. save_shortcut {"mapId": 1, "shortcut": "Ctrl + J", "description": "", "id": null}.
type Dispatcher struct {
	bridge   Bridge
	handlers map[string]handler
}

func NewDispatcher(bridge Bridge) *Dispatcher {
	d := &Dispatcher{bridge: bridge}
	d.handlers = map[string]handler{
		GetMapsCommand:            d.getMaps,
		ListShortcutsByMapCommand: d.listShortcutsByMap,
		SaveShortcutCommand:       d.saveShortcut,
		DeleteShortcutCommand:     d.deleteShortcut,
		LogMessageCommand:         d.logMessage,
	}
	return d
}

// Commands lists the supported command names in a stable order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (d *Dispatcher) Invoke(ctx context.Context, command string, params []byte) (any, error) {
	h, ok := d.handlers[command]
	if !ok {
		return nil, fmt.Errorf("%s, expected one of [%s]: %w",
			command, strings.Join(d.Commands(), ", "), errs.ErrUnknownCommand)
	}

	raw := strings.TrimSpace(string(params))
	if raw == "" {
		raw = "{}"
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("params for %s are not valid json: %w", command, errs.ErrInvalidParams)
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("params for %s must be a json object: %w", command, errs.ErrInvalidParams)
	}

	return h(ctx, parsed)
}

func (d *Dispatcher) getMaps(ctx context.Context, _ gjson.Result) (any, error) {
	return d.bridge.GetMaps(ctx)
}

func (d *Dispatcher) listShortcutsByMap(ctx context.Context, params gjson.Result) (any, error) {
	mapID, err := requiredInt(params, "mapId")
	if err != nil {
		return nil, err
	}
	return d.bridge.ListShortcutsByMap(ctx, int(mapID))
}

func (d *Dispatcher) saveShortcut(ctx context.Context, params gjson.Result) (any, error) {
	mapID, err := requiredInt(params, "mapId")
	if err != nil {
		return nil, err
	}
	shortcut := params.Get("shortcut")
	if shortcut.Type != gjson.String || shortcut.String() == "" {
		return nil, fmt.Errorf("shortcut must be a non-empty string: %w", errs.ErrInvalidParams)
	}
	description := params.Get("description")
	if description.Exists() && description.Type != gjson.String && description.Type != gjson.Null {
		return nil, fmt.Errorf("description must be a string: %w", errs.ErrInvalidParams)
	}

	req := store.SaveShortcutRequest{
		MapID:       int(mapID),
		Shortcut:    shortcut.String(),
		Description: description.String(),
	}
	if id := params.Get("id"); id.Exists() && id.Type != gjson.Null {
		value, err := requiredInt(params, "id")
		if err != nil {
			return nil, err
		}
		req.ID = &value
	}

	return d.bridge.SaveShortcut(ctx, req)
}

func (d *Dispatcher) deleteShortcut(ctx context.Context, params gjson.Result) (any, error) {
	mapID, err := requiredInt(params, "mapId")
	if err != nil {
		return nil, err
	}
	shortcutID, err := requiredInt(params, "shortcutId")
	if err != nil {
		return nil, err
	}
	return nil, d.bridge.DeleteShortcut(ctx, int(mapID), shortcutID)
}

func (d *Dispatcher) logMessage(ctx context.Context, params gjson.Result) (any, error) {
	d.bridge.LogMessage(ctx, params.Get("message").String())
	return nil, nil
}

func requiredInt(params gjson.Result, field string) (int64, error) {
	value := params.Get(field)
	if !value.Exists() || value.Type == gjson.Null {
		return 0, fmt.Errorf("%s is required: %w", field, errs.ErrInvalidParams)
	}
	if value.Type != gjson.Number || value.Num != float64(value.Int()) {
		return 0, fmt.Errorf("%s must be an integer, got %s: %w", field, value.Raw, errs.ErrInvalidParams)
	}
	return value.Int(), nil
}
