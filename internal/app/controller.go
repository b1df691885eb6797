package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/EmilIverskog/storageFinder/internal/backup"
	"github.com/EmilIverskog/storageFinder/internal/inventory"
)

// Controller owns the current State and applies the effects Transition asks
// for against a Store.
type Controller struct {
	store     inventory.Store
	exportDir string
	now       func() time.Time
	state     State
}

// NewController loads the catalog once to render the initial search screen.
func NewController(s inventory.Store, exportDir string) (*Controller, error) {
	items, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return &Controller{
		store:     s,
		exportDir: exportDir,
		now:       time.Now,
		state:     Initial(items),
	}, nil
}

func (c *Controller) State() State { return c.state }

// Dispatch runs one event. Save and export effects are executed here; the
// returned effects (notifications and file loads) are for the caller.
//
// If a save fails the previous state is kept and only the failure is
// reported.
func (c *Controller) Dispatch(ev Event) []Effect {
	items, err := c.store.Load()
	if err != nil {
		slog.Error("load catalog", "event", fmt.Sprintf("%T", ev), "err", err)
		return []Effect{notify(LevelError, "Could not load data: %v", err)}
	}

	next, effects := Transition(c.state, items, ev)

	var out []Effect
	for _, eff := range effects {
		switch eff := eff.(type) {
		case SaveEffect:
			if err := c.store.Save(eff.Items); err != nil {
				slog.Error("save catalog", "err", err)
				return []Effect{notify(LevelError, "Could not save data: %v", err)}
			}
			slog.Info("catalog saved", "count", len(eff.Items), "screen", next.Screen.String())
		case ExportEffect:
			out = append(out, c.export(eff.Items))
		default:
			out = append(out, eff)
		}
	}

	if next.Screen != c.state.Screen {
		slog.Debug("screen", "from", c.state.Screen.String(), "to", next.Screen.String())
	}
	c.state = next
	return out
}

func (c *Controller) export(items []inventory.Component) Effect {
	path, err := backup.WriteJSON(c.exportDir, c.now(), items)
	if err != nil {
		slog.Error("export catalog", "dir", c.exportDir, "err", err)
		return notify(LevelError, "Export failed: %v", err)
	}
	slog.Info("catalog exported", "path", path, "count", len(items))
	return notify(LevelSuccess, "Exported %s to %s", inventory.CountLabel(len(items)), path)
}
