package main

import (
	"github.com/mastercactapus/gpos/dispatch"
	"github.com/mastercactapus/gpos/position"
)

const offsetHelp = "[X=pos] or [X_ADJUST=adjust], same for Y and Z."

// registerCommands declares the host-visible command table.
func registerCommands(d *dispatch.Dispatcher, store *position.Store, m Controller) error {
	cmds := []struct {
		name string
		help string
		fn   dispatch.HandlerFunc
	}{
		{
			name: "SAVE_POSITION",
			help: "Save the given position for later restore. Axes not mentioned keep their saved value. " + offsetHelp,
			fn:   func(cmd *dispatch.Command) error { return savePosition(store, cmd) },
		},
		{
			name: "SAVE_CURRENT_POSITION",
			help: "Save the current commanded position. AXIS= selects which axes (default XYZ).",
			fn:   func(cmd *dispatch.Command) error { return saveCurrentPosition(store, m, cmd) },
		},
		{
			name: "RESTORE_POSITION",
			help: "Move back to the saved position. AXIS= selects which axes (default XYZ), SPEED= the feed rate.",
			fn:   func(cmd *dispatch.Command) error { return restorePosition(store, m, cmd) },
		},
	}
	for _, c := range cmds {
		if err := d.Register(c.name, c.help, c.fn); err != nil {
			return err
		}
	}
	return nil
}

func savePosition(store *position.Store, cmd *dispatch.Command) error {
	var u position.Update
	for _, a := range position.AllAxes() {
		v, ok, err := cmd.Float(a.String())
		if err != nil {
			return err
		}
		if ok {
			val := v
			u.Pos[a] = &val
		}
		v, ok, err = cmd.Float(a.String() + "_ADJUST")
		if err != nil {
			return err
		}
		if ok {
			val := v
			u.Adjust[a] = &val
		}
	}
	_, err := store.Save(u)
	return err
}

func saveCurrentPosition(store *position.Store, m Controller, cmd *dispatch.Command) error {
	axes := position.ParseAxes(cmd.Get("AXIS", "XYZ"))
	store.Capture(axes, func(a position.Axis) float64 {
		return m.Position().Axis(int(a))
	})
	return nil
}

func restorePosition(store *position.Store, m Controller, cmd *dispatch.Command) error {
	axes := position.ParseAxes(cmd.Get("AXIS", "XYZ"))
	speed, _, err := cmd.Int("SPEED")
	if err != nil {
		return err
	}
	return store.Restore(axes, speed, m)
}
