package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/conscroll/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionSurfaceNext  Action = "surface_next"
	ActionSurfacePrev  Action = "surface_prev"
	ActionSurfaceNew   Action = "surface_new"
	ActionSurfaceClose Action = "surface_close"

	ActionCopy Action = "copy"
	ActionQuit Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the application. Every other key
// press is forwarded to the active surface's PTY, so all chords here
// use the alt modifier to stay out of the shell's way.
type KeyMap struct {
	SurfaceNext  key.Binding
	SurfacePrev  key.Binding
	SurfaceNew   key.Binding
	SurfaceClose key.Binding

	Copy key.Binding
	Quit key.Binding
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	return KeyMap{
		SurfaceNext: bindingFromDef(cfg, bindingDef{
			action: ActionSurfaceNext,
			keys:   []string{"alt+t"},
			desc:   "next surface",
		}),
		SurfacePrev: bindingFromDef(cfg, bindingDef{
			action: ActionSurfacePrev,
			keys:   []string{"alt+T"},
			desc:   "previous surface",
		}),
		SurfaceNew: bindingFromDef(cfg, bindingDef{
			action: ActionSurfaceNew,
			keys:   []string{"alt+n"},
			desc:   "new surface",
		}),
		SurfaceClose: bindingFromDef(cfg, bindingDef{
			action: ActionSurfaceClose,
			keys:   []string{"alt+x"},
			desc:   "close surface",
		}),

		Copy: bindingFromDef(cfg, bindingDef{
			action: ActionCopy,
			keys:   []string{"alt+c"},
			desc:   "copy visible lines",
		}),
		Quit: bindingFromDef(cfg, bindingDef{
			action: ActionQuit,
			keys:   []string{"alt+q"},
			desc:   "quit",
		}),
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}
