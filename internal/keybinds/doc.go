/*
Package keybinds provides keyboard shortcut detection and customizable
bindings.

# Overview

Key presses are delivered as KeyEvent values to a Host, which owns two
event targets: the document and the window. An event reaches the
document first and bubbles to the window unless a listener stops
propagation. Bindings subscribe to one of the two targets.

# Matching

Set bindings (Engine.Bind):
  - The pressed set holds one token per active modifier (ctrl, meta,
    shift, alt) plus the lower-cased primary key
  - A lone modifier press never counts as the primary key
  - The pressed set must equal the binding's set exactly; holding an
    extra modifier does not match

Combo bindings (Engine.BindCombo):
  - Ctrl and meta (cmd) fold into a single "ctrl" token
  - The event is rendered as "ctrl+shift+alt+key" (present modifiers
    only) and compared with the lower-cased combo string
  - Always prevent the default and always live on the document

# Lifecycle

Every change to a binding (Rebind, RebindCombo, Retarget, SetEnabled,
Close) removes the previous listener before installing a new one. A
disabled or closed binding holds no subscription, so Target.ListenerCount
returns to zero once every binding is closed. Engine.Close tears down
every binding it created.

# Actions and Configuration

Actions are named (run, copy_output, ...). The Registry maps each action
to its combos and installs them on an Engine. Defaults bind run to
ctrl+' and ctrl+r, since most terminals cannot report ctrl+apostrophe.

User overrides live in keybinds.json (comments allowed):

	{
	  // replaces the defaults for "run" only
	  "bindings": {
	    "run": ["ctrl+'", "f5"],
	    "quit": "ctrl+q"
	  }
	}

# Validation

The validator checks for:
  - Invalid combos (unknown modifier, modifier without key)
  - Unknown action names
  - A combo bound to more than one action
  - Reserved key rebindings (ctrl+c, warning)

# Example Usage

	host := NewHost()
	engine := NewEngine(host)
	defer engine.Close()

	registry, err := LoadOrDefault(path)
	if err != nil {
		return err
	}
	registry.Install(engine, map[Action]Handler{
		ActionRun: func(*KeyEvent) { dispatcher.Submit(ctx, store.State()) },
	})

	ev := ParseKeyString(msg.String())
	if host.Dispatch(&ev) {
		// consumed by a binding
	}
*/
package keybinds
