package main

import "golang.design/x/hotkey"

var modByName = map[string]hotkey.Modifier{
	"alt":     hotkey.Mod1,
	"option":  hotkey.Mod1,
	"cmd":     hotkey.Mod4,
	"command": hotkey.Mod4,
	"super":   hotkey.Mod4,
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
}

// fallbackHotkeys reports no fixed shortcuts: the settings/history
// accelerators belong to platforms with a menu bar.
func fallbackHotkeys() (settings, history *hotkey.Hotkey) { return nil, nil }
