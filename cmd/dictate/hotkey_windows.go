package main

import "golang.design/x/hotkey"

var modByName = map[string]hotkey.Modifier{
	"alt":     hotkey.ModAlt,
	"option":  hotkey.ModAlt,
	"cmd":     hotkey.ModWin,
	"command": hotkey.ModWin,
	"win":     hotkey.ModWin,
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
}

// fallbackHotkeys reports no fixed shortcuts: the settings/history
// accelerators belong to platforms with a menu bar.
func fallbackHotkeys() (settings, history *hotkey.Hotkey) { return nil, nil }
