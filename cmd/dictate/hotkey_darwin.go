package main

import "golang.design/x/hotkey"

// kVK_ANSI_Comma; golang.design/x/hotkey names no punctuation keys, so the
// virtual key code is used directly.
const keyComma = hotkey.Key(0x2B)

var modByName = map[string]hotkey.Modifier{
	"alt":     hotkey.ModOption,
	"option":  hotkey.ModOption,
	"cmd":     hotkey.ModCmd,
	"command": hotkey.ModCmd,
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
}

func init() { keyByName["comma"] = keyComma }

// fallbackHotkeys returns the two fixed menu-bar shortcuts: cmd+alt+, for
// settings and cmd+alt+h for history.
func fallbackHotkeys() (settings, history *hotkey.Hotkey) {
	mods := []hotkey.Modifier{hotkey.ModCmd, hotkey.ModOption}
	return hotkey.New(mods, keyComma), hotkey.New(mods, hotkey.KeyH)
}
