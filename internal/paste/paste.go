// Package paste implements the paste primitive: Paste(text, smart)
// collapses clipboard access and synthetic keystroke injection into a
// single call.
package paste

import (
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-vgo/robotgo"
)

// clipboardBackend abstracts github.com/atotto/clipboard so tests can
// substitute an in-memory clipboard.
type clipboardBackend interface {
	Read() (string, error)
	Write(text string) error
}

type systemClipboard struct{}

func (systemClipboard) Read() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) Write(text string) error { return clipboard.WriteAll(text) }

// keystrokeBackend abstracts github.com/go-vgo/robotgo's synthetic
// keystroke injection. This package drives robotgo.KeyTap with a modifier
// to send a chorded paste shortcut, rather than robotgo.TypeStr, since the
// text should come from the clipboard, not be typed character by
// character.
type keystrokeBackend interface {
	PasteShortcut() error
}

type systemKeystroke struct{}

func (systemKeystroke) PasteShortcut() error {
	if runtime.GOOS == "darwin" {
		return robotgo.KeyTap("v", "cmd")
	}
	return robotgo.KeyTap("v", "ctrl")
}

// Paster implements the paste primitive.
type Paster struct {
	clipboard          clipboardBackend
	keystroke          keystrokeBackend
	isTextFieldFocused func() bool
}

// New returns a Paster wired to the real clipboard and keystroke backends.
func New() *Paster {
	return &Paster{
		clipboard:          systemClipboard{},
		keystroke:          systemKeystroke{},
		isTextFieldFocused: defaultFocusProbe,
	}
}

func newWithBackends(cb clipboardBackend, ks keystrokeBackend, focused func() bool) *Paster {
	return &Paster{clipboard: cb, keystroke: ks, isTextFieldFocused: focused}
}

// Prober adapts the package-level AccessibilityGranted to
// dictation.PermissionProber.
type Prober struct{}

func (Prober) AccessibilityGranted() bool { return AccessibilityGranted() }

// Paste runs a four-step sequence:
//  1. read the current clipboard contents (best-effort; absence isn't fatal),
//  2. if smartPaste, probe whether the focused UI element accepts text,
//  3. if smartPaste and it doesn't: leave text on the clipboard and return,
//  4. otherwise: write text, sleep 50ms, send the platform paste shortcut,
//     sleep 150ms, restore whatever was on the clipboard before.
func (p *Paster) Paste(text string, smartPaste bool) error {
	prev, hadPrev := p.readClipboard()

	if smartPaste && !p.isTextFieldFocused() {
		return p.clipboard.Write(text)
	}

	if err := p.clipboard.Write(text); err != nil {
		return err
	}
	time.Sleep(50 * time.Millisecond)
	if err := p.keystroke.PasteShortcut(); err != nil {
		return err
	}
	time.Sleep(150 * time.Millisecond)

	if hadPrev {
		return p.clipboard.Write(prev)
	}
	return p.clipboard.Write("")
}

func (p *Paster) readClipboard() (string, bool) {
	text, err := p.clipboard.Read()
	if err != nil {
		return "", false
	}
	return text, text != ""
}
