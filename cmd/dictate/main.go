package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/mainthread"

	"github.com/joho/godotenv"

	"github.com/trevorstenson/dictate/internal/asr"
	"github.com/trevorstenson/dictate/internal/audioio"
	"github.com/trevorstenson/dictate/internal/config"
	"github.com/trevorstenson/dictate/internal/dictation"
	"github.com/trevorstenson/dictate/internal/events"
	"github.com/trevorstenson/dictate/internal/history"
	"github.com/trevorstenson/dictate/internal/logging"
	"github.com/trevorstenson/dictate/internal/modelmanager"
	"github.com/trevorstenson/dictate/internal/mt"
	"github.com/trevorstenson/dictate/internal/paste"
	"github.com/trevorstenson/dictate/internal/vocabulary"
)

// modelLoadDeadline bounds the initial, synchronous model loads at startup.
// Unlike Controller's own asrModelLoadWait (which guards a mid-session,
// language-driven ASR model swap), this runs once before the hotkey is armed.
const modelLoadDeadline = 60 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: no .env file found, using system environment variables")
	}

	logger := logging.StdLogger{L: log.New(os.Stdout, "", log.LstdFlags)}
	cfg := config.Load()
	bus := events.NewBus()

	capture, err := audioio.New()
	if err != nil {
		log.Fatalf("dictate: opening capture device: %v", err)
	}

	asrWorker := asr.NewWorker()
	mtWorker := mt.NewWorker()

	if err := loadInitialASRModel(asrWorker, cfg.SelectedModel, logger); err != nil {
		log.Fatalf("dictate: loading ASR model %q: %v", cfg.SelectedModel, err)
	}
	asrWorker.SetLanguage(cfg.Language)

	if cfg.TranslationEnabled {
		if err := loadInitialMTModel(mtWorker, cfg.TranslationModel, logger); err != nil {
			logger.Printf("dictate: loading translation model %q: %v (translation stays off)", cfg.TranslationModel, err)
			cfg.TranslationEnabled = false
		} else {
			mtWorker.SetLanguages(cfg.Language, cfg.TranslationTargetLang)
		}
	}

	deps := dictation.Deps{
		Capture:    capture,
		Asr:        asrWorker,
		Mt:         mtWorker,
		Paste:      paste.New(),
		Perms:      paste.Prober{},
		Vocab:      vocabulary.Provider{},
		History:    history.Store{},
		AsrModels:  modelmanager.Resolver{Kind: modelmanager.ASR},
		MtModels:   modelmanager.Resolver{Kind: modelmanager.MT},
		Bus:        bus,
		Log:        logger,
		SampleRate: audioio.TargetSampleRate,
	}
	controller := dictation.NewController(deps)

	controller.SetSelectedModel(cfg.SelectedModel)
	controller.SetLanguage(cfg.Language)
	controller.SetSmartPaste(cfg.SmartPaste)
	controller.SetVocabEnabled(cfg.VocabEnabled)
	controller.SetTranslationTarget(cfg.TranslationTargetLang)
	controller.SetTranslationEnabled(cfg.TranslationEnabled)

	go logStateChanges(bus, logger)

	fmt.Printf("dictate: hotkey=%s model=%s language=%s translation=%v\n",
		cfg.Hotkey, cfg.SelectedModel, cfg.Language, cfg.TranslationEnabled)
	fmt.Println("Press the hotkey to start and stop dictation. Press Ctrl+C to exit.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	// Hotkey registration must happen on the OS main thread (required by
	// the platform event-tap APIs golang.design/x/hotkey wraps on darwin),
	// so the whole run loop lives inside mainthread.Init rather than being
	// kicked off and left to a bare goroutine.
	mainthread.Init(func() {
		runHotkeys(cfg.Hotkey, controller, logger, sig)
		controller.Shutdown()
		fmt.Println("\nShutting down...")
	})
}

func loadInitialASRModel(w *asr.Worker, name string, logger logging.Logger) error {
	resolver := modelmanager.Resolver{Kind: modelmanager.ASR}
	path, err := resolver.Ensure(name, func(p float64) {
		logger.Printf("dictate: downloading ASR model %s: %.0f%%", name, p*100)
	})
	if err != nil {
		return err
	}
	w.LoadModel(path)
	return waitModelLoaded(w.FinalChan(), modelLoadDeadline)
}

func loadInitialMTModel(w *mt.Worker, name string, logger logging.Logger) error {
	resolver := modelmanager.Resolver{Kind: modelmanager.MT}
	path, err := resolver.Ensure(name, func(p float64) {
		logger.Printf("dictate: downloading translation model %s: %.0f%%", name, p*100)
	})
	if err != nil {
		return err
	}
	w.LoadModel(path, os.Getenv("ONNXRUNTIME_LIB_PATH"))
	select {
	case resp := <-w.FinalChan():
		return resp.Err
	case <-time.After(modelLoadDeadline):
		return fmt.Errorf("model load timed out after %s", modelLoadDeadline)
	}
}

func waitModelLoaded(ch <-chan asr.FinalResponse, timeout time.Duration) error {
	select {
	case resp := <-ch:
		return resp.Err
	case <-time.After(timeout):
		return fmt.Errorf("model load timed out after %s", timeout)
	}
}

func logStateChanges(bus *events.Bus, logger logging.Logger) {
	ch := bus.Subscribe()
	defer bus.Unsubscribe(ch)
	for evt := range ch {
		if evt.Type != events.DictationState {
			continue
		}
		if s, ok := evt.Data.(dictation.State); ok {
			logger.Printf("dictate: state -> %s", s.Kind)
		}
	}
}

// previewKeys holds the Enter/Escape interception armed while the
// controller sits in a preview state. Registering them as global hotkeys
// suppresses delivery to the focused application; unregistering on leaving
// the preview state hands the keys back.
type previewKeys struct {
	enter, escape  *hotkey.Hotkey
	enterCh, escCh <-chan hotkey.Event
}

func (p *previewKeys) arm() {
	if p.enter != nil || p.escape != nil {
		return
	}
	enter := hotkey.New(nil, hotkey.KeyReturn)
	if err := enter.Register(); err == nil {
		p.enter, p.enterCh = enter, enter.Keydown()
	}
	escape := hotkey.New(nil, hotkey.KeyEscape)
	if err := escape.Register(); err == nil {
		p.escape, p.escCh = escape, escape.Keydown()
	}
}

func (p *previewKeys) disarm() {
	if p.enter != nil {
		p.enter.Unregister()
		p.enter, p.enterCh = nil, nil
	}
	if p.escape != nil {
		p.escape.Unregister()
		p.escape, p.escCh = nil, nil
	}
}

// runHotkeys registers the primary toggle hotkey plus two fixed fallback
// hotkeys (settings, history), and blocks until sig fires. Settings/history
// have no window to raise in this engine-only binary, so their hotkeys
// just log that they fired; wiring them to an actual UI is outside this
// module's boundary.
func runHotkeys(toggleSpec string, controller *dictation.Controller, logger logging.Logger, sig <-chan os.Signal) {
	toggle, err := newHotkey(toggleSpec)
	if err != nil {
		log.Fatalf("dictate: parsing configured hotkey %q: %v", toggleSpec, err)
	}
	if err := toggle.Register(); err != nil {
		log.Fatalf("dictate: registering hotkey %q: %v", toggleSpec, err)
	}
	defer toggle.Unregister()

	// A nil hotkey (platform without the fixed shortcuts) leaves its channel
	// nil, which simply never fires in the select below.
	var settingsCh, historyCh <-chan hotkey.Event
	settings, historyKey := fallbackHotkeys()
	if settings != nil {
		if err := settings.Register(); err == nil {
			defer settings.Unregister()
			settingsCh = settings.Keydown()
		}
	}
	if historyKey != nil {
		if err := historyKey.Register(); err == nil {
			defer historyKey.Unregister()
			historyCh = historyKey.Keydown()
		}
	}

	// The controller flags when Enter/Escape interception should be armed;
	// this loop polls the flag and flips the registrations on its edges.
	var preview previewKeys
	defer preview.disarm()
	previewPoll := time.NewTicker(50 * time.Millisecond)
	defer previewPoll.Stop()

	for {
		select {
		case <-toggle.Keydown():
			controller.Hotkey()
		case <-previewPoll.C:
			if controller.PreviewKeysActive() {
				preview.arm()
			} else {
				preview.disarm()
			}
		case <-preview.enterCh:
			switch controller.State().Kind {
			case dictation.CorrectionPreview:
				controller.AcceptCorrections()
			case dictation.TranslationPreview:
				controller.AcceptTranslation()
			}
		case <-preview.escCh:
			switch controller.State().Kind {
			case dictation.CorrectionPreview:
				controller.UndoCorrections()
			case dictation.TranslationPreview:
				controller.RejectTranslation()
			}
		case <-settingsCh:
			logger.Println("dictate: settings hotkey pressed (no settings UI in this module)")
		case <-historyCh:
			logger.Println("dictate: history hotkey pressed (no history UI in this module)")
		case <-sig:
			return
		}
	}
}

// newHotkey parses a "mod+mod+key" spec like config.json's "hotkey" field,
// e.g. "alt+space" or "cmd+shift+d".
func newHotkey(spec string) (*hotkey.Hotkey, error) {
	parts := strings.Split(spec, "+")
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty hotkey spec")
	}
	keyPart := strings.ToLower(parts[len(parts)-1])
	key, ok := keyByName[keyPart]
	if !ok {
		return nil, fmt.Errorf("unrecognized key %q", keyPart)
	}

	var mods []hotkey.Modifier
	for _, m := range parts[:len(parts)-1] {
		mod, ok := modByName[strings.ToLower(m)]
		if !ok {
			return nil, fmt.Errorf("unrecognized modifier %q", m)
		}
		mods = append(mods, mod)
	}
	return hotkey.New(mods, key), nil
}

// keyByName covers the keys nameable from config.json's "hotkey" field.
// modByName and any platform-specific extra keys live in the per-platform
// hotkey_*.go files.
var keyByName = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"a":      hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
}
