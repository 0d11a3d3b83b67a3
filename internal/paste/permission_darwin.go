//go:build darwin

package paste

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>
*/
import "C"

// AccessibilityGranted probes macOS's accessibility permission, required
// for synthetic keystroke injection. AXIsProcessTrusted is the standard,
// non-prompting check; the prompting variant is deliberately avoided here
// since prompting the user is a UI-layer decision, not this package's.
func AccessibilityGranted() bool {
	return C.AXIsProcessTrusted() != 0
}

func defaultFocusProbe() bool {
	// A real implementation would walk the focused application's
	// accessibility tree (AXFocusedUIElement) for kAXTextFieldRole/
	// kAXTextAreaRole. Without that, degrade gracefully and treat the
	// focused element as text-accepting.
	return true
}
