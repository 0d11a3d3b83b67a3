//go:build !darwin

package paste

// AccessibilityGranted is always true on platforms with no accessibility
// permission gate to check.
func AccessibilityGranted() bool { return true }

func defaultFocusProbe() bool { return true }
