//go:build !windows

package overlay

// applyNativeOpacity is a no-op; the background alpha carries the translucency.
func (overlay *Window) applyNativeOpacity(alpha uint8) {}
