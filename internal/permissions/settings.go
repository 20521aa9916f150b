package permissions

import (
	"context"
	"log"
)

// SettingsRequester sends the user to the right settings screen for special
// permissions. There is no grant callback from settings; callers re-run
// Manager.Refresh when the app regains foreground focus.
type SettingsRequester struct {
	navigator SettingsNavigator
}

// NewSettingsRequester wraps an OS settings navigator.
func NewSettingsRequester(navigator SettingsNavigator) *SettingsRequester {
	return &SettingsRequester{navigator: navigator}
}

// RequestSpecialPermission opens the settings screen for d. Returns whether a
// navigation happened; the grant outcome is unknowable here. If the specific
// screen fails to open, the generic app-details screen is tried instead, and
// failures are logged rather than surfaced.
func (s *SettingsRequester) RequestSpecialPermission(ctx context.Context, d Descriptor) bool {
	if d.Level != Special {
		return false
	}
	if err := ctx.Err(); err != nil {
		return false
	}

	screen := d.SettingsScreen
	if err := s.navigator.Open(screen); err != nil {
		log.Printf("permissions: open %s settings failed, falling back: %v", screen, err)
		if screen == AppDetailsSettings {
			return false
		}
		if err := s.navigator.Open(AppDetailsSettings); err != nil {
			log.Printf("permissions: open app details settings failed: %v", err)
			return false
		}
	}
	return true
}
