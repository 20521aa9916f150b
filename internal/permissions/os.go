package permissions

import "context"

// Environment describes the device the process runs on.
type Environment interface {
	// OSVersion returns the platform API level.
	OSVersion() int
}

// Querier answers whether a permission is currently held. Implementations
// route Special permissions through level-specific system queries (overlay
// check, write-settings check, enabled-listener list, enabled-services list).
type Querier interface {
	// IsGranted returns the live grant truth for one descriptor.
	IsGranted(ctx context.Context, d Descriptor) (bool, error)
	// ShouldShowRationale reports whether the OS still allows showing a
	// rationale for a dangerous permission. Only meaningful right after a
	// denial; steady-state queries cannot distinguish denied from
	// permanently denied.
	ShouldShowRationale(ctx context.Context, d Descriptor) bool
}

// DialogLauncher is the pre-registered runtime-dialog capability. Launch is
// asynchronous: the OS eventually calls deliver exactly once with a
// per-identifier granted map.
type DialogLauncher interface {
	Launch(ids []string, deliver func(results map[string]bool))
}

// SettingsScreen identifies a special-permission settings destination.
type SettingsScreen int

const (
	// AppDetailsSettings is the generic per-app settings screen, used as
	// the fallback when no dedicated screen exists.
	AppDetailsSettings SettingsScreen = iota
	OverlaySettings
	WriteSettings
	NotificationListenerSettings
	AccessibilitySettings
)

func (s SettingsScreen) String() string {
	switch s {
	case AppDetailsSettings:
		return "app_details"
	case OverlaySettings:
		return "overlay"
	case WriteSettings:
		return "write_settings"
	case NotificationListenerSettings:
		return "notification_listener"
	case AccessibilitySettings:
		return "accessibility"
	default:
		return "unknown"
	}
}

// SettingsNavigator opens OS settings screens.
type SettingsNavigator interface {
	Open(screen SettingsScreen) error
}
