package permissions

// ProtectionLevel determines how a permission is acquired.
type ProtectionLevel int

const (
	// Normal permissions are granted automatically at install time.
	Normal ProtectionLevel = iota
	// Dangerous permissions require a runtime dialog request.
	Dangerous
	// Special permissions require the user to visit a settings screen.
	Special
	// Signature permissions are unavailable to third-party apps.
	Signature
)

// AnyLevel matches every protection level in filter arguments.
const AnyLevel ProtectionLevel = -1

func (p ProtectionLevel) String() string {
	switch p {
	case Normal:
		return "normal"
	case Dangerous:
		return "dangerous"
	case Special:
		return "special"
	case Signature:
		return "signature"
	default:
		return "unknown"
	}
}

// FeatureGroup is a product-defined bucket of related permissions.
type FeatureGroup int

const (
	CoreAssistant FeatureGroup = iota
	VoiceAudio
	CameraMedia
	MessagesContacts
	SystemIntegration
	AppIntegration
)

type featureGroupInfo struct {
	displayName string
	description string
	priority    int
}

var featureGroups = map[FeatureGroup]featureGroupInfo{
	CoreAssistant:     {"Core Assistant", "Essential permissions for basic assistant functionality", 1},
	VoiceAudio:        {"Voice & Audio", "Voice commands and audio interaction", 2},
	CameraMedia:       {"Camera & Media", "Visual assistance and media access", 3},
	MessagesContacts:  {"Messages & Contacts", "SMS and contact management", 4},
	SystemIntegration: {"System Integration", "Deep system access and automation", 5},
	AppIntegration:    {"App Integration", "Third-party app connections", 6},
}

// DisplayName returns the human-readable group name.
func (g FeatureGroup) DisplayName() string { return featureGroups[g].displayName }

// Description returns the group's description.
func (g FeatureGroup) Description() string { return featureGroups[g].description }

// Priority returns the display priority. Lower sorts first.
func (g FeatureGroup) Priority() int { return featureGroups[g].priority }

// AllFeatureGroups returns every group in priority order.
func AllFeatureGroups() []FeatureGroup {
	return []FeatureGroup{
		CoreAssistant, VoiceAudio, CameraMedia,
		MessagesContacts, SystemIntegration, AppIntegration,
	}
}

// Descriptor declares a single permission the assistant needs. Descriptors are
// constructed once at startup and never mutated.
type Descriptor struct {
	// ID is the platform permission string, e.g. "android.permission.CAMERA".
	ID string `json:"id"`
	// Level decides the acquisition protocol.
	Level ProtectionLevel `json:"protectionLevel"`
	// MinOSVersion is the lowest OS API level where the permission exists.
	MinOSVersion int `json:"minOsVersion"`
	// Group is the owning feature group.
	Group FeatureGroup `json:"featureGroup"`

	DisplayName string `json:"displayName"`
	Description string `json:"description"`

	// SettingsScreen names the settings destination for Special permissions.
	// Zero value means the generic app-details screen.
	SettingsScreen SettingsScreen `json:"-"`
}

// OS API levels referenced by the catalog.
const (
	osVersionM        = 23 // runtime permissions, overlay/write-settings gates
	osVersionR        = 30 // package visibility
	osVersionTiramisu = 33 // notification posting opt-in
)

// Catalog is the fixed set of permissions used by the assistant. The order
// matches the original product definition; sorting for display goes through
// SortDescriptors.
var Catalog = []Descriptor{
	{
		ID:          "android.permission.RECORD_AUDIO",
		Level:       Dangerous,
		Group:       VoiceAudio,
		DisplayName: "Microphone",
		Description: "Record audio for voice commands and conversations",
	},
	{
		ID:          "android.permission.CAMERA",
		Level:       Dangerous,
		Group:       CameraMedia,
		DisplayName: "Camera",
		Description: "Access camera for visual assistance and scanning",
	},
	{
		ID:           "android.permission.POST_NOTIFICATIONS",
		Level:        Dangerous,
		MinOSVersion: osVersionTiramisu,
		Group:        CoreAssistant,
		DisplayName:  "Post Notifications",
		Description:  "Send notifications and alerts",
	},
	{
		ID:          "android.permission.READ_SMS",
		Level:       Dangerous,
		Group:       MessagesContacts,
		DisplayName: "Read SMS",
		Description: "Read text messages for assistance",
	},
	{
		ID:          "android.permission.SEND_SMS",
		Level:       Dangerous,
		Group:       MessagesContacts,
		DisplayName: "Send SMS",
		Description: "Send text messages on your behalf",
	},
	{
		ID:          "android.permission.READ_CONTACTS",
		Level:       Dangerous,
		Group:       MessagesContacts,
		DisplayName: "Read Contacts",
		Description: "Access your contacts for smart assistance",
	},
	{
		ID:          "android.permission.WRITE_CONTACTS",
		Level:       Dangerous,
		Group:       MessagesContacts,
		DisplayName: "Write Contacts",
		Description: "Create and modify contacts",
	},
	{
		ID:          "android.permission.READ_PHONE_STATE",
		Level:       Dangerous,
		Group:       MessagesContacts,
		DisplayName: "Phone State",
		Description: "Access phone status and identity",
	},
	{
		ID:             "android.permission.SYSTEM_ALERT_WINDOW",
		Level:          Special,
		Group:          CoreAssistant,
		DisplayName:    "Display Over Apps",
		Description:    "Show overlay UI for quick assistant access",
		SettingsScreen: OverlaySettings,
	},
	{
		ID:             "android.permission.WRITE_SETTINGS",
		Level:          Special,
		Group:          SystemIntegration,
		DisplayName:    "Modify System Settings",
		Description:    "Adjust system settings for automation",
		SettingsScreen: WriteSettings,
	},
	{
		ID:             "android.permission.BIND_NOTIFICATION_LISTENER_SERVICE",
		Level:          Special,
		Group:          CoreAssistant,
		DisplayName:    "Notification Access",
		Description:    "Read and interact with all notifications",
		SettingsScreen: NotificationListenerSettings,
	},
	{
		ID:             "android.permission.BIND_ACCESSIBILITY_SERVICE",
		Level:          Special,
		Group:          CoreAssistant,
		DisplayName:    "Accessibility Service",
		Description:    "System-wide assistance and automation",
		SettingsScreen: AccessibilitySettings,
	},
	{
		ID:           "android.permission.QUERY_ALL_PACKAGES",
		Level:        Special,
		MinOSVersion: osVersionR,
		Group:        SystemIntegration,
		DisplayName:  "Query All Packages",
		Description:  "See all installed apps for smart integration",
	},
	{
		ID:          "com.ticktick.task.permission.READ_TASKS",
		Level:       Normal,
		Group:       AppIntegration,
		DisplayName: "TickTick Tasks",
		Description: "Read tasks from TickTick for display and management",
	},
}

// ApplicableTo reports whether the descriptor exists on the given OS version.
func (d Descriptor) ApplicableTo(osVersion int) bool {
	return osVersion >= d.MinOSVersion
}

// CatalogByGroup returns applicable descriptors bucketed by feature group.
func CatalogByGroup(osVersion int) map[FeatureGroup][]Descriptor {
	byGroup := make(map[FeatureGroup][]Descriptor)
	for _, d := range Catalog {
		if d.ApplicableTo(osVersion) {
			byGroup[d.Group] = append(byGroup[d.Group], d)
		}
	}
	return byGroup
}
