// Package platform delivers desktop notifications through the host's
// notification service.
package platform

// AppName identifies cropshot to notification services.
const AppName = "Cropshot"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image the notification should
	// show if the platform supports it.
	IconPath string
	// TimeoutMillis is how long the notification stays visible; 0 keeps
	// the platform default.
	TimeoutMillis int32
}
