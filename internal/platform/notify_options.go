// Package platform sends desktop notifications through the host's native
// notification service.
package platform

// AppName identifies the application to notification centres.
const AppName = "alignview"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown with the
	// notification where supported.
	IconPath string
}
