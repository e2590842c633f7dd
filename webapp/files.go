package webapp

import (
	"embed"
)

//go:embed views
var viewsFS embed.FS

// GetViewsFS returns the page templates for this package
func GetViewsFS() embed.FS {
	return viewsFS
}
