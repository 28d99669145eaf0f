// Package version holds the application version embedded in backups and the
// health endpoint.
package version

// Version is the current application version.
const Version = "0.3.0"
