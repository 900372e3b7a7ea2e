// Package cli parses the blockplace command line into an app.Config.
package cli
