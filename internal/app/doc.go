// Package app wires the block placement system together: it loads plugin
// manifests and placements, registers the compiled block modules, validates
// the plugin registry, saves every placement and renders the per-theme block
// listings.
package app
