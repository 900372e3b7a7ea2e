// Package plugin provides the registry that turns a block plugin id and its
// settings into a runtime plugin instance.
//
// Two halves meet in the Registry. Plugin definitions (admin label, category,
// provider) are declared in HCL manifests and copied in from the config
// model. The Go factories that build instances are registered by compiled
// modules. ValidateRegistry checks that both halves are in sync at startup so
// that a typo in a manifest fails fast instead of rendering a broken block.
package plugin
