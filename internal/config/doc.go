// Package config defines the format-agnostic configuration model for the
// application (block plugin manifests and block placements) along with the
// Loader interface that fills it from a concrete source.
//
// Concrete loaders, such as the HCL one, live in separate packages.
package config
