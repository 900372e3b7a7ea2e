// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file parsing, translating `plugin` and
// `block` blocks into the format-agnostic model and converting cty values
// into plain Go values.
package hcl
