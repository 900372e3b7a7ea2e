// Package placement defines the block placement record: the configuration
// of one block plugin placed in one region of one theme.
//
// A Record stores the region, weight, plugin id and plugin settings, builds
// its plugin instance on first use, and knows how it affects caching. A
// placement may show up on any page rendered in its theme, so its cache tags
// always include the theme tag, and a newly created placement invalidates
// them explicitly on save.
package placement
