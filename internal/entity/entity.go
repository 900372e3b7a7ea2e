// Package entity provides the shared capabilities of configuration entities:
// identity, enabled status, named field storage, dependency tracking and the
// default cache-tag behaviour on save and delete.
//
// Concrete entity types hold a *Base and call into it explicitly.
package entity

import (
	"context"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/specialistvlad/blockplace/internal/cachetag"
	"github.com/specialistvlad/blockplace/internal/ctxlog"
)

// Well-known field names managed by Base.
const (
	FieldUUID     = "uuid"
	FieldStatus   = "status"
	FieldLangcode = "langcode"

	DefaultLangcode = "en"
)

// Base is the generic persisted-entity capability set.
type Base struct {
	entityType   string
	id           string
	fields       map[string]any
	dependencies map[string][]string
	bus          cachetag.Bus
}

// New creates a Base for an entity of the given type. fields seeds the field
// storage; a uuid is generated and status defaults to enabled when absent.
func New(entityType, id string, bus cachetag.Bus, fields map[string]any) *Base {
	if bus == nil {
		bus = cachetag.NopBus{}
	}
	b := &Base{
		entityType:   entityType,
		id:           id,
		fields:       maps.Clone(fields),
		dependencies: make(map[string][]string),
		bus:          bus,
	}
	if b.fields == nil {
		b.fields = make(map[string]any)
	}
	if s, _ := b.fields[FieldUUID].(string); s == "" {
		b.fields[FieldUUID] = uuid.NewString()
	}
	if _, ok := b.fields[FieldStatus].(bool); !ok {
		b.fields[FieldStatus] = true
	}
	if s, _ := b.fields[FieldLangcode].(string); s == "" {
		b.fields[FieldLangcode] = DefaultLangcode
	}
	return b
}

// ID returns the machine name of the entity.
func (b *Base) ID() string { return b.id }

// EntityType returns the entity type id, e.g. "block".
func (b *Base) EntityType() string { return b.entityType }

// UUID returns the entity's universally unique id.
func (b *Base) UUID() string {
	s, _ := b.fields[FieldUUID].(string)
	return s
}

// Status reports whether the entity is enabled.
func (b *Base) Status() bool {
	s, _ := b.fields[FieldStatus].(bool)
	return s
}

// SetStatus enables or disables the entity.
func (b *Base) SetStatus(enabled bool) { b.fields[FieldStatus] = enabled }

// Get returns a stored field, or nil.
func (b *Base) Get(name string) any { return b.fields[name] }

// GetString returns a stored field as a string, or "" when it is absent or
// of another type.
func (b *Base) GetString(name string) string {
	s, _ := b.fields[name].(string)
	return s
}

// Set stores a field.
func (b *Base) Set(name string, value any) { b.fields[name] = value }

// AddDependency records that the entity depends on name of the given kind
// (module, theme, entity). The set stays sorted; empty names are ignored.
func (b *Base) AddDependency(kind, name string) {
	if name == "" {
		return
	}
	names := b.dependencies[kind]
	i, found := slices.BinarySearch(names, name)
	if found {
		return
	}
	b.dependencies[kind] = slices.Insert(names, i, name)
}

// ResetDependencies empties the dependency set.
func (b *Base) ResetDependencies() {
	clear(b.dependencies)
}

// CalculateDependencies is the base calculation: it starts from an empty set.
// Entity types add their own dependencies afterwards.
func (b *Base) CalculateDependencies() map[string][]string {
	b.ResetDependencies()
	return b.Dependencies()
}

// Dependencies returns a copy of the dependency set.
func (b *Base) Dependencies() map[string][]string {
	out := make(map[string][]string, len(b.dependencies))
	for kind, names := range b.dependencies {
		out[kind] = slices.Clone(names)
	}
	return out
}

// CacheTags returns the default tags of the entity: "<type>:<id>".
func (b *Base) CacheTags() []string {
	return []string{cachetag.Tag(b.entityType, b.id)}
}

// ListCacheTags returns the tag covering every entity of this type.
func (b *Base) ListCacheTags() []string {
	return []string{b.entityType + "_list"}
}

// PostSave performs the default invalidation after a save: listings of this
// entity type are always stale; output already tagged with the entity (tags)
// is stale only when an existing entity was updated.
func (b *Base) PostSave(ctx context.Context, update bool, tags []string) {
	invalidate := b.ListCacheTags()
	if update {
		invalidate = cachetag.Merge(invalidate, tags)
	}
	ctxlog.FromContext(ctx).Debug("Entity saved.", "entity_type", b.entityType, "id", b.id, "update", update)
	b.bus.Invalidate(ctx, invalidate...)
}

// Invalidate sends tags to the entity's cache tag bus.
func (b *Base) Invalidate(ctx context.Context, tags []string) {
	b.bus.Invalidate(ctx, tags...)
}

// PostDelete invalidates the entity's tags and the list tags.
func (b *Base) PostDelete(ctx context.Context, tags []string) {
	ctxlog.FromContext(ctx).Debug("Entity deleted.", "entity_type", b.entityType, "id", b.id)
	b.bus.Invalidate(ctx, cachetag.Merge(b.ListCacheTags(), tags)...)
}
