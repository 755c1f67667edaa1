package schema

// Definition describes a named payload schema: how to validate an untyped
// payload and how to describe its structure to clients.
type Definition struct {
	// Validate checks an untyped payload against the schema. Unknown fields
	// are ignored; a nil error means the payload is acceptable.
	Validate func(payload map[string]any) error

	// JSONSchema returns the JSON-Schema description of the payload.
	JSONSchema func() map[string]any
}

// Registry maps schema names to definitions. It is populated once at startup
// and read-only afterwards, so no locking is needed.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a definition under the given name, replacing any previous one.
func (r *Registry) Register(name string, def Definition) {
	r.defs[name] = def
}

// Get looks up a definition by name. Safe on a nil registry.
func (r *Registry) Get(name string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.defs[name]
	return def, ok
}

// Describe returns the JSON-Schema description of every registered
// definition, keyed by name. Safe on a nil registry, in which case the
// result is empty.
func (r *Registry) Describe() map[string]map[string]any {
	out := make(map[string]map[string]any)
	if r == nil {
		return out
	}
	for name, def := range r.defs {
		if def.JSONSchema == nil {
			continue
		}
		out[name] = def.JSONSchema()
	}
	return out
}
