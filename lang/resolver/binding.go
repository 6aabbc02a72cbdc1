package resolver

// A block is one node of the lexical environment, a linked list from the
// innermost block out to the cell body. Blocks with fn set are function
// scopes, the hoisting targets for var and function declarations.
type block struct {
	parent *block
	fn     bool

	// bindings is lazily allocated, most blocks declare nothing.
	bindings map[string]bool
}

func (b *block) bind(name string) {
	if b.bindings == nil {
		b.bindings = make(map[string]bool)
	}
	b.bindings[name] = true
}

func (b *block) declared(name string) bool {
	return b.bindings[name]
}
