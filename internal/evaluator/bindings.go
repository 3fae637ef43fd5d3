package evaluator

import "sort"

// Bindings is the variable table of one run. There is no declaration step:
// the first assignment or read creates a name.
type Bindings struct {
	store map[string]Value
}

func NewBindings() *Bindings { return &Bindings{store: map[string]Value{}} }

func (b *Bindings) Get(name string) (Value, bool) {
	v, ok := b.store[name]
	return v, ok
}

func (b *Bindings) Set(name string, v Value) { b.store[name] = v }

// Names returns the bound names in ascending order.
func (b *Bindings) Names() []string {
	names := make([]string, 0, len(b.store))
	for k := range b.store {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
