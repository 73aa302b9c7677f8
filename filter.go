package scopelog

import "strings"

// FilterFunc adapts a predicate to a Filter stage.
type FilterFunc func(e *Event) bool

func (f FilterFunc) Admit(e *Event) bool {
	if f == nil {
		return true
	}
	return f(e)
}

// Log does nothing; a filter only decides.
func (f FilterFunc) Log(*Event) {}

// MessageFilter inspects ordinary messages only. Scope and interval events
// are always admitted, also when the filter is negated with Not.
type MessageFilter func(e *Event) bool

func (f MessageFilter) Admit(e *Event) bool {
	if f == nil || !e.Type.IsMessage() {
		return true
	}
	return f(e)
}

func (f MessageFilter) Log(*Event) {}

// ByType admits events whose type is one of types.
func ByType(types ...Type) FilterFunc {
	set := make(map[Type]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(e *Event) bool {
		_, ok := set[e.Type]
		return ok
	}
}

// ByCategory admits events from any of the named categories.
func ByCategory(categories ...string) FilterFunc {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return func(e *Event) bool {
		_, ok := set[e.Category]
		return ok
	}
}

// MinType admits ordinary messages at least as severe as lowest.
func MinType(lowest Type) MessageFilter {
	return func(e *Event) bool {
		return e.Type >= lowest
	}
}

// ByMessage admits ordinary messages containing substr.
func ByMessage(substr string) MessageFilter {
	return func(e *Event) bool {
		return strings.Contains(e.Message, substr)
	}
}

// ByScopeLevel admits events nested no deeper than depth.
func ByScopeLevel(depth int) FilterFunc {
	return func(e *Event) bool {
		return e.Level <= depth
	}
}

// ByMetadata admits ordinary messages carrying key.
func ByMetadata(key string) MessageFilter {
	return func(e *Event) bool {
		_, ok := e.Metadata.Get(key)
		return ok
	}
}

// Not inverts f. A MessageFilter stays limited to ordinary messages, so its
// negation still admits scope and interval events.
func Not(f Filter) Filter {
	if mf, ok := f.(MessageFilter); ok {
		return MessageFilter(func(e *Event) bool {
			return !mf.Admit(e)
		})
	}
	return FilterFunc(func(e *Event) bool {
		return !f.Admit(e)
	})
}
