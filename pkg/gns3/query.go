package gns3

import "fmt"

// QueryKind selects which key a Query matches on.
type QueryKind int

const (
	queryUnset QueryKind = iota
	// QueryByName matches the entity's name (the SVG document for drawings).
	QueryByName
	// QueryByID matches the server-assigned identifier.
	QueryByID
)

// Query identifies one entity either by name or by ID. The zero Query is
// invalid; build one with ByName or ByID.
type Query struct {
	kind  QueryKind
	value string
}

// ByName returns a Query matching on name.
func ByName(name string) Query {
	return Query{kind: QueryByName, value: name}
}

// ByID returns a Query matching on server identifier.
func ByID(id string) Query {
	return Query{kind: QueryByID, value: id}
}

// Kind returns the key the query matches on.
func (q Query) Kind() QueryKind {
	return q.kind
}

// Value returns the key value.
func (q Query) Value() string {
	return q.value
}

func (q Query) String() string {
	switch q.kind {
	case QueryByName:
		return fmt.Sprintf("name %q", q.value)
	case QueryByID:
		return fmt.Sprintf("id %q", q.value)
	default:
		return "empty query"
	}
}

// Validate returns ErrInvalidArgument unless exactly one key with a non-empty
// value is set.
func (q Query) Validate() error {
	if q.kind != QueryByName && q.kind != QueryByID {
		return ErrInvalidArgument
	}
	if q.value == "" {
		return ErrInvalidArgument
	}
	return nil
}

// Find returns the first item whose field equals key.
func Find[T any](items []T, key string, field func(T) string) (T, bool) {
	for _, item := range items {
		if field(item) == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Resolve applies q to items. When several items share a name the first one
// in items wins.
func Resolve[T Named](items []T, q Query) (T, bool) {
	switch q.kind {
	case QueryByName:
		return Find(items, q.value, func(item T) string { return item.DisplayName() })
	case QueryByID:
		return Find(items, q.value, func(item T) string { return item.ID() })
	}
	var zero T
	return zero, false
}

// checkQuery wraps Query.Validate for an operation.
func checkQuery(op string, q Query, kind string) error {
	if err := q.Validate(); err != nil {
		return newError(op, err, "need to submit either %s name or %s ID", kind, kind)
	}
	return nil
}
