package attr

import "fmt"

// Category identifies which of the four attribute sets an attribute
// belongs to.
type Category int

const (
	CategorySubject Category = iota
	CategoryAction
	CategoryResource
	CategoryEnvironment
)

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategorySubject:
		return "subject"
	case CategoryAction:
		return "action"
	case CategoryResource:
		return "resource"
	case CategoryEnvironment:
		return "environment"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// DatatypeString is the datatype identifier carried by every string-valued
// attribute. It is the only datatype this layer mints itself; resolvers may
// supply others.
const DatatypeString = "http://www.w3.org/2001/XMLSchema#string"

// Attribute is one (category, identifier, datatype, value bag) tuple.
// Values is a bag: order is not significant and duplicates are allowed.
type Attribute struct {
	Category Category
	ID       string
	Datatype string
	Values   []string
}

// String returns a single string for logging.
func (a Attribute) String() string {
	return fmt.Sprintf("%s:%s=%v", a.Category, a.ID, a.Values)
}

// NewString builds a single-valued string attribute.
func NewString(cat Category, id, value string) Attribute {
	return Attribute{
		Category: cat,
		ID:       id,
		Datatype: DatatypeString,
		Values:   []string{value},
	}
}

// NewBag builds a multi-valued string attribute. The slice is copied so the
// attribute does not alias caller-owned storage.
func NewBag(cat Category, id string, values []string) Attribute {
	vs := make([]string, len(values))
	copy(vs, values)
	return Attribute{
		Category: cat,
		ID:       id,
		Datatype: DatatypeString,
		Values:   vs,
	}
}

// Values is a resource attribute bag keyed by attribute identifier, as
// supplied by the per-operation facade methods.
type Values map[string][]string

// Set stores a single value under id, replacing any previous bag.
func (v Values) Set(id, value string) {
	v[id] = []string{value}
}

// Add appends value to the bag stored under id.
func (v Values) Add(id, value string) {
	v[id] = append(v[id], value)
}
