package attr

// Request is a full decision request: the Subject, Action, Resource, and
// Environment attribute sets describing one operation to be authorized.
type Request struct {
	Subject     []Attribute
	Action      []Attribute
	Resource    []Attribute
	Environment []Attribute
}

// set returns the attribute slice for a category.
func (r *Request) set(cat Category) []Attribute {
	switch cat {
	case CategorySubject:
		return r.Subject
	case CategoryAction:
		return r.Action
	case CategoryResource:
		return r.Resource
	case CategoryEnvironment:
		return r.Environment
	default:
		return nil
	}
}

// Add appends an attribute to the set named by its category.
func (r *Request) Add(a Attribute) {
	switch a.Category {
	case CategorySubject:
		r.Subject = append(r.Subject, a)
	case CategoryAction:
		r.Action = append(r.Action, a)
	case CategoryResource:
		r.Resource = append(r.Resource, a)
	case CategoryEnvironment:
		r.Environment = append(r.Environment, a)
	}
}

// Attribute returns the value bag for (cat, id) and whether it is present.
// If the same identifier appears more than once in a set, bags are merged in
// declaration order.
func (r *Request) Attribute(cat Category, id string) ([]string, bool) {
	var bag []string
	found := false
	for _, a := range r.set(cat) {
		if a.ID == id {
			bag = append(bag, a.Values...)
			found = true
		}
	}
	return bag, found
}

// Single returns the attribute value for (cat, id) only when it resolves to
// exactly one value. Multi-valued or absent bags report false, mirroring the
// strict single-value lookup the policy composer uses to extract a resource
// identifier.
func (r *Request) Single(cat Category, id string) (string, bool) {
	bag, ok := r.Attribute(cat, id)
	if !ok || len(bag) != 1 {
		return "", false
	}
	return bag[0], true
}
