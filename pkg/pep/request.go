package pep

import (
	"sort"

	"mercator-hq/themisto/pkg/attr"
)

// EnforceRequest describes one operation to be authorized through the
// generic enforcement primitive. The facade methods in operations.go build
// these from their per-operation attribute tables; callers with
// out-of-table operations may construct them directly.
type EnforceRequest struct {
	// ActionID is the canonical action identifier of the operation.
	ActionID string

	// API is the API category the operation belongs to.
	API string

	// PID is the target object identifier; empty for repository-scoped
	// operations such as listing.
	PID string

	// Namespace is the pid's namespace prefix.
	Namespace string

	// Resource is the per-operation resource attribute bag.
	Resource attr.Values

	// Context is the caller's request context. Required.
	Context *RequestContext
}

// assemble builds the decision request for req. It is the single
// construction path every operation funnels through: a fixed subject
// derivation, the canonical action attributes plus the correlation id, the
// object resource attributes plus the operation's bag, and any environment
// attributes the context carries.
func assemble(req *EnforceRequest, cid CorrelationID) *attr.Request {
	out := &attr.Request{}

	// The anonymous engine-facing subject attribute is always present; the
	// login id attribute only when the caller authenticated. An empty
	// subject is a representable state, not an error.
	out.Add(attr.NewString(attr.CategorySubject, attr.XACMLSubjectID, ""))
	if req.Context.Subject != "" {
		out.Add(attr.NewString(attr.CategorySubject, attr.SubjectLoginID, req.Context.Subject))
	}

	out.Add(attr.NewString(attr.CategoryAction, attr.XACMLActionID, ""))
	out.Add(attr.NewString(attr.CategoryAction, attr.ActionID, req.ActionID))
	out.Add(attr.NewString(attr.CategoryAction, attr.ActionAPI, req.API))
	out.Add(attr.NewString(attr.CategoryAction, attr.ActionContextID, cid.String()))

	out.Add(attr.NewString(attr.CategoryResource, attr.XACMLResourceID, ""))
	out.Add(attr.NewString(attr.CategoryResource, attr.ObjectPID, req.PID))
	out.Add(attr.NewString(attr.CategoryResource, attr.ObjectNamespace, req.Namespace))
	addValues(out, attr.CategoryResource, req.Resource)

	addValues(out, attr.CategoryEnvironment, req.Context.Environment)

	return out
}

// addValues appends a bag map in stable identifier order.
func addValues(out *attr.Request, cat attr.Category, values attr.Values) {
	if len(values) == 0 {
		return
	}
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		out.Add(attr.NewBag(cat, id, values[id]))
	}
}

// extractNamespace returns the namespace prefix of a pid: for "ns:123" it
// is "ns", for a pid without a colon it is empty.
func extractNamespace(pid string) string {
	for i := 0; i < len(pid); i++ {
		if pid[i] == ':' {
			return pid[:i]
		}
	}
	return ""
}
