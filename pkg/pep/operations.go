package pep

import (
	"context"
	"strconv"

	"mercator-hq/themisto/pkg/attr"
)

// operation pairs an action identifier with its API category. The facade
// methods below are thin: each one names its operation, fills the
// per-operation resource bag, and funnels into the shared enforcement path.
type operation struct {
	actionID string
	api      string
}

var (
	opIngest               = operation{attr.ActionIngest, attr.APIManagement}
	opPurgeObject          = operation{attr.ActionPurgeObject, attr.APIManagement}
	opModifyObject         = operation{attr.ActionModifyObject, attr.APIManagement}
	opGetObjectProfile     = operation{attr.ActionGetObjectProfile, attr.APIAccess}
	opGetObjectHistory     = operation{attr.ActionGetObjectHistory, attr.APIAccess}
	opListObjects          = operation{attr.ActionListObjects, attr.APIAccess}
	opExport               = operation{attr.ActionExport, attr.APIManagement}
	opGetNextPID           = operation{attr.ActionGetNextPID, attr.APIManagement}
	opAddDatastream        = operation{attr.ActionAddDatastream, attr.APIManagement}
	opModifyDatastream     = operation{attr.ActionModifyDatastream, attr.APIManagement}
	opPurgeDatastream      = operation{attr.ActionPurgeDatastream, attr.APIManagement}
	opGetDatastream        = operation{attr.ActionGetDatastream, attr.APIAccess}
	opGetDatastreamHistory = operation{attr.ActionGetDatastreamHistory, attr.APIAccess}
	opListDatastreams      = operation{attr.ActionListDatastreams, attr.APIAccess}
	opReloadPolicies       = operation{attr.ActionReloadPolicies, attr.APIManagement}
)

// DatastreamParams carries the datastream attributes of the add and modify
// operations. Empty fields are omitted from the decision request.
type DatastreamParams struct {
	ID           string
	MimeType     string
	FormatURI    string
	Location     string
	ControlGroup string
	State        string
	Checksum     string
	ChecksumType string
	AltIDs       []string
}

func (p DatastreamParams) bag() attr.Values {
	v := attr.Values{}
	setIf(v, attr.DatastreamID, p.ID)
	setIf(v, attr.DatastreamMimeType, p.MimeType)
	setIf(v, attr.DatastreamFormatURI, p.FormatURI)
	setIf(v, attr.DatastreamLocation, p.Location)
	setIf(v, attr.DatastreamControlGroup, p.ControlGroup)
	setIf(v, attr.DatastreamState, p.State)
	setIf(v, attr.DatastreamChecksum, p.Checksum)
	setIf(v, attr.DatastreamChecksumType, p.ChecksumType)
	for _, id := range p.AltIDs {
		v.Add(attr.DatastreamAltIDs, id)
	}
	return v
}

func setIf(v attr.Values, id, value string) {
	if value != "" {
		v.Set(id, value)
	}
}

// enforceOp is the shared path all facade methods delegate to.
func (g *Gateway) enforceOp(ctx context.Context, rc *RequestContext, op operation, pid string, resource attr.Values) (Outcome, error) {
	return g.Enforce(ctx, &EnforceRequest{
		ActionID:  op.actionID,
		API:       op.api,
		PID:       pid,
		Namespace: extractNamespace(pid),
		Resource:  resource,
		Context:   rc,
	})
}

// EnforceIngest authorizes ingesting a new object.
func (g *Gateway) EnforceIngest(ctx context.Context, rc *RequestContext, pid, format, encoding string) (Outcome, error) {
	v := attr.Values{}
	setIf(v, attr.ObjectFormatURI, format)
	setIf(v, attr.ObjectEncoding, encoding)
	return g.enforceOp(ctx, rc, opIngest, pid, v)
}

// EnforcePurgeObject authorizes permanently removing an object.
func (g *Gateway) EnforcePurgeObject(ctx context.Context, rc *RequestContext, pid string) (Outcome, error) {
	return g.enforceOp(ctx, rc, opPurgeObject, pid, nil)
}

// EnforceModifyObject authorizes changing an object's state or owner.
func (g *Gateway) EnforceModifyObject(ctx context.Context, rc *RequestContext, pid, state, owner string) (Outcome, error) {
	v := attr.Values{}
	setIf(v, attr.ObjectState, state)
	setIf(v, attr.ObjectOwner, owner)
	return g.enforceOp(ctx, rc, opModifyObject, pid, v)
}

// EnforceGetObjectProfile authorizes reading an object's profile, optionally
// as of a historical timestamp.
func (g *Gateway) EnforceGetObjectProfile(ctx context.Context, rc *RequestContext, pid, asOfDateTime string) (Outcome, error) {
	v := attr.Values{}
	setIf(v, attr.ObjectAsOfDateTime, asOfDateTime)
	return g.enforceOp(ctx, rc, opGetObjectProfile, pid, v)
}

// EnforceGetObjectHistory authorizes reading an object's change history.
func (g *Gateway) EnforceGetObjectHistory(ctx context.Context, rc *RequestContext, pid string) (Outcome, error) {
	return g.enforceOp(ctx, rc, opGetObjectHistory, pid, nil)
}

// EnforceListObjects authorizes a repository-wide object listing. The
// operation has no target object, so the pid attributes are empty.
func (g *Gateway) EnforceListObjects(ctx context.Context, rc *RequestContext) (Outcome, error) {
	return g.enforceOp(ctx, rc, opListObjects, "", nil)
}

// EnforceExport authorizes exporting an object in a given format.
func (g *Gateway) EnforceExport(ctx context.Context, rc *RequestContext, pid, format, exportContext, encoding string) (Outcome, error) {
	v := attr.Values{}
	setIf(v, attr.ObjectFormatURI, format)
	setIf(v, attr.ObjectContext, exportContext)
	setIf(v, attr.ObjectEncoding, encoding)
	return g.enforceOp(ctx, rc, opExport, pid, v)
}

// EnforceGetNextPID authorizes reserving count new pids in a namespace.
func (g *Gateway) EnforceGetNextPID(ctx context.Context, rc *RequestContext, namespace string, count int) (Outcome, error) {
	v := attr.Values{}
	v.Set(attr.ObjectNPIDs, strconv.Itoa(count))
	return g.Enforce(ctx, &EnforceRequest{
		ActionID:  opGetNextPID.actionID,
		API:       opGetNextPID.api,
		Namespace: namespace,
		Resource:  v,
		Context:   rc,
	})
}

// EnforceAddDatastream authorizes adding a datastream to an object.
func (g *Gateway) EnforceAddDatastream(ctx context.Context, rc *RequestContext, pid string, ds DatastreamParams) (Outcome, error) {
	return g.enforceOp(ctx, rc, opAddDatastream, pid, ds.bag())
}

// EnforceModifyDatastream authorizes modifying an existing datastream.
func (g *Gateway) EnforceModifyDatastream(ctx context.Context, rc *RequestContext, pid string, ds DatastreamParams) (Outcome, error) {
	return g.enforceOp(ctx, rc, opModifyDatastream, pid, ds.bag())
}

// EnforcePurgeDatastream authorizes purging datastream versions up to
// endTime (all versions when endTime is empty).
func (g *Gateway) EnforcePurgeDatastream(ctx context.Context, rc *RequestContext, pid, dsID, endTime string) (Outcome, error) {
	v := attr.Values{}
	setIf(v, attr.DatastreamID, dsID)
	setIf(v, attr.DatastreamAsOfDateTime, endTime)
	return g.enforceOp(ctx, rc, opPurgeDatastream, pid, v)
}

// EnforceGetDatastream authorizes reading a datastream, optionally as of a
// historical timestamp.
func (g *Gateway) EnforceGetDatastream(ctx context.Context, rc *RequestContext, pid, dsID, asOfDateTime string) (Outcome, error) {
	v := attr.Values{}
	setIf(v, attr.DatastreamID, dsID)
	setIf(v, attr.DatastreamAsOfDateTime, asOfDateTime)
	return g.enforceOp(ctx, rc, opGetDatastream, pid, v)
}

// EnforceGetDatastreamHistory authorizes reading a datastream's version
// history.
func (g *Gateway) EnforceGetDatastreamHistory(ctx context.Context, rc *RequestContext, pid, dsID string) (Outcome, error) {
	v := attr.Values{}
	setIf(v, attr.DatastreamID, dsID)
	return g.enforceOp(ctx, rc, opGetDatastreamHistory, pid, v)
}

// EnforceListDatastreams authorizes listing an object's datastreams.
func (g *Gateway) EnforceListDatastreams(ctx context.Context, rc *RequestContext, pid, asOfDateTime string) (Outcome, error) {
	v := attr.Values{}
	setIf(v, attr.DatastreamAsOfDateTime, asOfDateTime)
	return g.enforceOp(ctx, rc, opListDatastreams, pid, v)
}

// EnforceReloadPolicies authorizes an administrative policy reload. It only
// authorizes; the caller performs the actual Reload after a permit.
func (g *Gateway) EnforceReloadPolicies(ctx context.Context, rc *RequestContext) (Outcome, error) {
	return g.enforceOp(ctx, rc, opReloadPolicies, "", nil)
}
