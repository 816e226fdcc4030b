package attr

// Attribute identifier URNs. The urn:themisto namespace holds identifiers
// minted by this layer; the urn:oasis names are the standard XACML
// identifiers that decision engines expect to find on every request.
const (
	urnBase = "urn:themisto:names:authz:2.0"

	// Standard engine-facing identifiers.
	XACMLSubjectID  = "urn:oasis:names:tc:xacml:1.0:subject:subject-id"
	XACMLActionID   = "urn:oasis:names:tc:xacml:1.0:action:action-id"
	XACMLResourceID = "urn:oasis:names:tc:xacml:1.0:resource:resource-id"

	// Subject attributes.
	SubjectLoginID = urnBase + ":subject:loginId"

	// Action attributes.
	ActionID        = urnBase + ":action:id"
	ActionAPI       = urnBase + ":action:api"
	ActionContextID = urnBase + ":action:contextId"

	// Resource attributes of the repository object.
	ObjectPID          = urnBase + ":resource:object:pid"
	ObjectNamespace    = urnBase + ":resource:object:namespace"
	ObjectState        = urnBase + ":resource:object:state"
	ObjectOwner        = urnBase + ":resource:object:owner"
	ObjectFormatURI    = urnBase + ":resource:object:formatUri"
	ObjectContext      = urnBase + ":resource:object:context"
	ObjectEncoding     = urnBase + ":resource:object:encoding"
	ObjectNPIDs        = urnBase + ":resource:object:nPids"
	ObjectAsOfDateTime = urnBase + ":resource:object:asOfDateTime"

	// Resource attributes of a datastream within the object.
	DatastreamID           = urnBase + ":resource:datastream:id"
	DatastreamMimeType     = urnBase + ":resource:datastream:mimeType"
	DatastreamFormatURI    = urnBase + ":resource:datastream:formatUri"
	DatastreamState        = urnBase + ":resource:datastream:state"
	DatastreamLocation     = urnBase + ":resource:datastream:location"
	DatastreamControlGroup = urnBase + ":resource:datastream:controlGroup"
	DatastreamAltIDs       = urnBase + ":resource:datastream:altIds"
	DatastreamChecksum     = urnBase + ":resource:datastream:checksum"
	DatastreamChecksumType = urnBase + ":resource:datastream:checksumType"
	DatastreamAsOfDateTime = urnBase + ":resource:datastream:asOfDateTime"

	// Environment attributes supplied by the request context.
	EnvClientIP        = urnBase + ":environment:httpRequest:clientIpAddress"
	EnvSecurity        = urnBase + ":environment:httpRequest:security"
	EnvMessageProtocol = urnBase + ":environment:httpRequest:messageProtocol"
	EnvCurrentDateTime = urnBase + ":environment:currentDateTime"
)

// Action identifier URNs, one per repository operation exposed by the
// enforcement facade.
const (
	actionBase = urnBase + ":action:id-"

	ActionIngest               = actionBase + "ingest"
	ActionPurgeObject          = actionBase + "purgeObject"
	ActionModifyObject         = actionBase + "modifyObject"
	ActionGetObjectProfile     = actionBase + "getObjectProfile"
	ActionGetObjectHistory     = actionBase + "getObjectHistory"
	ActionListObjects          = actionBase + "listObjects"
	ActionExport               = actionBase + "export"
	ActionGetNextPID           = actionBase + "getNextPid"
	ActionAddDatastream        = actionBase + "addDatastream"
	ActionModifyDatastream     = actionBase + "modifyDatastream"
	ActionPurgeDatastream      = actionBase + "purgeDatastream"
	ActionGetDatastream        = actionBase + "getDatastream"
	ActionGetDatastreamHistory = actionBase + "getDatastreamHistory"
	ActionListDatastreams      = actionBase + "listDatastreams"
	ActionReloadPolicies       = actionBase + "reloadPolicies"
)

// API category URNs. Management operations mutate repository state; access
// operations only read it.
const (
	APIManagement = urnBase + ":action:api-m"
	APIAccess     = urnBase + ":action:api-a"
)
