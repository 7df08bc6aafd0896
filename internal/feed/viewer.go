// Package feed holds the request-independent pieces of feed and search
// reads: who is looking (Viewer), which slice is wanted (Page), the response
// envelope, result annotation and the full-text query builder.
package feed

// ViewerKind tags the caller's relationship to the data being read.
type ViewerKind int

const (
	// Anonymous callers never get relationship flags computed.
	Anonymous ViewerKind = iota
	// Self is an authenticated caller reading their own subject.
	Self
	// Other is an authenticated caller reading someone else's data (or an unscoped feed).
	Other
)

func (k ViewerKind) String() string {
	switch k {
	case Self:
		return "self"
	case Other:
		return "other"
	default:
		return "anonymous"
	}
}

// Viewer is resolved once per request and passed to every query.
type Viewer struct {
	kind   ViewerKind
	caller string
}

// ResolveViewer derives the viewer from an optional caller hash and the
// subject of the request. subjectHash is empty for unscoped resources.
func ResolveViewer(callerHash, subjectHash string) Viewer {
	if callerHash == "" {
		return Viewer{kind: Anonymous}
	}
	if subjectHash != "" && callerHash == subjectHash {
		return Viewer{kind: Self, caller: callerHash}
	}
	return Viewer{kind: Other, caller: callerHash}
}

// AnonymousViewer is the viewer of a request without identity.
func AnonymousViewer() Viewer {
	return Viewer{kind: Anonymous}
}

// Kind returns the viewer tag.
func (v Viewer) Kind() ViewerKind { return v.kind }

// CallerHash is empty for anonymous viewers.
func (v Viewer) CallerHash() string { return v.caller }

// IsAnonymous reports whether no caller identity is present.
func (v Viewer) IsAnonymous() bool { return v.kind == Anonymous }

// IsSelf reports whether the caller is the subject of the request.
func (v Viewer) IsSelf() bool { return v.kind == Self }
