// Package ginternals contains the low-level building blocks of the object
// and reference model: object identifiers, reference resolution, and the
// on-disk path layout under .git/.
package ginternals

import "errors"

// Errors returned while working with object identifiers and references.
// Repository-level errors (not-a-repo, bad format version, non-empty
// target) live closer to their call sites, in the root git package's
// errors.go.
var (
	// ErrInvalidOid is returned when a given value isn't a valid Oid
	ErrInvalidOid = errors.New("invalid oid")

	// ErrObjectNotFound is returned when a git object could not be found
	ErrObjectNotFound = errors.New("object not found")

	// ErrRefNotFound is returned when trying to act on a reference that
	// doesn't exist
	ErrRefNotFound = errors.New("reference not found")

	// ErrRefExists is returned when trying to create a reference that
	// already exists
	ErrRefExists = errors.New("reference already exists")

	// ErrRefNameInvalid is returned when the name of a reference is not
	// valid
	ErrRefNameInvalid = errors.New("reference name is not valid")

	// ErrRefInvalid is returned when a reference's content cannot be
	// parsed
	ErrRefInvalid = errors.New("reference is not valid")

	// ErrRefCycle is returned when resolving a symbolic reference would
	// require following more indirections than maxRefResolveDepth allows
	ErrRefCycle = errors.New("reference resolution exceeded maximum depth")

	// ErrUnknownRefType is returned when the type of a reference is
	// unknown
	ErrUnknownRefType = errors.New("unknown reference type")

	// ErrRevisionNotFound is returned by the name resolver when no
	// candidate matches the given name
	ErrRevisionNotFound = errors.New("no such revision")

	// ErrRevisionAmbiguous is returned by the name resolver when more
	// than one candidate matches the given name
	ErrRevisionAmbiguous = errors.New("ambiguous revision")

	// ErrPackedRefInvalid is returned when a line of a packed-refs file
	// cannot be parsed
	ErrPackedRefInvalid = errors.New("packed-refs content is not valid")
)
