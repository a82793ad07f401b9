// Package backend contains interfaces and implementations to store and
// retrieve data from the object and reference database.
package backend

import (
	"errors"

	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
)

// Backend represents an object that can store and retrieve objects and
// references from and to the odb. A repository never talks to the
// filesystem directly, it always goes through one of these.
type Backend interface {
	// Close frees the resources held by the backend
	Close() error

	// Init initializes a repository
	Init() error

	// Reference returns a stored reference from its name
	Reference(name string) (*ginternals.Reference, error)
	// WriteReference writes the given reference in the db. If the
	// reference already exists it will be overwritten
	WriteReference(ref *ginternals.Reference) error
	// WriteReferenceSafe writes the given reference in the db.
	// ErrRefExists is returned if the reference already exists
	WriteReferenceSafe(ref *ginternals.Reference) error
	// WalkReferences runs the provided method on all the references
	// stored under refs/, in lexical order of their full name
	WalkReferences(f RefWalkFunc) error

	// Object returns the object that has the given oid
	Object(ginternals.Oid) (*object.Object, error)
	// HasObject returns whether an object exists in the odb
	HasObject(ginternals.Oid) (bool, error)
	// WriteObject adds an object to the odb
	WriteObject(*object.Object) (ginternals.Oid, error)
	// ResolvePrefix returns every object id stored in the odb that starts
	// with the given hex prefix. Used by the name resolver to disambiguate
	// abbreviated object ids.
	ResolvePrefix(prefix string) ([]ginternals.Oid, error)
}

// RefWalkFunc represents a function that will be applied on all references
// found by WalkReferences
type RefWalkFunc = func(ref *ginternals.Reference) error

// WalkStop is a sentinel error used by a RefWalkFunc to stop a walk early
// without it being reported as a failure.
var WalkStop = errors.New("stop walking") //nolint:golint // not a real error, a signal
