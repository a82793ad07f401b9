package object

import (
	"fmt"

	"github.com/wyag/git-go/ginternals"
)

// TagParams represents all the data needed to create a Tag object.
// Params starting with Opt are optional.
type TagParams struct {
	// Target is the object the tag points to. Any object kind is
	// accepted; lightweight tags (a plain ref under refs/tags/) don't
	// need a Tag object at all, but an annotated tag always wraps one.
	Target *Object
	Name   string
	Tagger Signature

	Message   string
	OptGPGSig string
}

// Tag represents a tag object
type Tag struct {
	rawObject *Object

	tagger  Signature
	tag     string
	message string
	gpgSig  string

	id     ginternals.Oid
	target ginternals.Oid
	typ    Type
}

// NewTag creates a new annotated Tag object pointing at p.Target
func NewTag(p *TagParams) (*Tag, error) {
	if p.Target == nil {
		return nil, fmt.Errorf("a tag needs a target: %w", ErrObjectInvalid)
	}

	t := &Tag{
		target:  p.Target.ID(),
		typ:     p.Target.Type(),
		tag:     p.Name,
		tagger:  p.Tagger,
		message: p.Message,
		gpgSig:  p.OptGPGSig,
	}
	t.rawObject = t.ToObject()
	return t, nil
}

// NewTagFromObject creates a new Tag from a raw git object. The object's
// payload is parsed as a KVLM with the well-known keys object, type, tag,
// tagger, and gpgsig.
//
// Note:
// - The gpgsig is optional
func NewTagFromObject(o *Object) (*Tag, error) {
	if o.typ != TypeTag {
		return nil, fmt.Errorf("type %s is not a tag: %w", o.typ, ErrObjectInvalid)
	}

	kvlm, err := ParseKVLM(o.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not parse tag: %w", err)
	}

	t := &Tag{
		id:        o.ID(),
		rawObject: o,
		message:   kvlm.Message(),
		gpgSig:    firstOrEmpty(kvlm, "gpgsig"),
	}

	targetHex, ok := kvlm.Get("object")
	if !ok {
		return nil, fmt.Errorf("tag has no target: %w", ErrTagInvalid)
	}
	t.target, err = ginternals.NewOidFromHex(targetHex)
	if err != nil {
		return nil, fmt.Errorf("could not parse target id %q: %w", targetHex, err)
	}

	typStr, ok := kvlm.Get("type")
	if !ok {
		return nil, fmt.Errorf("tag has no type: %w", ErrTagInvalid)
	}
	t.typ, err = NewTypeFromString(typStr)
	if err != nil {
		return nil, fmt.Errorf("invalid object type %s: %w", typStr, err)
	}

	t.tag, _ = kvlm.Get("tag")

	taggerLine, ok := kvlm.Get("tagger")
	if !ok {
		return nil, fmt.Errorf("tag has no tagger: %w", ErrTagInvalid)
	}
	t.tagger, err = NewSignatureFromBytes([]byte(taggerLine))
	if err != nil {
		return nil, fmt.Errorf("could not parse tagger [%s]: %w", taggerLine, err)
	}

	return t, nil
}

// ID returns the SHA of the tag object
func (t *Tag) ID() ginternals.Oid {
	return t.rawObject.ID()
}

// Target returns the ID of the object targeted by the tag
func (t *Tag) Target() ginternals.Oid {
	return t.target
}

// Type returns the type of the targeted object
func (t *Tag) Type() Type {
	return t.typ
}

// Name returns the tag's name
func (t *Tag) Name() string {
	return t.tag
}

// Tagger returns the Signature of the person that created the tag
func (t *Tag) Tagger() Signature {
	return t.tagger
}

// Message returns the tag's message
func (t *Tag) Message() string {
	return t.message
}

// GPGSig returns the GPG signature of the tag, if any
func (t *Tag) GPGSig() string {
	return t.gpgSig
}

// ToObject returns the underlying Object, building the tag's KVLM wire
// form on first call.
func (t *Tag) ToObject() *Object {
	if t.rawObject != nil {
		return t.rawObject
	}

	kvlm := NewKVLM()
	kvlm.Add("object", t.target.String())
	kvlm.Add("type", t.typ.String())
	kvlm.Add("tag", t.tag)
	kvlm.Add("tagger", t.Tagger().String())
	if t.gpgSig != "" {
		kvlm.Add("gpgsig", t.gpgSig)
	}
	kvlm.SetMessage(t.message)

	t.rawObject = New(TypeTag, kvlm.Serialize())
	return t.rawObject
}
