package object

import (
	"bytes"
	"errors"
)

// ErrKVLMInvalid is returned when a byte stream doesn't follow the
// key-value-list-with-message grammar used by commits and tags.
var ErrKVLMInvalid = errors.New("invalid kvlm")

// kvlmField is a single key/value pair in a KVLM, in the order it was
// either parsed or inserted.
type kvlmField struct {
	key   string
	value string
}

// KVLM (Key-Value List with Message) is the ordered, possibly
// multi-valued, text format shared by commit and tag objects:
//
//	tree 6071c08bcb4757d8c89a30d9755d2466cef8c1de
//	parent 5b0bd96b3797f8d6d7c02d4e70bc68be1f117ea3
//	author A U Thor <author@example.com> 1527025023 +0200
//	committer A U Thor <author@example.com> 1527025044 +0200
//
//	message goes here, until the end of the object
//
// Keys may repeat (e.g. "parent" on a merge commit); KVLM preserves
// insertion order for both distinct keys and repeated values of the same
// key, which is required for the serialize(parse(b)) == b round-trip.
type KVLM struct {
	fields  []kvlmField
	message string
}

// NewKVLM returns an empty KVLM ready to be filled with Add.
func NewKVLM() *KVLM {
	return &KVLM{}
}

// Add appends a value for key, preserving insertion order. Calling Add
// more than once with the same key accumulates a multi-valued field
// (e.g. "parent").
func (k *KVLM) Add(key, value string) {
	k.fields = append(k.fields, kvlmField{key: key, value: value})
}

// Get returns the first value stored under key.
func (k *KVLM) Get(key string) (string, bool) {
	for _, f := range k.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return "", false
}

// GetAll returns every value stored under key, in insertion order.
func (k *KVLM) GetAll(key string) []string {
	var out []string
	for _, f := range k.fields {
		if f.key == key {
			out = append(out, f.value)
		}
	}
	return out
}

// Message returns the free-form trailing message.
func (k *KVLM) Message() string {
	return k.message
}

// SetMessage sets the free-form trailing message.
func (k *KVLM) SetMessage(msg string) {
	k.message = msg
}

// ParseKVLM parses a byte stream following the KVLM grammar:
//
//	KVLM    := Field* "\n" Message
//	Field   := Key " " Value "\n"
//	Key     := 1*(any byte except SP, LF)
//	Value   := any bytes; embedded newlines are escaped as "\n "
//	Message := any bytes, including LF, until end of input
//
// Parsing is done with an explicit cursor rather than recursion, so a
// pathologically large commit or tag doesn't exhaust the stack.
func ParseKVLM(data []byte) (*KVLM, error) {
	k := NewKVLM()
	cursor := 0
	for {
		if cursor >= len(data) {
			return nil, ErrKVLMInvalid
		}

		// A blank line (the cursor sits directly on a LF) ends the field
		// list; everything after it is the message.
		if data[cursor] == '\n' {
			k.message = string(data[cursor+1:])
			return k, nil
		}

		spaceIdx := bytes.IndexByte(data[cursor:], ' ')
		nlIdx := bytes.IndexByte(data[cursor:], '\n')
		if spaceIdx == -1 || (nlIdx != -1 && nlIdx < spaceIdx) {
			return nil, ErrKVLMInvalid
		}
		key := string(data[cursor : cursor+spaceIdx])
		cursor += spaceIdx + 1

		// The value runs until a LF that isn't followed by a SP (a
		// continuation line). Scan forward line by line.
		valueStart := cursor
		end := cursor
		for {
			lf := bytes.IndexByte(data[end:], '\n')
			if lf == -1 {
				return nil, ErrKVLMInvalid
			}
			end += lf
			if end+1 < len(data) && data[end+1] == ' ' {
				// continuation: keep scanning past this escaped newline
				end += 2
				continue
			}
			break
		}
		raw := data[valueStart:end]
		value := string(bytes.ReplaceAll(raw, []byte("\n "), []byte("\n")))
		k.fields = append(k.fields, kvlmField{key: key, value: value})
		cursor = end + 1
	}
}

// Serialize emits the fields in insertion order followed by the
// message, producing bytes for which ParseKVLM(Serialize()) round-trips
// to an equal KVLM.
func (k *KVLM) Serialize() []byte {
	buf := new(bytes.Buffer)
	for _, f := range k.fields {
		buf.WriteString(f.key)
		buf.WriteByte(' ')
		buf.WriteString(escapeKVLMValue(f.value))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.WriteString(k.message)
	return buf.Bytes()
}

func escapeKVLMValue(v string) string {
	return string(bytes.ReplaceAll([]byte(v), []byte("\n"), []byte("\n ")))
}
