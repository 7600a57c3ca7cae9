// Package admins models the admin records mirrored into the Realtime Database
// and the local files that carry them.
//
// An admin record lives at Admins/<uid>, where uid must equal the Firebase
// Authentication UID of the same user. Nothing enforces that; the check-uid
// command exists to help a human verify it.
package admins

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is the value stored under Admins/<uid>
type Record struct {
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	IsAdmin     bool   `json:"isAdmin" yaml:"isAdmin"`
	CreatedAt   int64  `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   int64  `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Stamp selects which server timestamp field a write sets.
type Stamp int

const (
	// StampCreated sets createdAt, used for accounts created by this run.
	StampCreated Stamp = iota
	// StampUpdated sets updatedAt, used when an existing account is claimed.
	StampUpdated
)

// Field returns the record key the stamp is written to.
func (s Stamp) Field() string {
	if s == StampCreated {
		return "createdAt"
	}
	return "updatedAt"
}

// ValidateUID rejects keys that would not address a single child of the
// admins node: the database drops empty path segments and treats "/" as a
// separator, and it refuses . # $ [ ] in keys.
func ValidateUID(uid string) error {
	if uid == "" {
		return fmt.Errorf("uid must not be empty")
	}
	if strings.ContainsAny(uid, "/.#$[]") {
		return fmt.Errorf("invalid uid %q: may not contain / . # $ [ ]", uid)
	}
	return nil
}

// Entry pairs a record with its uid key.
type Entry struct {
	UID    string
	Record Record
}

// Set is an ordered uid -> record mapping. Decoding keeps document order so
// records print in the order they appear in the file.
type Set []Entry

// Get returns the record stored for uid.
func (s Set) Get(uid string) (Record, bool) {
	for _, e := range s {
		if e.UID == uid {
			return e.Record, true
		}
	}
	return Record{}, false
}

// UnmarshalJSON decodes a JSON object keyed by uid.
func (s *Set) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("admins must be an object keyed by uid, got %v", tok)
	}

	var out Set
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		uid, _ := keyTok.(string)

		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("admin %q: %w", uid, err)
		}
		out.put(uid, rec)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}

// MarshalJSON encodes the set as an object, preserving order.
func (s Set) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.UID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Record)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping keyed by uid.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*s = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: admins must be a mapping keyed by uid", node.Line)
	}

	out := make(Set, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		uid := node.Content[i].Value

		var rec Record
		if err := node.Content[i+1].Decode(&rec); err != nil {
			return fmt.Errorf("admin %q: %w", uid, err)
		}
		out.put(uid, rec)
	}

	*s = out
	return nil
}

// put stores rec under uid. A repeated uid keeps its first position and
// takes the later value, the way a JSON object decodes into a map.
func (s *Set) put(uid string, rec Record) {
	for i := range *s {
		if (*s)[i].UID == uid {
			(*s)[i].Record = rec
			return
		}
	}
	*s = append(*s, Entry{UID: uid, Record: rec})
}

// MarshalYAML encodes the set as a mapping, preserving order.
func (s Set) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s {
		val := &yaml.Node{}
		if err := val.Encode(e.Record); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.UID},
			val,
		)
	}
	return node, nil
}
