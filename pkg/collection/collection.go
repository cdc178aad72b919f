package collection

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrNotFound reports an update or delete that targeted a field id not in
// the collection.
var ErrNotFound = errors.New("collection: field not found")

// Collection is the ordered working copy of a form's fields during an
// authoring session. Insertion order is display order. One authoring actor
// mutates it from a single event stream, so there is no locking; every
// mutation runs to completion before the next one starts.
type Collection struct {
	fields   []model.FieldDefinition
	selected string
}

// New builds a collection seeded with the given fields, cloned so the caller
// keeps no aliases into the working copy.
func New(fields ...model.FieldDefinition) *Collection {
	c := &Collection{}
	for _, f := range fields {
		c.fields = append(c.fields, f.Clone())
	}
	return c
}

// Len reports the number of fields.
func (c *Collection) Len() int {
	return len(c.fields)
}

// Fields returns a cloned snapshot in display order.
func (c *Collection) Fields() []model.FieldDefinition {
	out := make([]model.FieldDefinition, len(c.fields))
	for i, f := range c.fields {
		out[i] = f.Clone()
	}
	return out
}

// Find returns the field with the given id.
func (c *Collection) Find(id string) (model.FieldDefinition, bool) {
	for _, f := range c.fields {
		if f.ID == id {
			return f.Clone(), true
		}
	}
	return model.FieldDefinition{}, false
}

// IndexOf returns the position of a field id, or -1.
func (c *Collection) IndexOf(id string) int {
	for i, f := range c.fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Insert places a field at the given index, clamped to [0, Len]. The newly
// inserted field becomes the selected field. Inserting an id that already
// exists is rejected so the id-uniqueness invariant holds.
func (c *Collection) Insert(field model.FieldDefinition, at int) error {
	if field.ID == "" {
		return fmt.Errorf("collection: insert requires a field id")
	}
	if c.IndexOf(field.ID) >= 0 {
		return fmt.Errorf("collection: duplicate field id %q", field.ID)
	}

	if at < 0 {
		at = 0
	}
	if at > len(c.fields) {
		at = len(c.fields)
	}

	c.fields = append(c.fields, model.FieldDefinition{})
	copy(c.fields[at+1:], c.fields[at:])
	c.fields[at] = field.Clone()
	c.selected = field.ID
	return nil
}

// Append places a field at the end of the sequence.
func (c *Collection) Append(field model.FieldDefinition) error {
	return c.Insert(field, len(c.fields))
}

// Update merges a patch into the field with the given id.
func (c *Collection) Update(id string, patch model.FieldPatch) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	patch.Apply(&c.fields[idx])
	return nil
}

// Delete removes the field with the given id. If it was selected, the
// selection clears.
func (c *Collection) Delete(id string) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	c.fields = append(c.fields[:idx], c.fields[idx+1:]...)
	if c.selected == id {
		c.selected = ""
	}
	return nil
}

// Move removes the element at source and re-inserts it at target, where
// target is interpreted against the post-removal sequence (splice
// semantics): on [A,B,C,D], Move(0,2) yields [B,C,A,D]. Equal indices are a
// no-op. Out-of-range indices are an error; the caller computed them from
// the same sequence, so a bad index is a bug, not input to clamp.
func (c *Collection) Move(source, target int) error {
	if source < 0 || source >= len(c.fields) {
		return fmt.Errorf("collection: move source %d out of range [0,%d)", source, len(c.fields))
	}
	if source == target {
		return nil
	}

	field := c.fields[source]
	rest := append(c.fields[:source], c.fields[source+1:]...)

	if target < 0 {
		target = 0
	}
	if target > len(rest) {
		target = len(rest)
	}

	rest = append(rest, model.FieldDefinition{})
	copy(rest[target+1:], rest[target:])
	rest[target] = field
	c.fields = rest
	return nil
}

// Select marks a field as the one whose properties the editor panel shows.
// An unknown id clears the selection.
func (c *Collection) Select(id string) {
	if c.IndexOf(id) < 0 {
		c.selected = ""
		return
	}
	c.selected = id
}

// Selected returns the currently selected field, if any.
func (c *Collection) Selected() (model.FieldDefinition, bool) {
	if c.selected == "" {
		return model.FieldDefinition{}, false
	}
	return c.Find(c.selected)
}

// Replace swaps the entire working copy, e.g. after loading a snapshot. The
// selection clears.
func (c *Collection) Replace(fields []model.FieldDefinition) {
	c.fields = c.fields[:0]
	for _, f := range fields {
		c.fields = append(c.fields, f.Clone())
	}
	c.selected = ""
}
