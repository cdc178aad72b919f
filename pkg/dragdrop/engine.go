package dragdrop

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/collection"
	"github.com/goliatone/go-formbuilder/pkg/factory"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// State enumerates the engine's two phases.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Op tells the caller which mutation a commit performed.
type Op string

const (
	OpMove   Op = "move"
	OpInsert Op = "insert"
)

// Result describes a committed drop.
type Result struct {
	Op      Op
	Index   int
	FieldID string
	// Source is the origin index for OpMove, -1 for OpInsert.
	Source int
}

// Point is a live pointer position, used for the floating drop indicator
// during touch drags.
type Point struct {
	X float64
	Y float64
}

// payload is the wire shape a reorder drag carries. A palette drag carries a
// bare type tag instead.
type payload struct {
	FieldID     string `json:"fieldId,omitempty"`
	SourceIndex *int   `json:"sourceIndex,omitempty"`
	FieldType   string `json:"fieldType,omitempty"`
}

const defaultRowHeight = 80

// Option customises the engine.
type Option func(*Engine)

// WithRowHeight sets the approximate field-row height used to translate a
// vertical offset into a candidate index.
func WithRowHeight(px float64) Option {
	return func(e *Engine) {
		if px > 0 {
			e.rowHeight = px
		}
	}
}

// Engine translates drag gestures over the canvas into collection mutations.
// It is a two-phase protocol independent of the input transport: BeginDrag
// opens a gesture, UpdateCandidate/UpdateTouch refine the insertion point,
// and Commit or Cancel close it. The engine always returns to idle, so a
// cancelled gesture never leaves a partial mutation behind.
type Engine struct {
	fields  *collection.Collection
	factory *factory.Factory

	rowHeight float64

	state        State
	drag         payload
	candidate    int
	hasCandidate bool
	pointer      Point
	hasPointer   bool
}

// New constructs an engine over the authoring collection and field factory.
func New(fields *collection.Collection, fac *factory.Factory, options ...Option) *Engine {
	e := &Engine{
		fields:    fields,
		factory:   fac,
		rowHeight: defaultRowHeight,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// State reports the current phase.
func (e *Engine) State() State {
	return e.state
}

// Candidate returns the current insertion marker index. ok is false when no
// drag move has computed one yet.
func (e *Engine) Candidate() (int, bool) {
	return e.candidate, e.hasCandidate
}

// Pointer returns the last touch position, for the floating indicator.
func (e *Engine) Pointer() (Point, bool) {
	return e.pointer, e.hasPointer
}

// BeginDrag opens a gesture from a raw drag payload. A JSON object with a
// fieldId and sourceIndex means an existing field is being reordered;
// anything else is treated as a palette drag carrying a field-type tag. That
// fallback is deliberate: a malformed reorder payload degrades to a
// new-field drop instead of failing the gesture.
func (e *Engine) BeginDrag(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("dragdrop: empty drag payload")
	}

	e.reset()

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err == nil && p.FieldID != "" && p.SourceIndex != nil {
		e.drag = p
	} else if err == nil && p.FieldType != "" {
		e.drag = payload{FieldType: p.FieldType}
	} else {
		e.drag = payload{FieldType: raw}
	}

	e.state = StateDragging
	return nil
}

// UpdateCandidate maps a vertical offset within the canvas to the insertion
// index: floor(offset / rowHeight) clamped to [0, len]. Calls outside an
// active gesture are ignored.
func (e *Engine) UpdateCandidate(offsetY float64) {
	if e.state != StateDragging {
		return
	}
	idx := int(math.Floor(offsetY / e.rowHeight))
	if idx < 0 {
		idx = 0
	}
	if n := e.fields.Len(); idx > n {
		idx = n
	}
	e.candidate = idx
	e.hasCandidate = true
}

// UpdateTouch records the live pointer position and recomputes the candidate
// from the canvas-relative Y offset, mirroring UpdateCandidate for touch
// moves.
func (e *Engine) UpdateTouch(x, y float64) {
	if e.state != StateDragging {
		return
	}
	e.pointer = Point{X: x, Y: y}
	e.hasPointer = true
	e.UpdateCandidate(y)
}

// Commit closes the gesture and applies exactly one mutation: a Move for a
// reorder payload, or a factory-create plus Insert for a type-tag payload.
// Without a computed candidate (a touch-end with no move) the drop lands at
// the end of the list. The engine is idle afterwards whether or not the
// mutation succeeded.
func (e *Engine) Commit() (Result, error) {
	if e.state != StateDragging {
		return Result{}, fmt.Errorf("dragdrop: commit outside an active drag")
	}

	target := e.fields.Len()
	if e.hasCandidate {
		target = e.candidate
	}
	drag := e.drag
	e.reset()

	if drag.FieldID != "" && drag.SourceIndex != nil {
		source := *drag.SourceIndex
		if err := e.fields.Move(source, target); err != nil {
			return Result{}, err
		}
		return Result{Op: OpMove, Index: target, FieldID: drag.FieldID, Source: source}, nil
	}

	field, err := e.factory.NewField(model.FieldKind(drag.FieldType))
	if err != nil {
		return Result{}, err
	}
	if err := e.fields.Insert(field, target); err != nil {
		return Result{}, err
	}
	return Result{Op: OpInsert, Index: target, FieldID: field.ID, Source: -1}, nil
}

// Cancel discards the gesture: drag-leave, escape, or a touch cancel.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.drag = payload{}
	e.candidate = 0
	e.hasCandidate = false
	e.pointer = Point{}
	e.hasPointer = false
}

// ReorderPayload serialises the drag payload for an existing field so input
// adapters and tests speak the same wire shape the engine parses.
func ReorderPayload(fieldID string, sourceIndex int) string {
	raw, _ := json.Marshal(payload{FieldID: fieldID, SourceIndex: &sourceIndex})
	return string(raw)
}

// TypePayload serialises a palette drag payload.
func TypePayload(kind model.FieldKind) string {
	raw, _ := json.Marshal(payload{FieldType: string(kind)})
	return string(raw)
}
