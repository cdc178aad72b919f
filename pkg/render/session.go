package render

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// RedirectDelay is the fixed pause before a post-submit redirect fires.
const RedirectDelay = 3 * time.Second

// Sink receives the payload of an accepted submission: field id → value.
// The store-backed mock services and the HTTP boundary both implement it.
type Sink interface {
	Submit(ctx context.Context, payload map[string]any) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, payload map[string]any) error

func (f SinkFunc) Submit(ctx context.Context, payload map[string]any) error {
	return f(ctx, payload)
}

// ValidationError aggregates per-field messages for a rejected submit. The
// submission side effect did not happen; correcting the inputs and
// resubmitting fully recovers.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("render: validation failed for %d field(s)", len(e.Fields))
}

// SubmitResult reports an accepted submission.
type SubmitResult struct {
	Message       string
	RedirectURL   string
	RedirectAfter time.Duration
}

// Session binds a form to live values and validation state. The preview and
// the public viewer run the same session logic; only the sink differs. All
// methods are synchronous and single-actor, like the collection they mirror.
type Session struct {
	form   Form
	sink   Sink
	values map[string]any
	errors map[string][]string
}

// NewSession starts a session over a form. A nil sink makes Submit validate
// and then discard, which is what the authoring preview wants.
func NewSession(form Form, sink Sink) *Session {
	return &Session{
		form:   form,
		sink:   sink,
		values: make(map[string]any),
		errors: make(map[string][]string),
	}
}

// Form returns the bound form.
func (s *Session) Form() Form {
	return s.form
}

// SetValue records a field change and re-validates it, returning the
// field's current errors. For file fields a failing file rejects the whole
// change: errors are set and the previous value stays. Partial multi-file
// acceptance is deliberately not supported.
func (s *Session) SetValue(id string, value any) []string {
	field, ok := s.findField(id)
	if !ok {
		return nil
	}

	errs := s.validateField(field, value)

	if field.Type == model.FieldKindFile && len(errs) > 0 {
		s.errors[id] = errs
		return errs
	}

	s.values[id] = value
	if len(errs) > 0 {
		s.errors[id] = errs
	} else {
		delete(s.errors, id)
	}
	return errs
}

// Value returns the current value for a field id.
func (s *Session) Value(id string) (any, bool) {
	v, ok := s.values[id]
	return v, ok
}

// FieldErrors returns the current errors for a field id.
func (s *Session) FieldErrors(id string) []string {
	return append([]string(nil), s.errors[id]...)
}

// Errors returns a copy of the full error map.
func (s *Session) Errors() map[string][]string {
	out := make(map[string][]string, len(s.errors))
	for id, errs := range s.errors {
		out[id] = append([]string(nil), errs...)
	}
	return out
}

// Options assembles the RenderOptions for the current state.
func (s *Session) Options(mode Mode) RenderOptions {
	values := make(map[string]any, len(s.values))
	for id, v := range s.values {
		values[id] = v
	}
	return RenderOptions{
		Mode:   mode,
		Values: values,
		Errors: s.Errors(),
	}
}

// Submit validates every field against its current value. Any error rejects
// the whole submit with a *ValidationError and performs no side effect;
// otherwise the payload goes to the sink and the result carries the success
// message plus the optional redirect.
func (s *Session) Submit(ctx context.Context) (SubmitResult, error) {
	failed := make(map[string][]string)
	for _, field := range s.form.Fields {
		errs := s.validateField(field, s.values[field.ID])
		if len(errs) > 0 {
			failed[field.ID] = errs
		}
	}
	if len(failed) > 0 {
		s.errors = failed
		return SubmitResult{}, &ValidationError{Fields: failed}
	}

	if s.sink != nil {
		payload := make(map[string]any, len(s.values))
		for id, v := range s.values {
			payload[id] = v
		}
		if err := s.sink.Submit(ctx, payload); err != nil {
			return SubmitResult{}, fmt.Errorf("render: deliver submission: %w", err)
		}
	}

	result := SubmitResult{Message: s.form.Settings.SuccessMessage}
	if s.form.Settings.RedirectAfterSubmission && s.form.Settings.RedirectURL != "" {
		result.RedirectURL = s.form.Settings.RedirectURL
		result.RedirectAfter = RedirectDelay
	}
	return result, nil
}

func (s *Session) validateField(field model.FieldDefinition, value any) []string {
	if !s.form.Settings.EnableValidation {
		return nil
	}
	if s.form.Settings.RequireAllFields {
		field.Required = true
	}
	return validation.Validate(field, value)
}

func (s *Session) findField(id string) (model.FieldDefinition, bool) {
	for _, field := range s.form.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return model.FieldDefinition{}, false
}
