package tui

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const skipOption = "(leave blank)"

// Option configures a Viewer.
type Option func(*Viewer)

// WithDriver replaces the terminal driver, primarily for tests.
func WithDriver(driver PromptDriver) Option {
	return func(v *Viewer) {
		v.driver = driver
	}
}

// Viewer walks a form field by field over terminal prompts, re-validating
// each answer before moving on, and delivers the accepted payload through
// the session sink.
type Viewer struct {
	driver PromptDriver
}

// New creates a terminal viewer backed by survey prompts.
func New(options ...Option) (*Viewer, error) {
	v := &Viewer{}
	for _, option := range options {
		option(v)
	}
	if v.driver == nil {
		driver, err := newSurveyDriver()
		if err != nil {
			return nil, fmt.Errorf("tui: create driver: %w", err)
		}
		v.driver = driver
	}
	return v, nil
}

// Run fills the form interactively and submits it. The respondent can
// interrupt at any prompt, which surfaces as ErrAborted with no submission
// side effect.
func (v *Viewer) Run(ctx context.Context, form render.Form, sink render.Sink) (render.SubmitResult, error) {
	session := render.NewSession(form, sink)

	if form.Title != "" {
		if err := v.driver.Info(ctx, form.Title); err != nil {
			return render.SubmitResult{}, err
		}
	}
	if form.Description != "" {
		if err := v.driver.Info(ctx, form.Description); err != nil {
			return render.SubmitResult{}, err
		}
	}

	for _, field := range form.Fields {
		if err := v.askField(ctx, session, field); err != nil {
			return render.SubmitResult{}, err
		}
	}

	result, err := session.Submit(ctx)
	if err != nil {
		var verr *render.ValidationError
		if errors.As(err, &verr) {
			for id, msgs := range verr.Fields {
				_ = v.driver.Info(ctx, fmt.Sprintf("%s: %s", id, strings.Join(msgs, "; ")))
			}
		}
		return render.SubmitResult{}, err
	}

	if result.Message != "" {
		if err := v.driver.Info(ctx, result.Message); err != nil {
			return result, err
		}
	}
	return result, nil
}

// askField prompts until the answer validates or the respondent aborts.
func (v *Viewer) askField(ctx context.Context, session *render.Session, field model.FieldDefinition) error {
	for {
		value, err := v.prompt(ctx, session, field)
		if err != nil {
			return err
		}

		errs := session.SetValue(field.ID, value)
		if len(errs) == 0 {
			return nil
		}
		for _, msg := range errs {
			if err := v.driver.Info(ctx, msg); err != nil {
				return err
			}
		}
	}
}

func (v *Viewer) prompt(ctx context.Context, session *render.Session, field model.FieldDefinition) (any, error) {
	message := promptMessage(field)

	switch field.Type {
	case model.FieldKindTextarea:
		return v.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: currentString(session, field.ID),
			Help:    field.Description,
		})

	case model.FieldKindDropdown:
		options := field.Options
		offset := 0
		if !field.Required {
			options = append([]string{skipOption}, options...)
			offset = 1
		}
		idx, err := v.driver.Select(ctx, SelectConfig{
			Message: message,
			Options: options,
			Help:    field.Description,
		})
		if err != nil {
			return nil, err
		}
		if idx < offset {
			return "", nil
		}
		return options[idx], nil

	case model.FieldKindMultiselect:
		indices, err := v.driver.MultiSelect(ctx, SelectConfig{
			Message: message,
			Options: field.Options,
			Help:    field.Description,
		})
		if err != nil {
			return nil, err
		}
		selected := make([]string, 0, len(indices))
		for _, i := range indices {
			if i >= 0 && i < len(field.Options) {
				selected = append(selected, field.Options[i])
			}
		}
		return selected, nil

	case model.FieldKindFile:
		return v.promptFiles(ctx, field, message)

	default:
		return v.driver.Input(ctx, InputConfig{
			Message: message,
			Default: currentString(session, field.ID),
			Help:    inputHelp(field),
		})
	}
}

// promptFiles reads local paths in place of a browser file picker. An empty
// answer leaves the field blank.
func (v *Viewer) promptFiles(ctx context.Context, field model.FieldDefinition, message string) (any, error) {
	help := field.Description
	if field.Multiple {
		help = strings.TrimSpace(help + " Separate multiple paths with commas.")
	}
	answer, err := v.driver.Input(ctx, InputConfig{
		Message: message + " (file path)",
		Help:    help,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(answer) == "" {
		return nil, nil
	}

	paths := []string{answer}
	if field.Multiple {
		paths = strings.Split(answer, ",")
	}

	files := make([]model.FileInfo, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			if infoErr := v.driver.Info(ctx, fmt.Sprintf("cannot read %s: %v", path, err)); infoErr != nil {
				return nil, infoErr
			}
			continue
		}
		files = append(files, model.FileInfo{
			Name: filepath.Base(path),
			Size: info.Size(),
			MIME: mime.TypeByExtension(filepath.Ext(path)),
		})
	}
	return files, nil
}

func promptMessage(field model.FieldDefinition) string {
	label := field.Label
	if label == "" {
		label = string(field.Type)
	}
	if field.Required {
		return label + " *"
	}
	return label
}

func inputHelp(field model.FieldDefinition) string {
	if field.Description != "" {
		return field.Description
	}
	return field.Placeholder
}

func currentString(session *render.Session, id string) string {
	v, ok := session.Value(id)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
