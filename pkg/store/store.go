package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Namespaced keys, kept compatible with the browser storage layout.
const (
	formsKey = "formbuilder.forms"
	themeKey = "formbuilder.theme"
)

// ErrNotFound reports a form id with no saved snapshot.
var ErrNotFound = errors.New("store: form not found")

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the timestamp source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store persists form snapshots and viewer preferences over a KV backend.
// All saved forms live under a single namespaced key; ids are small
// monotonic integers assigned on first save.
type Store struct {
	kv  KV
	now func() time.Time
}

// New creates a Store over the given KV backend.
func New(kv KV, options ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, option := range options {
		option(s)
	}
	return s
}

type formsDocument struct {
	NextID int                    `json:"nextId"`
	Forms  []model.FormDefinition `json:"forms"`
}

// SaveForm writes a snapshot. A zero id assigns the next free id and stamps
// CreatedAt; a known id overwrites that snapshot and bumps UpdatedAt. The
// returned form carries the assigned id and timestamps.
func (s *Store) SaveForm(ctx context.Context, form model.FormDefinition) (model.FormDefinition, error) {
	doc, err := s.loadDocument(ctx)
	if err != nil {
		return model.FormDefinition{}, err
	}

	now := s.now().UTC()
	if form.ID == 0 {
		doc.NextID++
		form.ID = doc.NextID
		form.CreatedAt = now
		form.UpdatedAt = now
		doc.Forms = append(doc.Forms, form)
		return form, s.saveDocument(ctx, doc)
	}

	for i, existing := range doc.Forms {
		if existing.ID == form.ID {
			form.CreatedAt = existing.CreatedAt
			form.UpdatedAt = now
			doc.Forms[i] = form
			return form, s.saveDocument(ctx, doc)
		}
	}
	return model.FormDefinition{}, fmt.Errorf("store: save form %d: %w", form.ID, ErrNotFound)
}

// LoadForm returns the snapshot saved under id.
func (s *Store) LoadForm(ctx context.Context, id int) (model.FormDefinition, error) {
	doc, err := s.loadDocument(ctx)
	if err != nil {
		return model.FormDefinition{}, err
	}
	for _, form := range doc.Forms {
		if form.ID == id {
			return form, nil
		}
	}
	return model.FormDefinition{}, fmt.Errorf("store: load form %d: %w", id, ErrNotFound)
}

// ListForms returns every snapshot, most recently updated first.
func (s *Store) ListForms(ctx context.Context) ([]model.FormDefinition, error) {
	doc, err := s.loadDocument(ctx)
	if err != nil {
		return nil, err
	}
	forms := append([]model.FormDefinition(nil), doc.Forms...)
	sort.SliceStable(forms, func(i, j int) bool {
		return forms[i].UpdatedAt.After(forms[j].UpdatedAt)
	})
	return forms, nil
}

// RenameForm changes a snapshot's title without touching its fields.
func (s *Store) RenameForm(ctx context.Context, id int, title string) (model.FormDefinition, error) {
	doc, err := s.loadDocument(ctx)
	if err != nil {
		return model.FormDefinition{}, err
	}
	for i, form := range doc.Forms {
		if form.ID == id {
			form.Title = title
			form.UpdatedAt = s.now().UTC()
			doc.Forms[i] = form
			return form, s.saveDocument(ctx, doc)
		}
	}
	return model.FormDefinition{}, fmt.Errorf("store: rename form %d: %w", id, ErrNotFound)
}

// DeleteForm removes a snapshot. Deleting an unknown id is an error so the
// caller can tell a stale panel apart from a successful delete.
func (s *Store) DeleteForm(ctx context.Context, id int) error {
	doc, err := s.loadDocument(ctx)
	if err != nil {
		return err
	}
	for i, form := range doc.Forms {
		if form.ID == id {
			doc.Forms = append(doc.Forms[:i], doc.Forms[i+1:]...)
			return s.saveDocument(ctx, doc)
		}
	}
	return fmt.Errorf("store: delete form %d: %w", id, ErrNotFound)
}

// ThemePreference returns the saved viewer theme, defaulting to light.
func (s *Store) ThemePreference(ctx context.Context) (string, error) {
	value, ok, err := s.kv.Get(ctx, themeKey)
	if err != nil {
		return "", fmt.Errorf("store: read theme: %w", err)
	}
	if !ok || value == "" {
		return "light", nil
	}
	return value, nil
}

// SetThemePreference saves the viewer theme.
func (s *Store) SetThemePreference(ctx context.Context, theme string) error {
	if err := s.kv.Set(ctx, themeKey, theme); err != nil {
		return fmt.Errorf("store: save theme: %w", err)
	}
	return nil
}

func (s *Store) loadDocument(ctx context.Context) (formsDocument, error) {
	raw, ok, err := s.kv.Get(ctx, formsKey)
	if err != nil {
		return formsDocument{}, fmt.Errorf("store: read forms: %w", err)
	}
	if !ok || raw == "" {
		return formsDocument{}, nil
	}
	var doc formsDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return formsDocument{}, fmt.Errorf("store: decode forms: %w", err)
	}
	return doc, nil
}

func (s *Store) saveDocument(ctx context.Context, doc formsDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode forms: %w", err)
	}
	if err := s.kv.Set(ctx, formsKey, string(raw)); err != nil {
		return fmt.Errorf("store: write forms: %w", err)
	}
	return nil
}
