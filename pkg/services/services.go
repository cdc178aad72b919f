package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrNotFound reports an id with no record behind it.
var ErrNotFound = errors.New("services: not found")

const defaultShareBaseURL = "https://forms.example.com/f"

// FormPatch carries the mutable parts of a form update. Nil members leave the
// stored record untouched.
type FormPatch struct {
	Title       *string
	Description *string
	Settings    *model.FormSettings
	Fields      *[]model.FieldDefinition
}

// SubmissionFilters narrows a submission search.
type SubmissionFilters struct {
	FormID    *int
	StartDate *time.Time
	EndDate   *time.Time
}

// SubmissionExport is the payload shape of an export request.
type SubmissionExport struct {
	Data         []model.Submission `json:"data"`
	TotalRecords int                `json:"totalRecords"`
}

// ShareLink is the result of publishing a form.
type ShareLink struct {
	ShareID  string `json:"shareId"`
	ShareURL string `json:"shareUrl"`
}

// SubmissionMeta carries the request-scoped context recorded with a
// submission.
type SubmissionMeta struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

// Option configures a Mock service.
type Option func(*Mock)

// WithLatency sets the simulated round-trip delay per call. Zero disables it,
// which tests want.
func WithLatency(d time.Duration) Option {
	return func(m *Mock) {
		m.latency = d
	}
}

// WithShareBaseURL changes the host part of generated share links.
func WithShareBaseURL(base string) Option {
	return func(m *Mock) {
		m.shareBase = strings.TrimRight(base, "/")
	}
}

// WithClock replaces the timestamp source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Mock) {
		m.now = now
	}
}

// Mock is an in-memory stand-in for the remote forms backend. Every call
// pauses for the configured latency so callers exercise the same async
// boundaries a real network service would impose. Replacing it with real
// HTTP calls must not change any consumption contract.
type Mock struct {
	mu          sync.RWMutex
	forms       map[int]model.FormDefinition
	submissions []model.Submission
	shares      map[string]int
	nextFormID  int
	latency     time.Duration
	shareBase   string
	now         func() time.Time
}

// NewMock creates an empty mock backend.
func NewMock(options ...Option) *Mock {
	m := &Mock{
		forms:     make(map[int]model.FormDefinition),
		shares:    make(map[string]int),
		latency:   150 * time.Millisecond,
		shareBase: defaultShareBaseURL,
		now:       time.Now,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// delay simulates the network round trip, honouring cancellation.
func (m *Mock) delay(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ListForms returns every stored form, oldest first.
func (m *Mock) ListForms(ctx context.Context) ([]model.FormDefinition, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	forms := make([]model.FormDefinition, 0, len(m.forms))
	for _, form := range m.forms {
		forms = append(forms, form)
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].ID < forms[j].ID })
	return forms, nil
}

// GetForm returns the form stored under id.
func (m *Mock) GetForm(ctx context.Context, id int) (model.FormDefinition, error) {
	if err := m.delay(ctx); err != nil {
		return model.FormDefinition{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	form, ok := m.forms[id]
	if !ok {
		return model.FormDefinition{}, fmt.Errorf("services: get form %d: %w", id, ErrNotFound)
	}
	return form, nil
}

// CreateForm stores a new form and returns it with its assigned id and
// timestamps.
func (m *Mock) CreateForm(ctx context.Context, def model.FormDefinition) (model.FormDefinition, error) {
	if err := m.delay(ctx); err != nil {
		return model.FormDefinition{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextFormID++
	def.ID = m.nextFormID
	now := m.now().UTC()
	def.CreatedAt = now
	def.UpdatedAt = now
	m.forms[def.ID] = def
	return def, nil
}

// UpdateForm applies a patch to the stored form.
func (m *Mock) UpdateForm(ctx context.Context, id int, patch FormPatch) (model.FormDefinition, error) {
	if err := m.delay(ctx); err != nil {
		return model.FormDefinition{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[id]
	if !ok {
		return model.FormDefinition{}, fmt.Errorf("services: update form %d: %w", id, ErrNotFound)
	}
	if patch.Title != nil {
		form.Title = *patch.Title
	}
	if patch.Description != nil {
		form.Description = *patch.Description
	}
	if patch.Settings != nil {
		form.Settings = *patch.Settings
	}
	if patch.Fields != nil {
		form.Fields = append([]model.FieldDefinition(nil), (*patch.Fields)...)
	}
	form.UpdatedAt = m.now().UTC()
	m.forms[id] = form
	return form, nil
}

// DeleteForm removes a form along with its submissions and share links.
func (m *Mock) DeleteForm(ctx context.Context, id int) error {
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.forms[id]; !ok {
		return fmt.Errorf("services: delete form %d: %w", id, ErrNotFound)
	}
	delete(m.forms, id)

	kept := m.submissions[:0]
	for _, sub := range m.submissions {
		if sub.FormID != id {
			kept = append(kept, sub)
		}
	}
	m.submissions = kept

	for shareID, formID := range m.shares {
		if formID == id {
			delete(m.shares, shareID)
		}
	}
	return nil
}

// ListSubmissions returns every submission, newest first.
func (m *Mock) ListSubmissions(ctx context.Context) ([]model.Submission, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedSubmissions(), nil
}

// SearchSubmissions filters submissions by a free-text term over the form
// title and submitted values, then by the optional filters.
func (m *Mock) SearchSubmissions(ctx context.Context, term string, filters SubmissionFilters) ([]model.Submission, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	var out []model.Submission
	for _, sub := range m.sortedSubmissions() {
		if filters.FormID != nil && sub.FormID != *filters.FormID {
			continue
		}
		if filters.StartDate != nil && sub.SubmittedAt.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && sub.SubmittedAt.After(*filters.EndDate) {
			continue
		}
		if term != "" && !submissionMatches(sub, term) {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

// ExportSubmissions packages submissions for download, optionally scoped to
// one form.
func (m *Mock) ExportSubmissions(ctx context.Context, formID *int) (SubmissionExport, error) {
	if err := m.delay(ctx); err != nil {
		return SubmissionExport{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var data []model.Submission
	for _, sub := range m.sortedSubmissions() {
		if formID != nil && sub.FormID != *formID {
			continue
		}
		data = append(data, sub)
	}
	return SubmissionExport{Data: data, TotalRecords: len(data)}, nil
}

// GenerateShareableLink publishes a form and returns its public URL. The
// form is stored first when it has no id yet.
func (m *Mock) GenerateShareableLink(ctx context.Context, def model.FormDefinition) (ShareLink, error) {
	if err := m.delay(ctx); err != nil {
		return ShareLink{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if def.ID == 0 {
		m.nextFormID++
		def.ID = m.nextFormID
		now := m.now().UTC()
		def.CreatedAt = now
		def.UpdatedAt = now
		m.forms[def.ID] = def
	} else if _, ok := m.forms[def.ID]; !ok {
		m.forms[def.ID] = def
	}

	shareID := xid.New().String()
	m.shares[shareID] = def.ID
	return ShareLink{
		ShareID:  shareID,
		ShareURL: m.shareBase + "/" + shareID,
	}, nil
}

// GetSharedForm resolves a share id to its published form.
func (m *Mock) GetSharedForm(ctx context.Context, shareID string) (model.FormDefinition, error) {
	if err := m.delay(ctx); err != nil {
		return model.FormDefinition{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	formID, ok := m.shares[shareID]
	if !ok {
		return model.FormDefinition{}, fmt.Errorf("services: shared form %q: %w", shareID, ErrNotFound)
	}
	form, ok := m.forms[formID]
	if !ok {
		return model.FormDefinition{}, fmt.Errorf("services: shared form %q: %w", shareID, ErrNotFound)
	}
	return form, nil
}

// RecordSubmission stores an accepted public-viewer submission.
func (m *Mock) RecordSubmission(ctx context.Context, formID int, data map[string]any, meta SubmissionMeta) (model.Submission, error) {
	if err := m.delay(ctx); err != nil {
		return model.Submission{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[formID]
	if !ok {
		return model.Submission{}, fmt.Errorf("services: record submission for form %d: %w", formID, ErrNotFound)
	}

	sub := model.Submission{
		ID:          xid.New().String(),
		FormID:      formID,
		FormTitle:   form.Title,
		Data:        data,
		SubmittedAt: m.now().UTC(),
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		Referrer:    meta.Referrer,
	}
	m.submissions = append(m.submissions, sub)
	return sub, nil
}

func (m *Mock) sortedSubmissions() []model.Submission {
	out := append([]model.Submission(nil), m.submissions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}

func submissionMatches(sub model.Submission, term string) bool {
	if strings.Contains(strings.ToLower(sub.FormTitle), term) {
		return true
	}
	for _, value := range sub.Data {
		if s, ok := value.(string); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}
