package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func newTestMock(t *testing.T, options ...Option) *Mock {
	t.Helper()
	options = append([]Option{WithLatency(0)}, options...)
	return NewMock(options...)
}

func createForm(t *testing.T, m *Mock, title string) model.FormDefinition {
	t.Helper()
	form, err := m.CreateForm(context.Background(), model.FormDefinition{
		Title:    title,
		Settings: model.DefaultSettings(),
		Fields: []model.FieldDefinition{
			{ID: "name", Type: model.FieldKindText, Label: "Name"},
		},
	})
	require.NoError(t, err)
	return form
}

func TestFormLifecycle(t *testing.T) {
	ctx := context.Background()
	m := newTestMock(t)

	created := createForm(t, m, "Signup")
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := m.GetForm(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Signup", got.Title)

	title := "Signup v2"
	updated, err := m.UpdateForm(ctx, created.ID, FormPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Signup v2", updated.Title)
	assert.Equal(t, created.Fields, updated.Fields)

	forms, err := m.ListForms(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 1)

	require.NoError(t, m.DeleteForm(ctx, created.ID))
	_, err = m.GetForm(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFormUnknownID(t *testing.T) {
	m := newTestMock(t)
	_, err := m.GetForm(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFormDropsSubmissionsAndShares(t *testing.T) {
	ctx := context.Background()
	m := newTestMock(t)
	form := createForm(t, m, "Doomed")

	link, err := m.GenerateShareableLink(ctx, form)
	require.NoError(t, err)
	_, err = m.RecordSubmission(ctx, form.ID, map[string]any{"name": "Ana"}, SubmissionMeta{})
	require.NoError(t, err)

	require.NoError(t, m.DeleteForm(ctx, form.ID))

	subs, err := m.ListSubmissions(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)

	_, err = m.GetSharedForm(ctx, link.ShareID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShareableLinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestMock(t, WithShareBaseURL("https://example.test/f/"))

	form := createForm(t, m, "Published")
	link, err := m.GenerateShareableLink(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/f/"+link.ShareID, link.ShareURL)

	shared, err := m.GetSharedForm(ctx, link.ShareID)
	require.NoError(t, err)
	assert.Equal(t, form.ID, shared.ID)

	_, err = m.GetSharedForm(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShareableLinkStoresUnsavedForm(t *testing.T) {
	ctx := context.Background()
	m := newTestMock(t)

	link, err := m.GenerateShareableLink(ctx, model.FormDefinition{
		Title:    "Unsaved",
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)

	shared, err := m.GetSharedForm(ctx, link.ShareID)
	require.NoError(t, err)
	assert.NotZero(t, shared.ID)
	assert.Equal(t, "Unsaved", shared.Title)
}

func TestSearchSubmissions(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := base
	m := newTestMock(t, WithClock(func() time.Time { return clock }))

	first := createForm(t, m, "Onboarding")
	second := createForm(t, m, "Churn survey")

	_, err := m.RecordSubmission(ctx, first.ID, map[string]any{"name": "Ana Souza"}, SubmissionMeta{})
	require.NoError(t, err)
	clock = base.Add(time.Hour)
	_, err = m.RecordSubmission(ctx, second.ID, map[string]any{"name": "Bruno Lima"}, SubmissionMeta{})
	require.NoError(t, err)

	// free-text term over values
	got, err := m.SearchSubmissions(ctx, "ana", SubmissionFilters{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, first.ID, got[0].FormID)

	// free-text term over form titles
	got, err = m.SearchSubmissions(ctx, "churn", SubmissionFilters{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].FormID)

	// form filter
	got, err = m.SearchSubmissions(ctx, "", SubmissionFilters{FormID: &first.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)

	// date window excludes the earlier record
	start := base.Add(30 * time.Minute)
	got, err = m.SearchSubmissions(ctx, "", SubmissionFilters{StartDate: &start})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].FormID)
}

func TestExportSubmissions(t *testing.T) {
	ctx := context.Background()
	m := newTestMock(t)

	first := createForm(t, m, "A")
	second := createForm(t, m, "B")
	_, err := m.RecordSubmission(ctx, first.ID, map[string]any{"name": "x"}, SubmissionMeta{})
	require.NoError(t, err)
	_, err = m.RecordSubmission(ctx, second.ID, map[string]any{"name": "y"}, SubmissionMeta{})
	require.NoError(t, err)

	all, err := m.ExportSubmissions(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalRecords)

	scoped, err := m.ExportSubmissions(ctx, &first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.TotalRecords)
	require.Len(t, scoped.Data, 1)
	assert.Equal(t, first.ID, scoped.Data[0].FormID)
}

func TestRecordSubmissionCapturesMeta(t *testing.T) {
	ctx := context.Background()
	m := newTestMock(t)
	form := createForm(t, m, "Contact")

	sub, err := m.RecordSubmission(ctx, form.ID, map[string]any{"name": "Ana"}, SubmissionMeta{
		IPAddress: "203.0.113.7",
		UserAgent: "curl/8.0",
		Referrer:  "https://example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "Contact", sub.FormTitle)
	assert.Equal(t, "203.0.113.7", sub.IPAddress)
}

func TestSeedPopulatesBackend(t *testing.T) {
	ctx := context.Background()
	m := newTestMock(t)

	require.NoError(t, m.Seed(ctx, 25))

	forms, err := m.ListForms(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.NotEmpty(t, forms[0].Fields)

	subs, err := m.ListSubmissions(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 25)
	for _, sub := range subs {
		assert.Equal(t, forms[0].ID, sub.FormID)
		assert.NotEmpty(t, sub.IPAddress)
		assert.NotEmpty(t, sub.UserAgent)
	}
}

func TestLatencyHonoursCancellation(t *testing.T) {
	m := NewMock(WithLatency(5 * time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.ListForms(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
