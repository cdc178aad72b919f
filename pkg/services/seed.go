package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jaswdr/faker"
	"github.com/rs/xid"

	"github.com/goliatone/go-formbuilder/pkg/factory"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/registry"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Seed populates the mock backend with a demo form and a plausible
// submission history so the admin panel has data to show on first run.
func (m *Mock) Seed(ctx context.Context, submissionCount int) error {
	form, err := m.CreateForm(ctx, demoForm())
	if err != nil {
		return fmt.Errorf("services: seed form: %w", err)
	}
	if _, err := m.GenerateShareableLink(ctx, form); err != nil {
		return fmt.Errorf("services: seed share link: %w", err)
	}

	gen := faker.New()
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	for i := 0; i < submissionCount; i++ {
		data := make(map[string]any, len(form.Fields))
		for _, field := range form.Fields {
			data[field.ID] = fakeValue(gen, field)
		}
		m.submissions = append(m.submissions, model.Submission{
			ID:          xid.New().String(),
			FormID:      form.ID,
			FormTitle:   form.Title,
			Data:        data,
			SubmittedAt: now.Add(-time.Duration(gen.IntBetween(1, 60*24*30)) * time.Minute),
			IPAddress:   gen.Internet().Ipv4(),
			UserAgent:   gen.UserAgent().UserAgent(),
			Referrer:    gen.Internet().URL(),
		})
	}
	return nil
}

func demoForm() model.FormDefinition {
	fieldFactory := factory.New(registry.New())
	newField := func(kind model.FieldKind, patches ...model.FieldPatch) model.FieldDefinition {
		field, err := fieldFactory.NewField(kind, patches...)
		if err != nil {
			panic(err)
		}
		return field
	}

	return model.FormDefinition{
		Title:       "Customer Feedback",
		Description: "Tell us how we did.",
		Settings:    model.DefaultSettings(),
		Fields: []model.FieldDefinition{
			newField(model.FieldKindText, model.FieldPatch{
				Label: model.String("Full Name"), Required: model.Bool(true),
			}),
			newField(model.FieldKindEmail, model.FieldPatch{
				Label: model.String("Email Address"), Required: model.Bool(true),
			}),
			newField(model.FieldKindDropdown, model.FieldPatch{
				Label:   model.String("How did you hear about us?"),
				Options: model.Strings([]string{"Search engine", "Social media", "A friend", "Other"}),
			}),
			newField(model.FieldKindNumber, model.FieldPatch{
				Label: model.String("Rating"), Min: model.Float(1), Max: model.Float(10),
			}),
			newField(model.FieldKindTextarea, model.FieldPatch{
				Label: model.String("Comments"),
			}),
		},
	}
}

func fakeValue(gen faker.Faker, field model.FieldDefinition) any {
	switch field.Type {
	case model.FieldKindEmail:
		return gen.Internet().Email()
	case model.FieldKindPhone:
		return gen.Phone().Number()
	case model.FieldKindURL:
		return gen.Internet().URL()
	case model.FieldKindNumber:
		min, max := 1, 100
		if field.Min != nil {
			min = int(*field.Min)
		}
		if field.Max != nil {
			max = int(*field.Max)
		}
		return gen.IntBetween(min, max)
	case model.FieldKindTextarea:
		return gen.Lorem().Sentence(12)
	case model.FieldKindDropdown:
		if len(field.Options) == 0 {
			return ""
		}
		return field.Options[gen.IntBetween(0, len(field.Options)-1)]
	case model.FieldKindMultiselect:
		if len(field.Options) == 0 {
			return []string{}
		}
		count := gen.IntBetween(1, len(field.Options))
		return append([]string(nil), field.Options[:count]...)
	case model.FieldKindFile:
		return []model.FileInfo{{
			Name: gen.Lorem().Word() + ".pdf",
			Size: int64(gen.IntBetween(1, 2*1024*1024)),
			MIME: "application/pdf",
		}}
	default:
		return gen.Person().Name()
	}
}

// SinkFor adapts the mock backend to the renderer's submission sink for one
// published form.
func (m *Mock) SinkFor(formID int, meta SubmissionMeta) render.Sink {
	return render.SinkFunc(func(ctx context.Context, payload map[string]any) error {
		_, err := m.RecordSubmission(ctx, formID, payload, meta)
		return err
	})
}
