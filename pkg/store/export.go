package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ExportDocument is the portable form interchange format. Timestamp records
// when the export was produced, not when the form was last edited.
type ExportDocument struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Settings    model.FormSettings      `json:"settings"`
	Fields      []model.FieldDefinition `json:"fields"`
	Timestamp   time.Time               `json:"timestamp"`
}

// ExportForm serialises a form to the interchange document.
func (s *Store) ExportForm(form model.FormDefinition) ([]byte, error) {
	doc := ExportDocument{
		Title:       form.Title,
		Description: form.Description,
		Settings:    form.Settings,
		Fields:      form.Fields,
		Timestamp:   s.now().UTC(),
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: export form: %w", err)
	}
	return raw, nil
}

// ImportForm parses an interchange document into an unsaved form. The result
// has no id; saving it assigns a fresh one.
func ImportForm(raw []byte) (model.FormDefinition, error) {
	var doc ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.FormDefinition{}, fmt.Errorf("store: import form: %w", err)
	}
	if doc.Title == "" {
		return model.FormDefinition{}, fmt.Errorf("store: import form: missing title")
	}
	if doc.Fields == nil {
		return model.FormDefinition{}, fmt.Errorf("store: import form: missing fields")
	}
	for i, field := range doc.Fields {
		if field.ID == "" || field.Type == "" {
			return model.FormDefinition{}, fmt.Errorf("store: import form: field %d missing id or type", i)
		}
	}

	settings := doc.Settings
	if settings == (model.FormSettings{}) {
		settings = model.DefaultSettings()
	}
	return model.FormDefinition{
		Title:       doc.Title,
		Description: doc.Description,
		Settings:    settings,
		Fields:      doc.Fields,
	}, nil
}
