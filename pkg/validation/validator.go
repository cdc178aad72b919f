package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formbuilder/internal/log"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// RFC-light: local@domain.tld with no whitespace. Full RFC 5322 parsing
	// buys nothing for an authoring preview.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	phoneUSPattern            = regexp.MustCompile(`^(\+1[\s.-]?)?(\(?\d{3}\)?[\s.-]?)\d{3}[\s.-]?\d{4}$`)
	phoneInternationalPattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	phoneDefaultPattern       = regexp.MustCompile(`^[+\d\s().-]{7,20}$`)
)

// Validate computes the validation errors for a field/value pair. An empty
// result means the value is acceptable. Rules run in a fixed order; a missing
// required value short-circuits so the caller never sees length or format
// errors stacked on an empty field, and an empty optional value skips every
// remaining check.
func Validate(field model.FieldDefinition, value any) []string {
	if isEmpty(value) {
		if field.Required {
			return []string{requiredMessage(field)}
		}
		return nil
	}

	var errs []string
	text := stringValue(value)

	switch field.Type {
	case model.FieldKindText, model.FieldKindTextarea, model.FieldKindEmail, model.FieldKindURL:
		errs = append(errs, lengthErrors(field, text)...)
	}

	errs = append(errs, patternErrors(field, text)...)

	switch field.Type {
	case model.FieldKindEmail:
		if !emailPattern.MatchString(text) {
			errs = append(errs, fmt.Sprintf("%s must be a valid email address", label(field)))
		}
	case model.FieldKindPhone:
		errs = append(errs, phoneErrors(field, text)...)
	case model.FieldKindURL:
		if parsed, err := url.Parse(text); err != nil || !parsed.IsAbs() || parsed.Host == "" {
			errs = append(errs, fmt.Sprintf("%s must be a valid URL", label(field)))
		}
	case model.FieldKindNumber:
		errs = append(errs, numberErrors(field, value)...)
	case model.FieldKindMultiselect:
		errs = append(errs, selectionErrors(field, value)...)
	case model.FieldKindFile:
		if files, ok := filesValue(value); ok {
			errs = append(errs, ValidateFiles(field, files)...)
		}
	}

	return errs
}

// ValidateFiles checks each candidate file independently against the field's
// accept list and size cap. Every failing file contributes one message, so a
// multi-file selection reports everything wrong at once.
func ValidateFiles(field model.FieldDefinition, files []model.FileInfo) []string {
	var errs []string
	maxBytes := int64(field.MaxSize * 1024 * 1024)

	for _, file := range files {
		if maxBytes > 0 && file.Size > maxBytes {
			errs = append(errs, fmt.Sprintf("%s: %s exceeds the maximum size of %s MB",
				label(field), file.Name, trimFloat(field.MaxSize)))
		}
		if field.Accept != "" && !accepts(field.Accept, file) {
			errs = append(errs, fmt.Sprintf("%s: %s is not an accepted file type", label(field), file.Name))
		}
	}
	return errs
}

// accepts matches a file against a comma-separated accept list. Each entry is
// either an extension (".pdf") or a MIME pattern where a trailing '*' is a
// wildcard suffix match ("image/*").
func accepts(acceptList string, file model.FileInfo) bool {
	for _, raw := range strings.Split(acceptList, ",") {
		entry := strings.ToLower(strings.TrimSpace(raw))
		if entry == "" {
			continue
		}

		if strings.HasPrefix(entry, ".") {
			if strings.HasSuffix(strings.ToLower(file.Name), entry) {
				return true
			}
			continue
		}

		mime := strings.ToLower(file.MIME)
		if strings.HasSuffix(entry, "*") {
			if strings.HasPrefix(mime, strings.TrimSuffix(entry, "*")) {
				return true
			}
			continue
		}
		if mime == entry {
			return true
		}
	}
	return false
}

func lengthErrors(field model.FieldDefinition, text string) []string {
	var errs []string
	length := utf8.RuneCountInString(text)

	if field.MinLength > 0 && length < field.MinLength {
		errs = append(errs, fmt.Sprintf("%s must be at least %d characters", label(field), field.MinLength))
	}
	if field.MaxLength > 0 && length > field.MaxLength {
		errs = append(errs, fmt.Sprintf("%s must be at most %d characters", label(field), field.MaxLength))
	}
	return errs
}

// patternErrors applies the user-supplied pattern. A pattern that fails to
// compile is logged and skipped rather than surfaced; the author sees the
// warning, the respondent is not blocked by a broken expression.
func patternErrors(field model.FieldDefinition, text string) []string {
	if field.Pattern == "" || field.Type == model.FieldKindPhone {
		return nil
	}
	re, err := regexp.Compile(field.Pattern)
	if err != nil {
		log.Warnf("validation: field %q has invalid pattern %q: %v", field.ID, field.Pattern, err)
		return nil
	}
	if !re.MatchString(text) {
		return []string{fmt.Sprintf("%s format is invalid", label(field))}
	}
	return nil
}

func phoneErrors(field model.FieldDefinition, text string) []string {
	pattern := phoneDefaultPattern

	switch field.PhoneFormat {
	case model.PhoneFormatUS:
		pattern = phoneUSPattern
	case model.PhoneFormatInternational:
		pattern = phoneInternationalPattern
	case model.PhoneFormatCustom:
		if field.Pattern != "" {
			custom, err := regexp.Compile(field.Pattern)
			if err != nil {
				log.Warnf("validation: field %q has invalid phone pattern %q: %v", field.ID, field.Pattern, err)
				return nil
			}
			pattern = custom
		}
	}

	if !pattern.MatchString(strings.TrimSpace(text)) {
		return []string{fmt.Sprintf("%s must be a valid phone number", label(field))}
	}
	return nil
}

func numberErrors(field model.FieldDefinition, value any) []string {
	number, ok := numberValue(value)
	if !ok {
		return []string{fmt.Sprintf("%s must be a number", label(field))}
	}

	var errs []string
	if field.Min != nil && number < *field.Min {
		errs = append(errs, fmt.Sprintf("%s must be at least %s", label(field), trimFloat(*field.Min)))
	}
	if field.Max != nil && number > *field.Max {
		errs = append(errs, fmt.Sprintf("%s must be at most %s", label(field), trimFloat(*field.Max)))
	}
	return errs
}

func selectionErrors(field model.FieldDefinition, value any) []string {
	selected, ok := value.([]string)
	if !ok {
		return nil
	}
	if field.MaxSelections > 0 && len(selected) > field.MaxSelections {
		return []string{fmt.Sprintf("%s allows at most %d selections", label(field), field.MaxSelections)}
	}
	return nil
}

func requiredMessage(field model.FieldDefinition) string {
	if field.ErrorMessage != "" {
		return field.ErrorMessage
	}
	return fmt.Sprintf("%s is required", label(field))
}

func label(field model.FieldDefinition) string {
	if trimmed := strings.TrimSpace(field.Label); trimmed != "" {
		return trimmed
	}
	return "This field"
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []model.FileInfo:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func filesValue(value any) ([]model.FileInfo, bool) {
	switch v := value.(type) {
	case []model.FileInfo:
		return v, true
	case model.FileInfo:
		return []model.FileInfo{v}, true
	default:
		return nil, false
	}
}

// trimFloat formats bounds without a trailing ".000000" so messages read the
// way an author wrote the number.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
