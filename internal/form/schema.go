// Package form contains the validation schema and in-progress form state
// for the signup form. Everything in this package is pure and synchronous:
// given the same input, Validate always produces the same result, which is
// what makes the service layer trivial to test.
package form

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/signup-form/internal/apperror"
	"github.com/sakif/signup-form/internal/model"
)

// MinPasswordLength is the hard validation floor. The advisory strength
// meter (strength.go) wants more, but only this blocks submission.
const MinPasswordLength = 6

// FieldErrors maps a field path ("email", "techs[0].title") to the
// validation failure for that field. The path uses dot/array-index
// notation so the frontend can place each message next to the exact
// input that produced it.
type FieldErrors map[string]*apperror.AppError

// Messages flattens FieldErrors into path → human-readable message,
// which is the shape the JSON API returns.
func (fe FieldErrors) Messages() map[string]string {
	out := make(map[string]string, len(fe))
	for path, err := range fe {
		out[path] = err.Message
	}
	return out
}

// fieldLabels is the rule table's display-name column: it maps a field
// path (with array indexes stripped) to the label used in messages.
var fieldLabels = map[string]string{
	"name":        "name",
	"email":       "email",
	"password":    "password",
	"techs":       "technology",
	"techs.title": "technology title",
}

// Schema validates raw signup input against the declarative rules on
// model.SignupInput and, on success, produces the normalized UserRecord.
//
// The rules themselves live in struct tags (see model.SignupInput); this
// type owns the validator instance and the translation of its errors
// into field paths and failure kinds.
type Schema struct {
	validate *validator.Validate
}

// NewSchema creates a Schema with a dedicated validator instance.
//
// WHY WithRequiredStructEnabled?
// It is the validator library's forward-compatibility flag: `required` on
// nested structs behaves consistently instead of the legacy quirk. The
// library docs recommend every new project set it.
func NewSchema() *Schema {
	return &Schema{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks every field of the input against its rule and returns
// either the normalized record or the per-field errors — never both.
//
// The input is trimmed in place first, so "   " counts as blank for every
// `required` rule. Normalization (title-cased name, lowercased email)
// happens only after all rules pass; the password is passed through
// verbatim.
func (s *Schema) Validate(in *model.SignupInput) (*model.UserRecord, FieldErrors) {
	trim(in)

	if err := s.validate.Struct(in); err != nil {
		// validator.Struct returns validator.ValidationErrors for rule
		// failures; anything else would be a bug in our tags.
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, FieldErrors{
				"": {Err: apperror.ErrInvalidFormat, Message: err.Error()},
			}
		}
		return nil, translate(verrs)
	}

	techs := make([]model.TechEntry, len(in.Techs))
	for i, t := range in.Techs {
		techs[i] = model.TechEntry{Title: t.Title}
	}

	return &model.UserRecord{
		Name:     TitleCase(in.Name),
		Email:    strings.ToLower(in.Email),
		Password: in.Password,
		Techs:    techs,
	}, nil
}

// trim strips surrounding whitespace from every text field so the rules
// see "blank" and "whitespace-only" as the same thing.
func trim(in *model.SignupInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	for i := range in.Techs {
		in.Techs[i].Title = strings.TrimSpace(in.Techs[i].Title)
	}
}

// translate converts the validator library's errors into our FieldErrors.
//
// Each validator.FieldError carries:
//   - Namespace(): "SignupInput.Techs[0].Title" — converted to the JSON
//     field path form "techs[0].title"
//   - Tag(): which rule failed ("required", "email", "min")
//
// The tag → failure-kind mapping is the rule table:
//
//	required on a slice  → EmptyList    (no rows at all)
//	required elsewhere   → EmptyField
//	email                → InvalidFormat
//	min on a slice       → EmptyList
//	min elsewhere        → TooShort
func translate(verrs validator.ValidationErrors) FieldErrors {
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		label := labelFor(path)

		var appErr *apperror.AppError
		switch fe.Tag() {
		case "required":
			if fe.Kind() == reflect.Slice {
				appErr = apperror.EmptyList(path, label)
			} else {
				appErr = apperror.EmptyField(path, label)
			}
		case "email":
			appErr = apperror.InvalidFormat(path, label)
		case "min":
			if fe.Kind() == reflect.Slice {
				appErr = apperror.EmptyList(path, label)
			} else {
				appErr = apperror.TooShort(path, label, MinPasswordLength)
			}
		default:
			appErr = apperror.InvalidFormat(path, label)
		}
		out[path] = appErr
	}
	return out
}

// fieldPath rewrites a validator namespace into the JSON field path:
// "SignupInput.Techs[0].Title" → "techs[0].title". The struct fields are
// exported (capitalized) while the JSON keys are lowercase, so we
// lowercase the first rune of every dot-separated segment and drop the
// root struct name.
func fieldPath(namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) > 1 {
		segments = segments[1:] // drop "SignupInput"
	}
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		segments[i] = strings.ToLower(seg[:1]) + seg[1:]
	}
	return strings.Join(segments, ".")
}

// labelFor looks up the display label for a field path, ignoring array
// indexes so "techs[3].title" and "techs[0].title" share one label.
func labelFor(path string) string {
	key := path
	if open := strings.IndexByte(key, '['); open >= 0 {
		if end := strings.IndexByte(key, ']'); end > open {
			key = key[:open] + key[end+1:]
		}
	}
	if label, ok := fieldLabels[key]; ok {
		return label
	}
	return path
}
