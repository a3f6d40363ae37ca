// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — plain data carriers with
// struct tags for JSON encoding and validation rules.
package model

// SignupInput is the raw form payload exactly as the browser submits it.
//
// The `validate:"..."` tags declare the field rules checked by the
// go-playground/validator package — this is the declarative schema:
//   - required:   the field must be non-empty (inputs are trimmed first,
//     so whitespace-only counts as empty)
//   - email:      syntactic email address check
//   - min=6:      at least 6 characters
//   - min=1,dive: the list needs at least one entry, and `dive` applies
//     the per-entry rules to every element
//
// SignupInput is mutable scratch data; it never leaves the validation
// layer. The normalized, immutable result is UserRecord.
type SignupInput struct {
	Name     string      `json:"name"     validate:"required"`
	Email    string      `json:"email"    validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Techs    []TechInput `json:"techs"    validate:"required,min=1,dive"`
}

// TechInput is one row of the dynamic technology list as submitted.
//
// Key is the synthetic row key assigned when the row was added. It exists
// purely so the frontend can keep row identity stable while rows are added
// and removed — it is NOT a domain identifier, and it is dropped from the
// final record.
type TechInput struct {
	Key   string `json:"key"`
	Title string `json:"title" validate:"required"`
}

// UserRecord is the normalized result of a successful submission.
//
// Invariants (enforced by the form schema before a record is created):
//   - Name and Email are never empty
//   - Name is title-cased, Email is lowercased
//   - Techs contains at least one entry with a non-empty Title
//
// A UserRecord is immutable once produced. The session keeps only the
// latest one; it is replaced wholesale on the next submission.
type UserRecord struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Techs    []TechEntry `json:"techs"`
}

// TechEntry is one technology in a finished UserRecord.
type TechEntry struct {
	Title string `json:"title"`
}
