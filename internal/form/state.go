package form

import (
	"time"

	"github.com/rs/xid"

	"github.com/sakif/signup-form/internal/model"
)

// Phase is where a form session sits in its lifecycle.
//
// The cycle is: idle → validating → (submitted | idle with errors).
// There is no terminal phase — after a successful submission the form is
// immediately reusable, and the next submission replaces the record.
type Phase string

const (
	PhaseIdle       Phase = "idle"       // waiting for input (possibly showing errors)
	PhaseValidating Phase = "validating" // a submission is being checked
	PhaseSubmitted  Phase = "submitted"  // last submission validated successfully
)

// TechRow is one in-progress row of the dynamic technology list.
// Key is a synthetic xid assigned when the row is created; the frontend
// uses it to keep row identity stable across re-renders. It never
// appears in the final UserRecord.
type TechRow struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// State is the in-progress form state for one session: the ordered row
// list, the lifecycle phase, and the latest successfully submitted
// record. It is owned exclusively by the session store and mutated only
// through the service layer, one request at a time.
type State struct {
	ID        string            `json:"id"`
	Phase     Phase             `json:"phase"`
	Rows      []TechRow         `json:"rows"`
	Record    *model.UserRecord `json:"record,omitempty"` // latest submission, replaced each time
	UpdatedAt time.Time         `json:"-"`                // for idle-session eviction
}

// NewState creates a fresh form session in the idle phase with a single
// empty technology row — the form always starts with one row visible.
func NewState() *State {
	s := &State{
		ID:        xid.New().String(),
		Phase:     PhaseIdle,
		UpdatedAt: time.Now(),
	}
	s.AddRow()
	return s
}

// AddRow appends an empty technology row with a fresh synthetic key and
// returns it.
func (s *State) AddRow() TechRow {
	row := TechRow{Key: xid.New().String()}
	s.Rows = append(s.Rows, row)
	s.touch()
	return row
}

// RemoveRow deletes the row at the given index, preserving the order of
// the remaining rows. An out-of-bounds index is a no-op; the return
// value reports whether a row was actually removed.
func (s *State) RemoveRow(index int) bool {
	if index < 0 || index >= len(s.Rows) {
		return false
	}
	s.Rows = append(s.Rows[:index], s.Rows[index+1:]...)
	s.touch()
	return true
}

// BeginValidation moves the session into the validating phase.
func (s *State) BeginValidation() {
	s.Phase = PhaseValidating
	s.touch()
}

// Complete records a successful submission: the previous record (if any)
// is discarded and replaced. The row list is kept so the form remains
// editable and resubmittable.
func (s *State) Complete(record *model.UserRecord) {
	s.Record = record
	s.Phase = PhaseSubmitted
	s.touch()
}

// Fail returns the session to idle after a failed validation; the
// caller surfaces the field errors to the user.
func (s *State) Fail() {
	s.Phase = PhaseIdle
	s.touch()
}

// Clone returns a deep copy. The store hands out clones so callers can
// never mutate stored state behind the service's back.
func (s *State) Clone() *State {
	dup := *s
	dup.Rows = make([]TechRow, len(s.Rows))
	copy(dup.Rows, s.Rows)
	if s.Record != nil {
		rec := *s.Record
		rec.Techs = make([]model.TechEntry, len(s.Record.Techs))
		copy(rec.Techs, s.Record.Techs)
		dup.Record = &rec
	}
	return &dup
}

func (s *State) touch() {
	s.UpdatedAt = time.Now()
}
