// This file is part of Monsti.
// Copyright 2012-2015 Christian Neumann

// Monsti is free software: you can redistribute it and/or modify it under
// the terms of the GNU Lesser General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option) any
// later version.

// Monsti is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Lesser General Public License for more
// details.

// You should have received a copy of the GNU Lesser General Public License
// along with Monsti. If not, see <http://www.gnu.org/licenses/>.

/*
Package contactform implements the state of a contact form: the entered
field values, their validation and the record of the last successful
submission.

A Model is owned by exactly one form instance and is not safe for
concurrent use.
*/
package contactform

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"pkg.monsti.org/contactform/api/form"
)

// Field names one piece of user entered text in the form.
type Field int

// Fields in declaration order. Errors are reported in this order.
const (
	FirstName Field = iota
	LastName
	Email
	Message
)

var fieldNames = [...]string{"firstName", "lastName", "email", "message"}

// AllFields lists every field in declaration order.
var AllFields = []Field{FirstName, LastName, Email, Message}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// ParseField returns the field with the given name.
func ParseField(name string) (Field, bool) {
	for i, v := range fieldNames {
		if v == name {
			return Field(i), true
		}
	}
	return 0, false
}

// Error messages.
const (
	FirstNameRequired = "firstName is a required field."
	FirstNameTooShort = "firstName must have at least 5 characters."
	LastNameRequired  = "lastName is a required field."
	EmailRequired     = "email is a required field."
	EmailInvalid      = "email must be a valid email address."
)

// FormFields declares label, widget and validation of each field, in
// declaration order.
var FormFields = form.Fields{
	{Name: FirstName.String(), Label: "First Name*",
		Validator: form.First(
			form.Required(FirstNameRequired),
			form.MinLength(5, FirstNameTooShort))},
	{Name: LastName.String(), Label: "Last Name*",
		Validator: form.Required(LastNameRequired)},
	{Name: Email.String(), Label: "Email*",
		Validator: form.First(
			form.Required(EmailRequired),
			form.Email(EmailInvalid))},
	{Name: Message.String(), Label: "Message", Widget: new(form.TextArea)}}

// FieldState holds the current text of every field.
type FieldState struct {
	FirstName string `schema:"firstName"`
	LastName  string `schema:"lastName"`
	Email     string `schema:"email"`
	Message   string `schema:"message"`
}

// Get returns the value of the given field.
func (s FieldState) Get(field Field) string {
	switch field {
	case FirstName:
		return s.FirstName
	case LastName:
		return s.LastName
	case Email:
		return s.Email
	case Message:
		return s.Message
	}
	return ""
}

// With returns a copy of the state with the given field set to value.
func (s FieldState) With(field Field, value string) FieldState {
	switch field {
	case FirstName:
		s.FirstName = value
	case LastName:
		s.LastName = value
	case Email:
		s.Email = value
	case Message:
		s.Message = value
	}
	return s
}

// ValidationError describes why a field's content is unacceptable.
type ValidationError struct {
	Field   Field
	Message string
}

// ValidationErrors is ordered by field declaration order and holds at most
// one entry per field.
type ValidationErrors []ValidationError

// For returns the error message of the given field, if any.
func (e ValidationErrors) For(field Field) (string, bool) {
	for _, v := range e {
		if v.Field == field {
			return v.Message, true
		}
	}
	return "", false
}

// Validate checks every field of the given state independently.
func Validate(s FieldState) ValidationErrors {
	var errs ValidationErrors
	for _, field := range AllFields {
		setup, _ := FormFields.Lookup(field.String())
		if msgs := setup.Validate(s.Get(field)); len(msgs) > 0 {
			errs = append(errs, ValidationError{Field: field, Message: msgs[0]})
		}
	}
	return errs
}

// SubmittedRecord is the snapshot of accepted field values.
type SubmittedRecord struct {
	FirstName, LastName, Email string
	// Message is empty if no message has been submitted.
	Message string
}

// HasMessage returns true iff a message has been submitted.
func (r SubmittedRecord) HasMessage() bool {
	return len(r.Message) > 0
}

// Phase is the lifecycle state of a form.
type Phase string

const (
	// Editing is the initial phase. Validation errors are shown here.
	Editing Phase = "editing"
	// Submitted is entered by a submit without validation errors.
	Submitted Phase = "submitted"
)

const (
	eventChange = "change"
	eventSubmit = "submit"
)

func newLifecycle(initial Phase) *fsm.FSM {
	both := []string{string(Editing), string(Submitted)}
	return fsm.NewFSM(string(initial), fsm.Events{
		{Name: eventChange, Src: both, Dst: string(Editing)},
		{Name: eventSubmit, Src: both, Dst: string(Submitted)},
	}, fsm.Callbacks{})
}

// Model holds the state of one form instance.
type Model struct {
	id        string
	state     FieldState
	touched   [len(fieldNames)]bool
	record    *SubmittedRecord
	lifecycle *fsm.FSM
}

// New returns a model with empty fields in the Editing phase.
func New() *Model {
	return &Model{
		id:        uuid.NewString(),
		lifecycle: newLifecycle(Editing)}
}

// ID returns the id of the form instance.
func (m *Model) ID() string {
	return m.id
}

// Fields returns the current field values.
func (m *Model) Fields() FieldState {
	return m.state
}

// Phase returns the current lifecycle phase.
func (m *Model) Phase() Phase {
	return Phase(m.lifecycle.Current())
}

// fire triggers the given lifecycle event. Self transitions are fine.
func (m *Model) fire(event string) {
	err := m.lifecycle.Event(context.Background(), event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		panic("contactform: Could not change phase: " + err.Error())
	}
}

// SetField updates the field's value and returns the errors to display.
func (m *Model) SetField(field Field, value string) ValidationErrors {
	m.state = m.state.With(field, value)
	if field >= 0 && int(field) < len(m.touched) {
		m.touched[field] = true
	}
	m.fire(eventChange)
	return m.Errors()
}

// SetFieldByName is like SetField, but looks up the field by name. Returns
// false and leaves the model untouched if there is no such field.
func (m *Model) SetFieldByName(name, value string) (ValidationErrors, bool) {
	field, ok := ParseField(name)
	if !ok {
		return m.Errors(), false
	}
	return m.SetField(field, value), true
}

// Validate validates the current field values.
func (m *Model) Validate() ValidationErrors {
	return Validate(m.state)
}

// Errors returns the validation errors of fields which have been changed or
// submitted.
func (m *Model) Errors() ValidationErrors {
	var errs ValidationErrors
	for _, e := range m.Validate() {
		if m.touched[e.Field] {
			errs = append(errs, e)
		}
	}
	return errs
}

// Touched returns true iff the field has been changed or submitted.
func (m *Model) Touched(field Field) bool {
	return field >= 0 && int(field) < len(m.touched) && m.touched[field]
}

// Submit validates all fields. If there are no errors, the current values
// replace the submitted record. Field values are kept either way.
func (m *Model) Submit() (*SubmittedRecord, ValidationErrors) {
	for i := range m.touched {
		m.touched[i] = true
	}
	if errs := m.Validate(); len(errs) > 0 {
		return nil, errs
	}
	m.record = &SubmittedRecord{
		FirstName: m.state.FirstName,
		LastName:  m.state.LastName,
		Email:     m.state.Email,
		Message:   m.state.Message}
	m.fire(eventSubmit)
	record := *m.record
	return &record, nil
}

// Submitted returns a copy of the record of the last successful submit.
func (m *Model) Submitted() (*SubmittedRecord, bool) {
	if m.record == nil {
		return nil, false
	}
	record := *m.record
	return &record, true
}
