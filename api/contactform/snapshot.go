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

package contactform

import (
	"github.com/google/uuid"
)

// Snapshot is a serializable copy of a model's state.
type Snapshot struct {
	ID      string
	State   FieldState
	Touched []string
	Phase   Phase
	Record  *SubmittedRecord
}

// Snapshot returns a copy of the model's state.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{ID: m.id, State: m.state, Phase: m.Phase()}
	for _, field := range AllFields {
		if m.touched[field] {
			s.Touched = append(s.Touched, field.String())
		}
	}
	if record, ok := m.Submitted(); ok {
		s.Record = record
	}
	return s
}

// Restore creates a model from a snapshot.
//
// A snapshot without id gets a new one. Unknown touched field names are
// dropped and a Submitted phase without record falls back to Editing.
func Restore(s Snapshot) *Model {
	m := &Model{id: s.ID, state: s.State}
	if len(m.id) == 0 {
		m.id = uuid.NewString()
	}
	for _, name := range s.Touched {
		if field, ok := ParseField(name); ok {
			m.touched[field] = true
		}
	}
	if s.Record != nil {
		record := *s.Record
		m.record = &record
	}
	phase := Editing
	if s.Phase == Submitted && m.record != nil {
		phase = Submitted
	}
	m.lifecycle = newLifecycle(phase)
	return m
}
