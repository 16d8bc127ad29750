// This file is part of Monsti, a web content management system.
// Copyright 2012-2015 Christian Neumann
//
// Monsti is free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option) any
// later version.
//
// Monsti is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
// A PARTICULAR PURPOSE.  See the GNU Affero General Public License for more
// details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Monsti.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/sessions"
	"pkg.monsti.org/contactform/api/contactform"
)

// formKey is the session key of the id of the visitor's form instance.
const formKey = "contactform"

// formStore keeps the form instances of all visitors in memory.
//
// Instances unused for longer than MaxAge are dropped.
type formStore struct {
	MaxAge time.Duration
	mutex  sync.Mutex
	forms  map[string]storedForm
}

type storedForm struct {
	snapshot contactform.Snapshot
	used     time.Time
}

func newFormStore(maxAge time.Duration) *formStore {
	return &formStore{MaxAge: maxAge, forms: make(map[string]storedForm)}
}

// Get returns the snapshot of the form instance with the given id.
func (s *formStore) Get(id string) (contactform.Snapshot, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	form, ok := s.forms[id]
	if !ok || time.Since(form.used) > s.MaxAge {
		return contactform.Snapshot{}, false
	}
	return form.snapshot, true
}

// Put keeps the snapshot and drops expired instances.
func (s *formStore) Put(snapshot contactform.Snapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	now := time.Now()
	for id, form := range s.forms {
		if now.Sub(form.used) > s.MaxAge {
			delete(s.forms, id)
		}
	}
	s.forms[snapshot.ID] = storedForm{snapshot: snapshot, used: now}
}

// Len returns the number of kept instances.
func (s *formStore) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.forms)
}

// getSession returns the currently active or a new session.
//
// Sessions which can not be decoded, e.g. because the key changed, are
// replaced by new ones.
func (h *contactFormHandler) getSession(r *http.Request) *sessions.Session {
	session, err := h.Store.Get(r, h.Settings.Site.SessionName)
	if err != nil {
		h.Log.Printf("Could not decode session, starting a new one: %v", err)
	}
	if session == nil {
		session = sessions.NewSession(h.Store, h.Settings.Site.SessionName)
	}
	return session
}

// getForm returns the visitor's form instance or a new one.
func (h *contactFormHandler) getForm(session *sessions.Session) *contactform.Model {
	if id, ok := session.Values[formKey].(string); ok {
		if snapshot, ok := h.Forms.Get(id); ok {
			return contactform.Restore(snapshot)
		}
	}
	return contactform.New()
}

// setForm keeps the form instance and remembers its id in the session.
func (h *contactFormHandler) setForm(session *sessions.Session,
	model *contactform.Model) {
	h.Forms.Put(model.Snapshot())
	session.Values[formKey] = model.ID()
}
