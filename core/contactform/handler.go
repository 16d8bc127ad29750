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
	"bytes"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"pkg.monsti.org/contactform/api/contactform"
	"pkg.monsti.org/contactform/api/form"
	msettings "pkg.monsti.org/contactform/api/util/settings"
	"pkg.monsti.org/contactform/api/util/template"
)

// contactFormHandler is a net/http handler serving the contact form.
type contactFormHandler struct {
	Renderer template.Renderer
	Settings *msettings.Settings
	// Log is the logger used by the handler.
	Log *log.Logger
	// Store keeps the id of each visitor's form instance.
	Store sessions.Store
	// Forms keeps the form instances.
	Forms *formStore
}

type ServeError string

func (err ServeError) Error() string {
	return string(err)
}

func serveError(args ...interface{}) {
	panic(ServeError(fmt.Sprintf(args[0].(string), args[1:]...)))
}

// applyChanges sets every field whose posted value differs from the form's.
func applyChanges(model *contactform.Model, posted contactform.FieldState) {
	current := model.Fields()
	for _, field := range contactform.AllFields {
		if value := posted.Get(field); value != current.Get(field) {
			model.SetField(field, value)
		}
	}
}

// ServeHTTP handles incoming HTTP requests.
func (h *contactFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			var buf bytes.Buffer
			fmt.Fprintf(&buf, "error: %v\n", err)
			if _, ok := err.(ServeError); !ok {
				buf.Write(debug.Stack())
			}
			h.Log.Println(buf.String())
			http.Error(w, "Application error.", http.StatusInternalServerError)
		}
	}()
	if r.URL.Path != h.Settings.Site.Path {
		http.NotFound(w, r)
		return
	}
	session := h.getSession(r)
	model := h.getForm(session)
	switch r.Method {
	case "GET", "HEAD":
		if session.IsNew {
			h.setForm(session, model)
			if err := session.Save(r, w); err != nil {
				h.Log.Printf("Could not save session: %v", err)
			}
		}
	case "POST":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Could not parse form.", http.StatusBadRequest)
			return
		}
		var posted contactform.FieldState
		if err := form.Decode(&posted, r.PostForm); err != nil {
			http.Error(w, "Could not decode form.", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("instance") != model.ID() {
			model = contactform.New()
		}
		applyChanges(model, posted)
		switch r.PostForm.Get("action") {
		case "change":
		case "", "submit":
			record, errs := model.Submit()
			if errs != nil {
				break
			}
			h.Log.Printf("Contact form %v has been submitted by %q.",
				model.ID(), record.Email)
			h.setForm(session, model)
			if err := session.Save(r, w); err != nil {
				serveError("Could not save session: %v", err)
			}
			http.Redirect(w, r, h.Settings.Site.Path, http.StatusSeeOther)
			return
		default:
			http.Error(w, "Unknown form action.", http.StatusBadRequest)
			return
		}
		h.setForm(session, model)
		if err := session.Save(r, w); err != nil {
			serveError("Could not save session: %v", err)
		}
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "Request method not supported.",
			http.StatusMethodNotAllowed)
		return
	}
	body, err := h.render(model)
	if err != nil {
		serveError("Could not render contact form: %v", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

// render renders the page showing the given form instance.
func (h *contactFormHandler) render(model *contactform.Model) ([]byte, error) {
	f := form.NewForm(contactform.FormFields)
	state := model.Fields()
	for _, field := range contactform.AllFields {
		f.SetValue(field.String(), state.Get(field))
	}
	for _, e := range model.Errors() {
		f.AddError(e.Field.String(), e.Message)
	}
	context := template.Context{
		"Title":    h.Settings.Site.Title,
		"Action":   h.Settings.Site.Path,
		"Instance": model.ID(),
		"Form":     f.RenderData(),
	}
	if record, ok := model.Submitted(); ok {
		context["Submitted"] = record
	}
	return h.Renderer.Render("contactform/view", context,
		h.Settings.Directories.SiteTemplates)
}
