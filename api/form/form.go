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
Package form implements field declarations, validators and widgets to
render and validate html forms.
*/
package form

import (
	"fmt"
	"html"
	"html/template"
	"net/url"
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var schemaDecoder = schema.NewDecoder()

var validate = validator.New()

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// FieldRenderData contains the data needed for field rendering.
type FieldRenderData struct {
	// Name is the field's name, also used as id of the input element.
	Name string
	// Label is the field's label.
	Label string
	// LabelTag is the html code for the field's label, e.g.
	// `<label for="the_id">The Label</label>`.
	LabelTag template.HTML
	// Input is the input html for the field.
	Input template.HTML
	// Help is the help string.
	Help string
	// Errors contains any validation errors.
	Errors []string
}

// RenderData contains the data needed for form rendering.
type RenderData struct {
	Fields []FieldRenderData
	Errors []string
}

// Widget renders the input element of a field.
type Widget interface {
	HTML(name string, value string) template.HTML
}

// Text is a single line text input.
type Text int

func (t Text) HTML(field string, value string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<input id="%v" type="text" name="%v" value="%v"/>`,
		html.EscapeString(field), html.EscapeString(field),
		html.EscapeString(value)))
}

// TextArea is a multi line text input.
type TextArea int

func (t TextArea) HTML(field string, value string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<textarea id="%v" name="%v">%v</textarea>`,
		html.EscapeString(field), html.EscapeString(field),
		html.EscapeString(value)))
}

// Field contains settings for a form field.
type Field struct {
	// Name of the field as used in posted form values.
	Name, Label, Help string
	// Validator may be nil for fields which always validate.
	Validator Validator
	// Widget defaults to Text.
	Widget Widget
}

// Validate runs the field's validator on the given value.
func (f Field) Validate(value string) []string {
	if f.Validator == nil {
		return nil
	}
	return f.Validator(value)
}

// Fields is an ordered list of field settings.
type Fields []Field

// Lookup returns the field with the given name.
func (fs Fields) Lookup(name string) (Field, bool) {
	for _, field := range fs {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Form represents an html form.
type Form struct {
	Fields Fields
	values map[string]string
	errors map[string][]string
}

// NewForm creates a new Form with the given fields.
//
// Panics if a field has no name or if names are not unique.
func NewForm(fields Fields) *Form {
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if len(field.Name) == 0 {
			panic("NewForm(fields) expects every field to have a name.")
		}
		if seen[field.Name] {
			panic(fmt.Sprintf("Field %q has been set up twice.", field.Name))
		}
		seen[field.Name] = true
	}
	return &Form{
		Fields: fields,
		values: make(map[string]string, len(fields)),
		errors: make(map[string][]string, len(fields))}
}

// SetValue sets the value shown in the field's input.
func (f *Form) SetValue(field, value string) {
	if _, ok := f.Fields.Lookup(field); !ok {
		panic(fmt.Sprintf("Field %q has not been set up.", field))
	}
	f.values[field] = value
}

// AddError adds an error to a field's error list.
//
// To add global form errors, use an empty string as the field's name.
func (f *Form) AddError(field string, error string) {
	f.errors[field] = append(f.errors[field], error)
}

// RenderData returns a RenderData struct for the form.
//
// Fields appear in the order they have been set up.
func (f *Form) RenderData() (renderData RenderData) {
	renderData.Fields = make([]FieldRenderData, 0, len(f.Fields))
	for _, setup := range f.Fields {
		widget := setup.Widget
		if widget == nil {
			widget = new(Text)
		}
		renderData.Fields = append(renderData.Fields, FieldRenderData{
			Name:  setup.Name,
			Label: setup.Label,
			LabelTag: template.HTML(fmt.Sprintf(`<label for="%v">%v</label>`,
				html.EscapeString(setup.Name), html.EscapeString(setup.Label))),
			Input:  widget.HTML(setup.Name, f.values[setup.Name]),
			Help:   setup.Help,
			Errors: f.errors[setup.Name]})
	}
	renderData.Errors = f.errors[""]
	return
}

// Decode fills the struct pointed to by dst with the given form values.
//
// Keys without a matching struct field are ignored.
func Decode(dst interface{}, values url.Values) error {
	if err := schemaDecoder.Decode(dst, values); err != nil {
		return fmt.Errorf("form: Could not decode form values: %v", err)
	}
	return nil
}

// Validator is a function which validates the given value and returns error
// messages if the value does not validate.
type Validator func(string) []string

// First is a Validator that returns the errors of the first given validator
// which does not validate.
func First(vs ...Validator) Validator {
	return func(value string) []string {
		for _, v := range vs {
			if errors := v(value); len(errors) > 0 {
				return errors
			}
		}
		return nil
	}
}

// Required creates a Validator to check for non empty values.
func Required(msg string) Validator {
	return func(value string) []string {
		if len(value) == 0 {
			return []string{msg}
		}
		return nil
	}
}

// MinLength creates a Validator to check that non empty values have at least
// n characters.
func MinLength(n int, msg string) Validator {
	return func(value string) []string {
		if len(value) > 0 && utf8.RuneCountInString(value) < n {
			return []string{msg}
		}
		return nil
	}
}

// Regex creates a Validator to check a string for a matching regexp.
//
// If the expression does not match the string to be validated,
// the given error msg is returned.
func Regex(exp, msg string) Validator {
	re := regexp.MustCompile(exp)
	return func(value string) []string {
		if !re.MatchString(value) {
			return []string{msg}
		}
		return nil
	}
}

// Email creates a Validator to check that non empty values are shaped like
// an email address, i.e. local@domain.tld.
func Email(msg string) Validator {
	domain := Regex(`@[^@]+\.[^@.]+$`, msg)
	return func(value string) []string {
		if len(value) == 0 {
			return nil
		}
		if err := validate.Var(value, "email"); err != nil {
			return []string{msg}
		}
		return domain(value)
	}
}
