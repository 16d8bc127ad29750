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

package template

import (
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	mtest "pkg.monsti.org/contactform/api/util/testing"
)

func TestGetIncludes(t *testing.T) {
	root, cleanup, err := mtest.CreateDirectoryTree(map[string]string{
		"/first/include":                        "one\ntwo\nfour\n\n",
		"/first/master.include":                 "three",
		"/first/foo/bar/include":                "four",
		"/first/foo/bar/cruz/include":           "five",
		"/first/foo/bar/cruz/template.include":  "six",
		"/second/include":                       "seven",
		"/second/foo/bar/cruz/template.include": "eight"}, "TestGetIncludes")
	if err != nil {
		t.Fatalf("Could not create test directory tree: %v", err)
	}
	defer cleanup()
	includes, err := getIncludes([]string{filepath.Join(root, "first"),
		filepath.Join(root, "second")},
		"foo/bar/cruz/template")
	if err != nil {
		t.Fatalf("getIncludes returned error: %v", err)
	}
	sort.Strings(includes)
	expected := []string{
		"eight", "five", "four", "one", "seven", "six", "two"}
	if !reflect.DeepEqual(includes, expected) {
		t.Errorf("getIncludes returned: %v, should be %v", includes, expected)
	}
	if _, err := getIncludes([]string{root}, ""); err == nil {
		t.Errorf("getIncludes should fail for an empty template name")
	}
}

func TestRender(t *testing.T) {
	root, cleanup, err := mtest.CreateDirectoryTree(map[string]string{
		"/global/contactform/view.html":    `<h1>{{.Title}}</h1>{{template "contactform/extra" .}}`,
		"/global/contactform/view.include": "contactform/extra",
		"/global/contactform/extra.html":   `<p>{{.Body}}</p>`,
		"/site/contactform/extra.html":     `<p class="site">{{.Body}}</p>`},
		"TestRender")
	if err != nil {
		t.Fatalf("Could not create test directory tree: %v", err)
	}
	defer cleanup()
	renderer := Renderer{Root: filepath.Join(root, "global")}
	tests := []struct {
		SiteTemplates, Expected string
	}{
		{"", `<h1>Contact Form</h1><p>&lt;b&gt;Hi&lt;/b&gt;</p>`},
		{filepath.Join(root, "site"),
			`<h1>Contact Form</h1><p class="site">&lt;b&gt;Hi&lt;/b&gt;</p>`}}
	for _, v := range tests {
		ret, err := renderer.Render("contactform/view",
			Context{"Title": "Contact Form", "Body": "<b>Hi</b>"},
			v.SiteTemplates)
		if err != nil {
			t.Errorf("Render(_, _, %q) returned error: %v", v.SiteTemplates, err)
			continue
		}
		if string(ret) != v.Expected {
			t.Errorf("Render(_, _, %q) = %q, should be %q", v.SiteTemplates,
				ret, v.Expected)
		}
	}
	if _, err := renderer.Render("unknown", Context{}, ""); err == nil {
		t.Errorf("Render should fail for unknown templates")
	}
}

func TestRenderUnescapedValues(t *testing.T) {
	root, cleanup, err := mtest.CreateDirectoryTree(map[string]string{
		"/contactform/raw.html": `<p>{{RawHTML .Body}}</p>`},
		"TestRenderUnescapedValues")
	if err != nil {
		t.Fatalf("Could not create test directory tree: %v", err)
	}
	defer cleanup()
	renderer := Renderer{Root: root}
	ret, err := renderer.Render("contactform/raw",
		Context{"Body": "<b>Hi</b>"}, "")
	if err == nil {
		t.Errorf("Render returned %q, values must not be rendered unescaped",
			ret)
	}
}
