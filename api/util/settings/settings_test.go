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

package settings

import (
	"os"
	"path/filepath"
	"testing"

	mtest "pkg.monsti.org/contactform/api/util/testing"
)

func TestLoadSettings(t *testing.T) {
	files := map[string]string{
		"/etc/contactform.yaml": `
listen: "localhost:9090"
directories:
  share: ../share
site:
  title: "Contact Form"
  sessionauthkey: "secret"
`}
	root, cleanup, err := mtest.CreateDirectoryTree(files, "TestLoadSettings")
	if err != nil {
		t.Fatalf("Could not create test files: %v", err)
	}
	defer cleanup()
	cfgPath := filepath.Join(root, "etc")
	settings, err := LoadSettings(cfgPath)
	if err != nil {
		t.Fatalf("Could not load settings: %v", err)
	}
	if settings.Listen != "localhost:9090" {
		t.Errorf(`settings.Listen == %q, should be "localhost:9090"`,
			settings.Listen)
	}
	if settings.Directories.Config != cfgPath {
		t.Errorf("settings.Directories.Config == %q, should be %q",
			settings.Directories.Config, cfgPath)
	}
	if expected := filepath.Join(root, "share"); settings.Directories.Share != expected {
		t.Errorf("settings.Directories.Share == %q, should be %q",
			settings.Directories.Share, expected)
	}
	if settings.Directories.SiteTemplates != "" {
		t.Errorf("settings.Directories.SiteTemplates == %q, should be empty",
			settings.Directories.SiteTemplates)
	}
	if expected := filepath.Join(root, "share", "templates"); settings.GetTemplatesPath() != expected {
		t.Errorf("settings.GetTemplatesPath() == %q, should be %q",
			settings.GetTemplatesPath(), expected)
	}
	if settings.Site.Path != "/" {
		t.Errorf(`Default path is not "/"`)
	}
	if settings.Site.SessionName != "contactform-session" {
		t.Errorf(`Default session name is not "contactform-session"`)
	}
	if settings.Site.SessionAuthKey != "secret" {
		t.Errorf(`settings.Site.SessionAuthKey == %q, should be "secret"`,
			settings.Site.SessionAuthKey)
	}
}

func TestLoadSettingsEnvironment(t *testing.T) {
	files := map[string]string{
		"/contactform.yaml": `
listen: "localhost:9090"
directories:
  sitetemplates: templates
site:
  title: "Contact Form"
`}
	root, cleanup, err := mtest.CreateDirectoryTree(files,
		"TestLoadSettingsEnvironment")
	if err != nil {
		t.Fatalf("Could not create test files: %v", err)
	}
	defer cleanup()
	t.Setenv("CONTACTFORM_LISTEN", ":8081")
	t.Setenv("CONTACTFORM_SESSION_AUTH_KEY", "from env")
	t.Setenv("CONTACTFORM_SHARE_DIR", "share")
	settings, err := LoadSettings(root)
	if err != nil {
		t.Fatalf("Could not load settings: %v", err)
	}
	if settings.Listen != ":8081" {
		t.Errorf(`settings.Listen == %q, should be ":8081"`, settings.Listen)
	}
	if settings.Site.SessionAuthKey != "from env" {
		t.Errorf(`settings.Site.SessionAuthKey == %q, should be "from env"`,
			settings.Site.SessionAuthKey)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Could not get working directory: %v", err)
	}
	if expected := filepath.Join(wd, "share"); settings.Directories.Share != expected {
		t.Errorf("settings.Directories.Share == %q, should be %q",
			settings.Directories.Share, expected)
	}
	if expected := filepath.Join(root, "templates"); settings.Directories.SiteTemplates != expected {
		t.Errorf("settings.Directories.SiteTemplates == %q, should be %q",
			settings.Directories.SiteTemplates, expected)
	}
	if settings.Site.Title != "Contact Form" {
		t.Errorf(`settings.Site.Title == %q, should be "Contact Form"`,
			settings.Site.Title)
	}
}

func TestLoadSettingsMissingKey(t *testing.T) {
	root, cleanup, err := mtest.CreateDirectoryTree(map[string]string{
		"/contactform.yaml": `listen: "localhost:9090"`},
		"TestLoadSettingsMissingKey")
	if err != nil {
		t.Fatalf("Could not create test files: %v", err)
	}
	defer cleanup()
	if _, err := LoadSettings(root); err == nil {
		t.Errorf("LoadSettings should fail without a session auth key")
	}
}

func TestMakeAbsolute(t *testing.T) {
	tests := []struct {
		Path, Root, Expected string
	}{
		{"", "/etc", ""},
		{"share", "/etc", "/etc/share"},
		{"../share", "/etc/contactform", "/etc/share"},
		{"/usr/share", "/etc", "/usr/share"}}
	for _, v := range tests {
		path := v.Path
		MakeAbsolute(&path, v.Root)
		if path != v.Expected {
			t.Errorf("MakeAbsolute(%q, %q) = %q, should be %q", v.Path, v.Root,
				path, v.Expected)
		}
	}
}
