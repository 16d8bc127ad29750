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

/* Package settings implements configuration types and functions for
   the contact form worker.  */
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"pkg.monsti.org/contactform/api/util/yaml"
)

// MakeAbsolute converts a possibly relative path to an absolute one using the
// given root.
//
// Empty paths are left empty.
func MakeAbsolute(path *string, root string) {
	if len(*path) > 0 && !filepath.IsAbs(*path) {
		*path = filepath.Join(root, *path)
	}
}

// Get the absolute config directory path using given command line path
// argument.
func GetConfigPath(arg string) (cfgPath string) {
	cfgPath = arg
	if !filepath.IsAbs(cfgPath) {
		wd, err := os.Getwd()
		if err != nil {
			panic("Could not get working directory: " + err.Error())
		}
		cfgPath = filepath.Join(wd, cfgPath)
	}
	return
}

// Site configuration.
type Site struct {
	// Title is shown as the form's header and in the HTML head.
	Title string `env:"CONTACTFORM_TITLE"`
	// Path is the URL path the form is served at.
	Path string `env:"CONTACTFORM_PATH"`
	// Key to authenticate session cookies.
	SessionAuthKey string `env:"CONTACTFORM_SESSION_AUTH_KEY"`
	// SessionName is the name of the session cookie.
	SessionName string `env:"CONTACTFORM_SESSION_NAME"`
}

// Settings holds the settings of the contact form worker.
type Settings struct {
	// Listen is the TCP address to serve HTTP requests on.
	Listen string `env:"CONTACTFORM_LISTEN"`
	// Absolute paths to used directories.
	Directories struct {
		// Configuration directory
		Config string
		// Shared data directory
		Share string `env:"CONTACTFORM_SHARE_DIR"`
		// Site templates overriding the shared ones. Optional.
		SiteTemplates string `env:"CONTACTFORM_SITE_TEMPLATES_DIR"`
	}
	Site Site
}

// GetTemplatesPath returns the path to the global templates directory.
func (s Settings) GetTemplatesPath() string {
	return filepath.Join(s.Directories.Share, "templates")
}

// setDefaults fills unset optional values.
func (s *Settings) setDefaults() {
	if len(s.Listen) == 0 {
		s.Listen = "localhost:8080"
	}
	if len(s.Site.Title) == 0 {
		s.Site.Title = "Contact Form"
	}
	if len(s.Site.Path) == 0 {
		s.Site.Path = "/"
	}
	if len(s.Site.SessionName) == 0 {
		s.Site.SessionName = "contactform-session"
	}
}

// LoadSettings loads the worker's configuration.
//
// cfgPath is the path to the configuration directory containing
// contactform.yaml. Values of the environment variables named in the
// struct tags override the file's values.
//
// Relative directories of the file are taken relative to cfgPath, those of
// the environment relative to the working directory.
func LoadSettings(cfgPath string) (*Settings, error) {
	var settings Settings
	path := filepath.Join(cfgPath, "contactform.yaml")
	if err := yaml.Parse(path, &settings); err != nil {
		return nil, fmt.Errorf("settings: Could not parse settings: %v", err)
	}
	MakeAbsolute(&settings.Directories.Share, cfgPath)
	MakeAbsolute(&settings.Directories.SiteTemplates, cfgPath)
	if err := env.Parse(&settings); err != nil {
		return nil, fmt.Errorf("settings: Could not parse environment: %v", err)
	}
	for _, dir := range []*string{&settings.Directories.Share,
		&settings.Directories.SiteTemplates} {
		if len(*dir) == 0 || filepath.IsAbs(*dir) {
			continue
		}
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, fmt.Errorf("settings: Could not resolve %q: %v", *dir, err)
		}
		*dir = abs
	}
	settings.Directories.Config = cfgPath
	settings.setDefaults()
	if len(settings.Site.SessionAuthKey) == 0 {
		return nil, fmt.Errorf(`settings: Missing "SessionAuthKey" setting.`)
	}
	return &settings, nil
}
