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

/*
 Monsti is a simple and resource efficient CMS.

 This package implements the contact form worker. It serves a contact form
 and shows the submitted values once the form validates.
*/
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/sessions"
	msettings "pkg.monsti.org/contactform/api/util/settings"
	"pkg.monsti.org/contactform/api/util/template"
)

// formMaxAge is how long form instances and their session cookies are kept.
const formMaxAge = 30 * 24 * time.Hour

// newCookieStore returns the store keeping the ids of the visitors' form
// instances.
func newCookieStore(settings *msettings.Settings) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(settings.Site.SessionAuthKey))
	store.Options.Path = settings.Site.Path
	store.Options.MaxAge = int(formMaxAge / time.Second)
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// newMux returns the worker's HTTP routes.
func newMux(handler *contactFormHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/static/", http.FileServer(http.Dir(
		handler.Settings.Directories.Share)))
	mux.Handle(handler.Settings.Site.Path, handler)
	return mux
}

func main() {
	logger := log.New(os.Stderr, "contactform ", log.LstdFlags)

	// Load configuration
	flag.Parse()
	if flag.NArg() != 1 {
		logger.Fatalf("Usage: %v <config_directory>\n",
			filepath.Base(os.Args[0]))
	}
	cfgPath := msettings.GetConfigPath(flag.Arg(0))
	settings, err := msettings.LoadSettings(cfgPath)
	if err != nil {
		logger.Fatal("Could not load settings: ", err)
	}

	handler := contactFormHandler{
		Renderer: template.Renderer{Root: settings.GetTemplatesPath()},
		Settings: settings,
		Log:      logger,
		Store:    newCookieStore(settings),
		Forms:    newFormStore(formMaxAge),
	}
	logger.Printf("Serving contact form at %q, listening on %q.",
		settings.Site.Path, settings.Listen)
	if err := http.ListenAndServe(settings.Listen, newMux(&handler)); err != nil {
		logger.Fatal("HTTP Listener failed: ", err)
	}
}
