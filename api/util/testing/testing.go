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

// Package testing contains utility/convenience functions usable for testing.
package testing

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateDirectoryTree creates a temporary directory tree containing the given
// files and having the given prefix.
//
// Returns the path to the directory and a cleanup function which removes all
// files. If the tree could not be generated, the resulting error is set and
// the tree (if any) will be removed.
//
// The cleanup will panic if any error occurs.
//
//	files := map[string]string{
//	  "/templates/contactform/view.html": "<h1>{{.Title}}</h1>",
//	  "/contactform.yaml": "listen: localhost:8080"
//	}
//	root, cleanup, err := CreateDirectoryTree(files, "TestDoSomethingFunc")
//	if err != nil {
//	  panic("Could not create directory tree.")
//	}
//	defer cleanup()
func CreateDirectoryTree(files map[string]string, prefix string) (string,
	func(), error) {

	root, err := os.MkdirTemp("", "_contactform_"+prefix)
	if err != nil {
		return "", nil, fmt.Errorf("Could not create temp dir: %v", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(root); err != nil {
			panic(fmt.Sprint("Could not clean up: ", err))
		}
	}
	for path, content := range files {
		if err = os.MkdirAll(filepath.Join(root, filepath.Dir(path)), 0700); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("Could not create directory: %v", err)
		}
		if err = os.WriteFile(filepath.Join(root, path), []byte(content),
			0600); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("Could not write file: %v", err)
		}
	}
	return root, cleanup, nil
}
