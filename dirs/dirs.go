// Copyright (C) 2026 a11ybridged contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License version 3 as
// published by the Free Software Foundation.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package dirs holds two filesystem locations, the session-bus address
// file and the screen-reader enabled-state flag file, both relative to
// a mockable root directory. No other package of this module reads
// them.
package dirs

import (
	"fmt"
	"path/filepath"
	"strings"
)

var (
	rootDir string

	// SessionBusAddressFile is where the well-known broker (§4.D step 2)
	// publishes the AT bus address when no D-Bus activation is available.
	SessionBusAddressFile string

	// ScreenReaderStateFile is the location of the last-known
	// screen-reader-enabled flag file.
	ScreenReaderStateFile string
)

func init() {
	SetRootDir("")
}

// SetRootDir rewrites every path this package exposes to be rooted
// under root (the empty string resets to "/"), the way test suites
// isolate filesystem state without touching the real system.
func SetRootDir(root string) {
	if root == "" {
		root = "/"
	}
	rootDir = root
	SessionBusAddressFile = filepath.Join(rootDir, "run/user/a11ybridged/at-bus-address")
	ScreenReaderStateFile = filepath.Join(rootDir, "var/lib/a11ybridged/screen-reader-enabled")
}

// RootDir returns the current mockable root.
func RootDir() string { return rootDir }

// StripRootDir removes the current root prefix from an absolute path,
// panicking if path is not absolute or not under the root — the same
// contract as the teacher's helper of the same name.
func StripRootDir(path string) string {
	if !filepath.IsAbs(path) {
		panic(fmt.Sprintf("supplied path is not absolute %q", path))
	}
	if rootDir == "/" {
		return path
	}
	if !strings.HasPrefix(path, rootDir) {
		panic(fmt.Sprintf("supplied path is not related to global root %q", path))
	}
	stripped := strings.TrimPrefix(path, rootDir)
	if stripped == "" {
		return "/"
	}
	if !strings.HasPrefix(stripped, "/") {
		stripped = "/" + stripped
	}
	return stripped
}
