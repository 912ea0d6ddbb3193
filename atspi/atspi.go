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

// Package atspi holds the canonical object paths, interface names and
// bus names of the AT bus protocol, shared by every package that
// speaks it.
package atspi

import (
	"strconv"
	"strings"
)

// Canonical object paths.
const (
	AccessiblePathPrefix = "/org/a11y/atspi/accessible/"
	RootPath             = AccessiblePathPrefix + "root"
	NullPath              = "/org/a11y/atspi/null"
	RegistryPath          = "/org/a11y/atspi/registry"
	CachePath             = "/org/a11y/atspi/cache"
	DeviceEventControllerPath = RegistryPath + "/deviceeventcontroller"
	StatusPath            = "/org/a11y/bus"
	DirectReadingPath      = "/org/tizen/DirectReading"
)

// Bus and interface names.
const (
	RegistryInterface      = "org.a11y.atspi.Registry"
	StatusBus              = "org.a11y.Bus"
	StatusInterface        = "org.a11y.Status"
	DirectReadingBus       = "org.tizen.ScreenReader"
	DirectReadingInterface = "org.tizen.DirectReading"
)

// Accessible-capability interface names, mirroring AT-SPI nomenclature.
const (
	IfaceAccessible            = "org.a11y.atspi.Accessible"
	IfaceAction                = "org.a11y.atspi.Action"
	IfaceApplication           = "org.a11y.atspi.Application"
	IfaceCache                 = "org.a11y.atspi.Cache"
	IfaceCollection            = "org.a11y.atspi.Collection"
	IfaceComponent             = "org.a11y.atspi.Component"
	IfaceDeviceEventController = "org.a11y.atspi.DeviceEventController"
	IfaceDocument              = "org.a11y.atspi.Document"
	IfaceEditableText          = "org.a11y.atspi.EditableText"
	IfaceHyperlink             = "org.a11y.atspi.Hyperlink"
	IfaceHypertext             = "org.a11y.atspi.Hypertext"
	IfaceImage                 = "org.a11y.atspi.Image"
	IfaceSelection             = "org.a11y.atspi.Selection"
	IfaceSocket                = "org.a11y.atspi.Socket"
	IfaceTable                 = "org.a11y.atspi.Table"
	IfaceTableCell             = "org.a11y.atspi.TableCell"
	IfaceText                  = "org.a11y.atspi.Text"
	IfaceValue                 = "org.a11y.atspi.Value"

	IfaceEventObject  = "org.a11y.atspi.Event.Object"
	IfaceEventWindow  = "org.a11y.atspi.Event.Window"
	IfaceEventFocus   = "org.a11y.atspi.Event.Focus"
)

// StripAccessiblePrefix removes AccessiblePathPrefix from path, returning
// the remainder and whether the prefix was present.
func StripAccessiblePrefix(path string) (string, bool) {
	if !strings.HasPrefix(path, AccessiblePathPrefix) {
		return "", false
	}
	return strings.TrimPrefix(path, AccessiblePathPrefix), true
}

// sanitizeChar reports whether r is allowed unescaped in a bus-name
// suffix ([A-Za-z0-9_-.]).
func sanitizeChar(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-' || r == '.':
		return true
	}
	return false
}

// MakeBusNameForWidget builds the socket bus-name suffix convention
// "elm.atspi.proxy.socket-<sanitized widget-id>-<pid>", replacing any
// character outside [A-Za-z0-9_-.] in widgetID with '_'.
func MakeBusNameForWidget(widgetID string, pid int) string {
	var b strings.Builder
	for _, r := range widgetID {
		if sanitizeChar(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return "elm.atspi.proxy.socket-" + b.String() + "-" + strconv.Itoa(pid)
}
