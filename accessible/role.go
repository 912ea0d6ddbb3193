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

// Package accessible holds the wire-level data model shared by every
// accessibility component: roles, states, addresses and the batch
// snapshots (ReadingMaterial, NodeInfo) exchanged with remote proxies.
package accessible

// Role is a closed, serialized-as-uint16 categorical UI role. The
// enumeration is exhaustive: RoleName is total over it.
type Role uint16

const (
	RoleInvalid Role = iota
	RoleAcceleratorLabel
	RoleAlert
	RoleAnimation
	RoleArrow
	RoleCalendar
	RoleCanvas
	RoleCheckBox
	RoleCheckMenuItem
	RoleColorChooser
	RoleColumnHeader
	RoleComboBox
	RoleDateEditor
	RoleDesktopFrame
	RoleDesktopIcon
	RoleDial
	RoleDialog
	RoleDirectoryPane
	RoleDrawingArea
	RoleFileChooser
	RoleFiller
	RoleFocusTraversable
	RoleFontChooser
	RoleFrame
	RoleGlassPane
	RoleHTMLContainer
	RoleIcon
	RoleImage
	RoleInternalFrame
	RoleLabel
	RoleLayeredPane
	RoleList
	RoleListItem
	RoleMenu
	RoleMenuBar
	RoleMenuItem
	RoleOptionPane
	RolePageTab
	RolePageTabList
	RolePanel
	RolePasswordText
	RolePopupMenu
	RoleProgressBar
	RolePushButton
	RoleRadioButton
	RoleRadioMenuItem
	RoleRootPane
	RoleRowHeader
	RoleScrollBar
	RoleScrollPane
	RoleSeparator
	RoleSlider
	RoleSpinButton
	RoleSplitPane
	RoleStatusBar
	RoleTable
	RoleTableCell
	RoleTableColumnHeader
	RoleTableRowHeader
	RoleTearoffMenuItem
	RoleTerminal
	RoleText
	RoleToggleButton
	RoleToolBar
	RoleToolTip
	RoleTree
	RoleTreeTable
	RoleUnknown
	RoleViewport
	RoleWindow
	RoleExtended
	RoleHeader
	RoleFooter
	RoleParagraph
	RoleRuler
	RoleApplication
	RoleAutocomplete
	RoleEditbar
	RoleEmbedded
	RoleEntry
	RoleChart
	RoleCaption
	RoleDocumentFrame
	RoleHeading
	RoleOptionPage
	RoleComment
	RoleListBox
	RoleGrouping
	RoleImageMap
	RoleNotification
	RoleInfoBar
	RoleLevelBar
	RoleTitleBar
	RoleBlockQuote
	RoleAudio
	RoleVideo
	RoleDefinition
	RoleArticle
	RoleLandmark
	RoleLog
	RoleMarquee
	RoleMath
	RoleRating
	RoleTimer
	RoleStatic
	RoleMathFraction
	RoleMathRoot
	RoleSubscript
	RoleSuperscript
	RoleDescriptionList
	RoleDescriptionTerm
	RoleDescriptionValue
	RoleFootnote
	RoleContentDeletion
	RoleContentInsertion
	RoleMark
	RoleSuggestion
	RolePushButtonMenu
	RoleLink
	RoleSocket
	RoleLast // sentinel; not a valid role, bounds the closed enumeration
)

var roleNames = [...]string{
	RoleInvalid:           "invalid",
	RoleAcceleratorLabel:  "accelerator label",
	RoleAlert:             "alert",
	RoleAnimation:         "animation",
	RoleArrow:             "arrow",
	RoleCalendar:          "calendar",
	RoleCanvas:            "canvas",
	RoleCheckBox:          "check box",
	RoleCheckMenuItem:     "check menu item",
	RoleColorChooser:      "color chooser",
	RoleColumnHeader:      "column header",
	RoleComboBox:          "combo box",
	RoleDateEditor:        "date editor",
	RoleDesktopFrame:      "desktop frame",
	RoleDesktopIcon:       "desktop icon",
	RoleDial:              "dial",
	RoleDialog:            "dialog",
	RoleDirectoryPane:     "directory pane",
	RoleDrawingArea:       "drawing area",
	RoleFileChooser:       "file chooser",
	RoleFiller:            "filler",
	RoleFocusTraversable:  "focus traversable",
	RoleFontChooser:       "font chooser",
	RoleFrame:             "frame",
	RoleGlassPane:         "glass pane",
	RoleHTMLContainer:     "html container",
	RoleIcon:              "icon",
	RoleImage:             "image",
	RoleInternalFrame:     "internal frame",
	RoleLabel:             "label",
	RoleLayeredPane:       "layered pane",
	RoleList:              "list",
	RoleListItem:          "list item",
	RoleMenu:              "menu",
	RoleMenuBar:           "menu bar",
	RoleMenuItem:          "menu item",
	RoleOptionPane:        "option pane",
	RolePageTab:           "page tab",
	RolePageTabList:       "page tab list",
	RolePanel:             "panel",
	RolePasswordText:      "password text",
	RolePopupMenu:         "popup menu",
	RoleProgressBar:       "progress bar",
	RolePushButton:        "push button",
	RoleRadioButton:       "radio button",
	RoleRadioMenuItem:     "radio menu item",
	RoleRootPane:          "root pane",
	RoleRowHeader:         "row header",
	RoleScrollBar:         "scroll bar",
	RoleScrollPane:        "scroll pane",
	RoleSeparator:         "separator",
	RoleSlider:            "slider",
	RoleSpinButton:        "spin button",
	RoleSplitPane:         "split pane",
	RoleStatusBar:         "status bar",
	RoleTable:             "table",
	RoleTableCell:         "table cell",
	RoleTableColumnHeader: "table column header",
	RoleTableRowHeader:    "table row header",
	RoleTearoffMenuItem:   "tearoff menu item",
	RoleTerminal:          "terminal",
	RoleText:              "text",
	RoleToggleButton:      "toggle button",
	RoleToolBar:           "tool bar",
	RoleToolTip:           "tool tip",
	RoleTree:              "tree",
	RoleTreeTable:         "tree table",
	RoleUnknown:           "unknown",
	RoleViewport:          "viewport",
	RoleWindow:            "window",
	RoleExtended:          "extended",
	RoleHeader:            "header",
	RoleFooter:            "footer",
	RoleParagraph:         "paragraph",
	RoleRuler:             "ruler",
	RoleApplication:       "application",
	RoleAutocomplete:      "autocomplete",
	RoleEditbar:           "editbar",
	RoleEmbedded:          "embedded",
	RoleEntry:             "entry",
	RoleChart:             "chart",
	RoleCaption:           "caption",
	RoleDocumentFrame:     "document frame",
	RoleHeading:           "heading",
	RoleOptionPage:        "option page",
	RoleComment:           "comment",
	RoleListBox:           "list box",
	RoleGrouping:          "grouping",
	RoleImageMap:          "image map",
	RoleNotification:      "notification",
	RoleInfoBar:           "info bar",
	RoleLevelBar:          "level bar",
	RoleTitleBar:          "title bar",
	RoleBlockQuote:        "block quote",
	RoleAudio:             "audio",
	RoleVideo:             "video",
	RoleDefinition:        "definition",
	RoleArticle:           "article",
	RoleLandmark:          "landmark",
	RoleLog:               "log",
	RoleMarquee:           "marquee",
	RoleMath:              "math",
	RoleRating:            "rating",
	RoleTimer:             "timer",
	RoleStatic:            "static",
	RoleMathFraction:      "math fraction",
	RoleMathRoot:          "math root",
	RoleSubscript:         "subscript",
	RoleSuperscript:       "superscript",
	RoleDescriptionList:   "description list",
	RoleDescriptionTerm:   "description term",
	RoleDescriptionValue:  "description value",
	RoleFootnote:          "footnote",
	RoleContentDeletion:   "content deletion",
	RoleContentInsertion:  "content insertion",
	RoleMark:              "mark",
	RoleSuggestion:        "suggestion",
	RolePushButtonMenu:    "push button menu",
	RoleLink:              "link",
	RoleSocket:            "socket",
}

// RoleName is total over the closed role enumeration: every value in
// [0, RoleLast) maps to a non-empty lowercase English phrase.
func RoleName(r Role) string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return ""
}

func (r Role) String() string {
	if name := RoleName(r); name != "" {
		return name
	}
	return "unknown role"
}
