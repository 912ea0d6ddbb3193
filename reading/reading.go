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

// Package reading composes the spoken string for one ReadingMaterial
// snapshot: a pure function of (material, Config), with no IO and no
// dependency on a live proxy.
package reading

import (
	"strconv"

	"github.com/a11ybridged/bridge/accessible"
)

// Config carries the two composer profile knobs named in §4.F: the TV
// variant suppresses touch hints and includes TV-only traits.
type Config struct {
	SuppressTouchHints bool
	IncludeTVTraits    bool
}

var roleTraits = map[accessible.Role]string{
	accessible.RolePushButton:   "Button",
	accessible.RoleCheckBox:     "Check box",
	accessible.RoleRadioButton:  "Radio button",
	accessible.RoleToggleButton: "Toggle button",
	accessible.RoleSlider:       "Slider",
	accessible.RoleProgressBar:  "Progress bar",
	accessible.RoleSpinButton:   "Spin button",
	accessible.RoleEntry:        "Edit field",
	accessible.RolePasswordText: "Password field",
	accessible.RoleLabel:        "Label",
	accessible.RoleList:         "List",
	accessible.RoleListItem:     "List item",
	accessible.RoleMenu:         "Menu",
	accessible.RoleMenuItem:     "Menu item",
	accessible.RoleMenuBar:      "Menu bar",
	accessible.RolePageTab:      "Tab",
	accessible.RolePageTabList:  "Tab bar",
	accessible.RoleComboBox:     "Combo box",
	accessible.RoleDialog:       "Dialog",
	accessible.RoleAlert:        "Alert",
	accessible.RolePopupMenu:    "Popup menu",
	accessible.RoleToolTip:      "Tooltip",
	accessible.RoleToolBar:      "Toolbar",
	accessible.RoleStatusBar:    "Status bar",
	accessible.RoleTable:        "Table",
	accessible.RoleTableCell:    "Table cell",
	accessible.RoleTree:         "Tree",
	accessible.RoleScrollBar:    "Scroll bar",
	accessible.RoleSeparator:    "Separator",
	accessible.RoleHeading:      "Heading",
	accessible.RoleLink:         "Link",
	accessible.RoleImage:        "Image",
	accessible.RoleIcon:         "Icon",
	accessible.RoleNotification: "Notification",
	accessible.RoleWindow:       "Window",
	accessible.RolePanel:        "Panel",
}

func composeRoleTrait(rm accessible.ReadingMaterial) string {
	return roleTraits[rm.Role]
}

func joinTrait(result, piece string) string {
	if piece == "" {
		return result
	}
	if result == "" {
		return piece
	}
	return result + ", " + piece
}

func composeStateTrait(rm accessible.ReadingMaterial) string {
	var result string

	if rm.States.Has(accessible.StateCheckable) {
		if rm.States.Has(accessible.StateChecked) {
			result = joinTrait(result, "Checked")
		} else {
			result = joinTrait(result, "Not checked")
		}
	}
	if rm.States.Has(accessible.StateSelected) {
		result = joinTrait(result, "Selected")
	}
	if rm.States.Has(accessible.StateExpandable) {
		if rm.States.Has(accessible.StateExpanded) {
			result = joinTrait(result, "Expanded")
		} else {
			result = joinTrait(result, "Collapsed")
		}
	}
	if !rm.States.Has(accessible.StateEnabled) {
		result = joinTrait(result, "Disabled")
	}
	if rm.States.Has(accessible.StateReadOnly) && rm.States.Has(accessible.StateEditable) {
		result = joinTrait(result, "Read only")
	}
	if rm.States.Has(accessible.StateRequired) {
		result = joinTrait(result, "Required")
	}
	return result
}

func isActivatable(role accessible.Role) bool {
	switch role {
	case accessible.RolePushButton, accessible.RoleCheckBox, accessible.RoleRadioButton,
		accessible.RoleToggleButton, accessible.RoleLink:
		return true
	}
	return false
}

// composeDescriptionBody builds the item-count/value/description
// portion of the description trait, joined with ", "; the touch-hint
// suffix is handled separately by Compose since it joins against the
// whole accumulated string with ". " rather than against this body
// with ", ".
func composeDescriptionBody(rm accessible.ReadingMaterial, cfg Config) string {
	var result string

	if cfg.IncludeTVTraits {
		if rm.Role == accessible.RolePopupMenu && rm.ChildCount > 0 {
			result = joinTrait(result, strconv.Itoa(rm.ChildCount)+" items")
		}
		if rm.Role == accessible.RoleProgressBar {
			result = joinTrait(result, strconv.Itoa(int(rm.CurrentValue))+"%")
		}
	}

	if rm.Role == accessible.RoleSlider {
		value := rm.FormattedValue
		if value == "" {
			value = strconv.Itoa(int(rm.CurrentValue))
		}
		result = joinTrait(result, value)
	}

	if rm.Description != "" {
		result = joinTrait(result, rm.Description)
	}

	return result
}

func touchHint(rm accessible.ReadingMaterial, cfg Config) string {
	if cfg.SuppressTouchHints {
		return ""
	}
	switch {
	case isActivatable(rm.Role):
		return "Double tap to activate"
	case rm.Role == accessible.RoleSlider:
		return "Swipe up or down to adjust"
	default:
		return ""
	}
}

func joinWithPeriod(result, piece string) string {
	if piece == "" {
		return result
	}
	if result == "" {
		return piece
	}
	return result + ". " + piece
}

// Compose assembles the spoken string for rm under cfg: name (priority
// labeled-by > name > text-interface), role trait, state trait, and
// description body join with ", "; a trailing touch hint (activation
// or slider-adjust) joins against the whole accumulated string with
// ". " instead. Empty segments contribute nothing and never introduce
// a stray separator.
func Compose(rm accessible.ReadingMaterial, cfg Config) string {
	var result string

	name := rm.LabeledByName
	if name == "" {
		name = rm.Name
	}
	if name == "" {
		name = rm.TextInterfaceName
	}
	if name != "" {
		result = name
	}

	result = joinTrait(result, composeRoleTrait(rm))
	result = joinTrait(result, composeStateTrait(rm))
	result = joinTrait(result, composeDescriptionBody(rm, cfg))
	result = joinWithPeriod(result, touchHint(rm, cfg))

	return result
}
