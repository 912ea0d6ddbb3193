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

package bridge

import (
	"context"
	"fmt"

	"github.com/a11ybridged/bridge/atspi"
	"github.com/a11ybridged/bridge/transport"
)

// SocketEmbed returns an EmbedFunc for the common case of a local UI
// toolkit root requesting its own socket name, following the
// elm.atspi.proxy.socket-<widget-id>-<pid> bus-name convention (§6).
// The registry's "Embed" method is called with that name and the
// returned parent address is handed back verbatim.
func SocketEmbed(widgetID string, pid int) EmbedFunc {
	busName := atspi.MakeBusNameForWidget(widgetID, pid)
	return func(ctx context.Context, client transport.Client) (string, error) {
		out, terr := client.Call(ctx, "Embed", busName)
		if terr != nil {
			return "", terr
		}
		if len(out) == 0 {
			return "", fmt.Errorf("bridge: Embed: empty reply")
		}
		addr, ok := out[0].(string)
		if !ok {
			return "", fmt.Errorf("bridge: Embed: unexpected reply shape")
		}
		return addr, nil
	}
}
