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

// Command a11ybridged is the process wiring for the accessibility
// bridge: it owns the object registry, the lifecycle bridge, the
// screen-reader orchestrator and the diagnostic inspector, and drives
// them from the host's environment and a single main goroutine.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/a11ybridged/bridge/atspi"
	"github.com/a11ybridged/bridge/bridge"
	"github.com/a11ybridged/bridge/inspector"
	"github.com/a11ybridged/bridge/platform"
	"github.com/a11ybridged/bridge/reading"
	"github.com/a11ybridged/bridge/registry"
	"github.com/a11ybridged/bridge/screenreader"
	"github.com/a11ybridged/bridge/tts"
)

// settingsFromEnv reads the bridge's runtime conditions from the
// environment once at startup, following the teacher's convention of
// a mockable SettingsProvider rather than persisted configuration
// (Non-goals).
func settingsFromEnv() bridge.Inputs {
	return bridge.Inputs{
		A11yEnabled:         os.Getenv("DALI_DISABLE_ATSPI") == "",
		ScreenReaderEnabled: os.Getenv("DALI_ENABLE_SCREEN_READER") != "",
		ApplicationRunning:  true,
		Suppressed:          os.Getenv("DALI_SUPPRESS_SCREEN_READER") != "",
	}
}

// logEngine is a logging-only stand-in for the concrete TTS
// synthesizer the Non-goals explicitly exclude: it reports what it
// would have spoken/stopped/paused rather than driving real audio.
type logEngine struct{ nextID tts.CommandID }

func (e *logEngine) Speak(text string, discardable bool) tts.CommandID {
	e.nextID++
	platform.Log(platform.Info, "tts: speak %q (discardable=%v)", text, discardable)
	return e.nextID
}

func (e *logEngine) Stop() {
	platform.Log(platform.Info, "tts: stop")
}

func (e *logEngine) Pause() bool {
	platform.Log(platform.Info, "tts: pause")
	return true
}

func (e *logEngine) Resume() bool {
	platform.Log(platform.Info, "tts: resume")
	return true
}

func (e *logEngine) Purge(onlyDiscardable bool) {
	platform.Log(platform.Info, "tts: purge (onlyDiscardable=%v)", onlyDiscardable)
}

var _ tts.Engine = (*logEngine)(nil)

// logFeedback is the Non-goals-excluded audio/haptic driver's logging
// stand-in: it reports which cue would have played.
type logFeedback struct{}

func (logFeedback) Play(sound screenreader.Sound) {
	platform.Log(platform.Info, "feedback: play sound %d", sound)
}

var _ screenreader.FeedbackPlayer = logFeedback{}

func run(ctx context.Context) error {
	pid := os.Getpid()
	appName := "a11ybridged"

	app := registry.NewApplicationAccessible(0, appName)
	reg := registry.New(app, func(w registry.Accessible) {
		platform.Log(platform.Info, "window %d destroyed", w.ID())
	})

	callbacks := platform.StandardCallbacks()
	callbacks.GetAppName = func() string { return appName }

	busName := atspi.MakeBusNameForWidget(appName, pid)
	embed := bridge.SocketEmbed(appName, pid)

	backendAvailable := os.Getenv("DALI_DISABLE_ATSPI") == ""
	b := bridge.New(bridge.NewDBusBackend(backendAvailable), reg, busName, embed, callbacks)

	if monitor, err := bridge.NewLogin1SuspendMonitor(); err != nil {
		platform.Log(platform.Warning, "suspend monitor unavailable: %v", err)
	} else {
		b.WatchSuspend(ctx, monitor)
	}

	if err := b.Initialize(ctx, settingsFromEnv()); err != nil {
		return fmt.Errorf("a11ybridged: initialize: %w", err)
	}
	defer b.Stop()

	engine := &logEngine{}
	queue := tts.NewQueue(engine)

	cfg := reading.Config{SuppressTouchHints: false, IncludeTVTraits: false}
	settings := screenreader.Settings{SoundFeedbackEnabled: true}
	orchestrator := screenreader.New(screenreader.VariantPhone, cfg, queue, logFeedback{}, settings)
	// No UI toolkit glue is wired here (Non-goals): orchestrator sits
	// ready for a host to call OnEvent/OnGesture/OnKey once it supplies
	// one, the same capability-injection boundary platform.Callbacks
	// draws for idle/timer hooks.
	platform.Log(platform.Info, "screen-reader orchestrator ready, no active window yet (current=%v)", orchestrator.Current())

	source := newRegistrySource(reg, app)
	srv := inspector.NewServer(source)
	if addr := os.Getenv("A11YBRIDGED_INSPECTOR_ADDR"); addr != "" {
		if err := srv.Start(addr); err != nil {
			platform.Log(platform.Warning, "inspector: failed to start on %s: %v", addr, err)
		} else {
			platform.Log(platform.Info, "inspector: serving on %s", addr)
			defer srv.Stop(ctx)
		}
	}

	platform.Log(platform.Info, "a11ybridged: running as pid %d", pid)
	<-ctx.Done()
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
