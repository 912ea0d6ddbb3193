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

// Package screenreader is the orchestrator: it extends bare navigation
// with TTS, audio feedback and the event/gesture/key policy, including
// a TV variant that suppresses gestures and feedback entirely.
package screenreader

import (
	"context"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/nodeproxy"
	"github.com/a11ybridged/bridge/reading"
	"github.com/a11ybridged/bridge/tts"
)

// Sound names the feedback cue a gesture or event may request.
type Sound int

const (
	SoundHighlightActionable Sound = iota
	SoundHighlight
	SoundWindowStateChange
	SoundAction
	SoundFocusChainEnd
)

// FeedbackPlayer plays a named audio cue; Non-goals (§4 SPEC_FULL) keep
// this an interface only — no concrete audio driver ships here.
type FeedbackPlayer interface {
	Play(kind Sound)
}

// Event is one incoming AT event (§4.H "on-event").
type Event struct {
	Kind    string // "STATE_CHANGED", "PROPERTY_CHANGED", "WINDOW_CHANGED", ...
	Detail  string
	Detail1 int32
	Source  nodeproxy.NodeProxy
}

// Gesture names one recognized touch gesture (§4.H "on-gesture" and the
// SUPPLEMENTED ONE_FINGER_SINGLE_TAP point-hit-testing wiring).
type Gesture int

const (
	GestureOneFingerFlickRight Gesture = iota
	GestureOneFingerFlickLeft
	GestureOneFingerDoubleTap
	GestureTwoFingersSingleTap
	GestureThreeFingersSingleTap
	GestureOneFingerSingleTap
)

// Variant selects the phone vs. TV orchestrator policy (§4.H).
type Variant int

const (
	VariantPhone Variant = iota
	VariantTV
)

// Settings is the mutable subset of user preferences the orchestrator
// consults; a settings store is explicitly out of scope (§4 Non-goals),
// so this is populated by whatever owns the process.
type Settings struct {
	SoundFeedbackEnabled bool
}

// Orchestrator drives one active window's navigation cursor, TTS queue
// and feedback in response to events, gestures and keys.
type Orchestrator struct {
	variant  Variant
	settings Settings
	feedback FeedbackPlayer
	queue    *tts.Queue
	cfg      reading.Config

	activeWindow nodeproxy.NodeProxy
	current      nodeproxy.NodeProxy
}

// New returns an Orchestrator for variant, reading-composing with cfg
// (callers pass reading.Config{SuppressTouchHints: true,
// IncludeTVTraits: true} for the TV variant per §4.H), speaking via
// queue and signaling via feedback.
func New(variant Variant, cfg reading.Config, queue *tts.Queue, feedback FeedbackPlayer, settings Settings) *Orchestrator {
	return &Orchestrator{variant: variant, cfg: cfg, queue: queue, feedback: feedback, settings: settings}
}

// SetActiveWindow sets the root used for review-from-top and
// point-hit-testing gestures.
func (o *Orchestrator) SetActiveWindow(w nodeproxy.NodeProxy) { o.activeWindow = w }

// Current returns the navigation cursor's current node, if any.
func (o *Orchestrator) Current() nodeproxy.NodeProxy { return o.current }

func (o *Orchestrator) play(kind Sound) {
	if o.variant == VariantTV || o.feedback == nil || !o.settings.SoundFeedbackEnabled {
		return
	}
	o.feedback.Play(kind)
}

// highlightDetail is the STATE_CHANGED detail string this variant's
// event policy reacts to: "highlighted" on phone, "focused" on TV.
func (o *Orchestrator) highlightDetail() string {
	if o.variant == VariantTV {
		return "focused"
	}
	return "highlighted"
}

// OnEvent implements §4.H's on-event policy.
func (o *Orchestrator) OnEvent(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case "STATE_CHANGED":
		if ev.Detail != o.highlightDetail() || ev.Detail1 != 1 {
			return nil
		}
		o.current = ev.Source
		if err := o.readNode(ctx, ev.Source); err != nil {
			return err
		}
		states, err := ev.Source.States(ctx)
		if err != nil {
			return err
		}
		if states.Has(accessible.StateFocusable) {
			o.play(SoundHighlightActionable)
		} else {
			o.play(SoundHighlight)
		}
		return nil
	case "PROPERTY_CHANGED":
		o.current = ev.Source
		return o.readNode(ctx, ev.Source)
	case "WINDOW_CHANGED":
		o.play(SoundWindowStateChange)
		return nil
	default:
		return nil
	}
}

// OnGesture implements §4.H's on-gesture policy plus the SUPPLEMENTED
// point-hit-testing wiring for ONE_FINGER_SINGLE_TAP. The TV variant
// omits gesture handling entirely.
func (o *Orchestrator) OnGesture(ctx context.Context, g Gesture, x, y int32) error {
	if o.variant == VariantTV {
		return nil
	}
	switch g {
	case GestureOneFingerFlickRight:
		return o.navigate(ctx, true)
	case GestureOneFingerFlickLeft:
		return o.navigate(ctx, false)
	case GestureOneFingerDoubleTap:
		if o.current == nil {
			return nil
		}
		if _, err := o.current.DoActionByName(ctx, "activate"); err != nil {
			return err
		}
		o.play(SoundAction)
		return nil
	case GestureTwoFingersSingleTap:
		if o.queue.Paused() {
			o.queue.Resume()
		} else {
			o.queue.Pause()
		}
		return nil
	case GestureThreeFingersSingleTap:
		return o.reviewFromTop(ctx)
	case GestureOneFingerSingleTap:
		return o.navigateToPoint(ctx, x, y)
	default:
		return nil
	}
}

// OnKey implements §4.H's key policy.
func (o *Orchestrator) OnKey(ctx context.Context, key string) error {
	switch key {
	case "Back":
		return o.navigate(ctx, false)
	case "Power":
		o.queue.PurgeAll()
		return nil
	default:
		return nil
	}
}

func (o *Orchestrator) navigate(ctx context.Context, forward bool) error {
	if o.activeWindow == nil || o.current == nil {
		return nil
	}
	next, err := nodeproxy.Neighbor(ctx, o.activeWindow, o.current, forward, nodeproxy.ModeNormal, false)
	if err != nil {
		return err
	}
	if next == nil {
		o.play(SoundFocusChainEnd)
		return nil
	}
	o.current = next
	if err := o.readNode(ctx, next); err != nil {
		return err
	}
	o.play(SoundHighlight)
	return nil
}

// reviewFromTop re-navigates to the first highlightable descendant of
// the active window and reads it ("review from top").
func (o *Orchestrator) reviewFromTop(ctx context.Context) error {
	if o.activeWindow == nil {
		return nil
	}
	first, err := nodeproxy.Neighbor(ctx, o.activeWindow, o.activeWindow, true, nodeproxy.ModeRecurseFromRoot, false)
	if err != nil {
		return err
	}
	if first == nil {
		return nil
	}
	o.current = first
	return o.readNode(ctx, first)
}

// navigateToPoint implements the SUPPLEMENTED ONE_FINGER_SINGLE_TAP
// wiring: hit-test the active window at (x, y) and read whatever is
// found, mirroring the flick gestures' read+feedback pattern.
func (o *Orchestrator) navigateToPoint(ctx context.Context, x, y int32) error {
	if o.activeWindow == nil {
		return nil
	}
	hit, err := nodeproxy.NavigableAtPoint(ctx, o.activeWindow, x, y, nodeproxy.CoordScreen)
	if err != nil {
		return err
	}
	if hit == nil {
		o.play(SoundFocusChainEnd)
		return nil
	}
	o.current = hit
	if err := o.readNode(ctx, hit); err != nil {
		return err
	}
	o.play(SoundHighlight)
	return nil
}

// readNode fetches proxy's reading material in one batch, composes it,
// and enqueues it discardable+interrupting (§4.H "read-node").
func (o *Orchestrator) readNode(ctx context.Context, proxy nodeproxy.NodeProxy) error {
	if proxy == nil {
		return nil
	}
	rm, err := proxy.ReadingMaterial(ctx)
	if err != nil {
		return err
	}
	text := reading.Compose(rm, o.cfg)
	o.queue.Enqueue(text, tts.SpeakOptions{Discardable: true, Interrupt: true})
	return nil
}
