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

// Package tts is a driver-agnostic policy layer over a single Engine
// capability: it chunks long utterances on word boundaries, keeps
// at-most-one command in flight, and supports discardable/
// non-discardable purge semantics and pause/resume.
package tts

import "strings"

// DefaultMaxChunkSize is the default chunk length cap (characters).
const DefaultMaxChunkSize = 300

// CommandID identifies one queued or in-flight command.
type CommandID uint64

// SpeakOptions qualifies one enqueue call.
type SpeakOptions struct {
	Discardable bool
	Interrupt   bool
}

// Engine is the external TTS driver capability. Implementations may
// fail pause/resume/purge silently; Queue swallows those failures per
// the EngineError policy (§7).
type Engine interface {
	Speak(text string, discardable bool) CommandID
	Stop()
	Pause() bool
	Resume() bool
	Purge(onlyDiscardable bool)
}

type command struct {
	id          CommandID
	text        string
	discardable bool
}

// Queue is the command queue described in §4.G: a FIFO of pending
// commands with at-most-one in flight, chunked on enqueue.
type Queue struct {
	engine       Engine
	maxChunkSize int

	pending    []command
	nextID     CommandID
	speaking   bool
	paused     bool
	inFlightID CommandID
}

// NewQueue returns an empty Queue driving engine, chunking at
// DefaultMaxChunkSize characters.
func NewQueue(engine Engine) *Queue {
	return &Queue{engine: engine, maxChunkSize: DefaultMaxChunkSize}
}

// SetMaxChunkSize overrides the chunk length cap; zero or negative
// values are ignored.
func (q *Queue) SetMaxChunkSize(n int) {
	if n > 0 {
		q.maxChunkSize = n
	}
}

// Enqueue chunks text on word boundaries and queues each non-empty
// chunk as a command carrying opts.Discardable. Empty text is ignored.
// If opts.Interrupt, PurgeDiscardable runs first. If nothing is
// currently speaking or paused, the next command starts immediately.
func (q *Queue) Enqueue(text string, opts SpeakOptions) {
	if text == "" {
		return
	}
	if opts.Interrupt {
		q.PurgeDiscardable()
	}
	for _, chunk := range chunkText(text, q.maxChunkSize) {
		if chunk == "" {
			continue
		}
		q.nextID++
		q.pending = append(q.pending, command{id: q.nextID, text: chunk, discardable: opts.Discardable})
	}
	if !q.speaking && !q.paused {
		q.startNext()
	}
}

// chunkText splits text into segments of at most max characters,
// preferring to split at the rightmost space within range; if none
// exists it force-splits at max.
func chunkText(text string, max int) []string {
	var chunks []string
	for len(text) > 0 {
		if len(text) <= max {
			chunks = append(chunks, text)
			break
		}
		splitAt := strings.LastIndexByte(text[:max], ' ')
		if splitAt < 0 {
			chunks = append(chunks, text[:max])
			text = text[max:]
			continue
		}
		chunks = append(chunks, text[:splitAt])
		text = text[splitAt+1:]
	}
	return chunks
}

// PurgeDiscardable asks the engine to purge discardable commands,
// drops discardable entries from the pending queue, stops any
// currently speaking command, and starts the next remaining command
// if the queue is non-empty and not paused.
func (q *Queue) PurgeDiscardable() {
	q.engine.Purge(true)

	kept := q.pending[:0]
	for _, cmd := range q.pending {
		if !cmd.discardable {
			kept = append(kept, cmd)
		}
	}
	q.pending = kept

	if q.speaking {
		q.engine.Stop()
		q.speaking = false
	}
	if len(q.pending) > 0 && !q.paused {
		q.startNext()
	}
}

// PurgeAll stops the engine and clears the queue, including
// non-discardable commands.
func (q *Queue) PurgeAll() {
	q.engine.Stop()
	q.pending = nil
	q.speaking = false
}

// Pause sets the paused flag and, if currently speaking, forwards
// Pause to the engine.
func (q *Queue) Pause() {
	q.paused = true
	if q.speaking {
		q.engine.Pause()
	}
}

// Resume clears the paused flag, forwards Resume to the engine if
// currently speaking, and starts the next command if idle with work
// pending.
func (q *Queue) Resume() {
	q.paused = false
	if q.speaking {
		q.engine.Resume()
		return
	}
	if len(q.pending) > 0 {
		q.startNext()
	}
}

// OnCompleted is invoked by the engine when command id finishes. If id
// matches the in-flight command, the speaking flag clears and the
// next command starts unless paused or empty.
func (q *Queue) OnCompleted(id CommandID) {
	if !q.speaking || id != q.inFlightID {
		return
	}
	q.speaking = false
	if !q.paused && len(q.pending) > 0 {
		q.startNext()
	}
}

func (q *Queue) startNext() {
	if len(q.pending) == 0 {
		return
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	q.inFlightID = q.engine.Speak(next.text, next.discardable)
	q.speaking = true
}

// Paused reports the current paused flag, for tests and diagnostics.
func (q *Queue) Paused() bool { return q.paused }

// Speaking reports whether a command is currently in flight.
func (q *Queue) Speaking() bool { return q.speaking }

// PendingLen reports the number of queued-but-not-in-flight commands.
func (q *Queue) PendingLen() int { return len(q.pending) }
