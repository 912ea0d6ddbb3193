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

// Package inspector is a read-only HTTP diagnostic surface over a live
// accessible tree: a single HTML page plus a small JSON API for
// dumping the tree, inspecting one element and driving navigation.
// Every request takes the source's lock for the duration of one
// snapshot or navigation step and releases it before writing the
// response, so it never holds the lock across a network write.
package inspector

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
)

// ElementInfo is the detailed view of one accessible returned by
// GET /api/element/{id}.
type ElementInfo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Description  string `json:"description"`
	States       string `json:"states"`
	BoundsX      int32  `json:"boundsX"`
	BoundsY      int32  `json:"boundsY"`
	BoundsWidth  int32  `json:"boundsWidth"`
	BoundsHeight int32  `json:"boundsHeight"`
	ChildCount   int    `json:"childCount"`
	ChildIDs     []int  `json:"childIds"`
	ParentID     int    `json:"parentId"`
}

// TreeNode is one node of the tree returned by GET /api/tree.
type TreeNode struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	ChildCount int        `json:"childCount"`
	Children   []TreeNode `json:"children"`
}

// Source is the data backend the inspector queries; ProxySource
// implements it over a live nodeproxy tree, and tests substitute a
// plain in-memory fake.
type Source interface {
	RootID() int
	FocusedID() int
	SetFocusedID(id int)
	ElementInfo(ctx context.Context, id int) (ElementInfo, error)
	Tree(ctx context.Context, rootID int) (TreeNode, error)
	Navigate(ctx context.Context, currentID int, forward bool) (int, error)
	NavigateChild(ctx context.Context, currentID int) (int, error)
	NavigateParent(ctx context.Context, currentID int) (int, error)
}

// Server is the embeddable HTTP server: a background net/http.Server
// routed by gorilla/mux, serving a single Source under a short
// exclusive lock per request (§5 "sole exception" to the bridge's
// single-task scheduling model).
type Server struct {
	source Source

	mu     sync.Mutex
	server *http.Server
}

// NewServer returns a Server that queries source.
func NewServer(source Source) *Server {
	s := &Server{source: source}
	router := mux.NewRouter()
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/api/tree", s.handleTree).Methods(http.MethodGet)
	router.HandleFunc("/api/element/{id:[0-9]+}", s.handleElement).Methods(http.MethodGet)
	router.HandleFunc("/api/navigate", s.handleNavigate).Methods(http.MethodPost)
	s.server = &http.Server{Handler: router}
	return s
}

// Start listens on addr (e.g. ":8080") and serves in the background.
// Errors from a stopped listener are not reported; call Stop to shut
// down cleanly.
func (s *Server) Start(addr string) error {
	ln, err := newListener(addr)
	if err != nil {
		return err
	}
	s.server.Addr = addr
	go s.server.Serve(ln)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the routed http.Handler directly, for tests that
// drive requests through httptest without opening a real listener.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tree, err := s.source.Tree(r.Context(), s.source.RootID())
	focused := s.source.FocusedID()
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		FocusedID int      `json:"focusedId"`
		Tree      TreeNode `json:"tree"`
	}{FocusedID: focused, Tree: tree})
}

func (s *Server) handleElement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	info, err := s.source.ElementInfo(r.Context(), id)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, info)
}

type navigateRequest struct {
	Direction string `json:"direction"`
}

type navigateResponse struct {
	FocusedID int         `json:"focusedId"`
	Changed   bool        `json:"changed"`
	Element   ElementInfo `json:"element"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()

	current := s.source.FocusedID()
	newID := current
	var err error
	switch req.Direction {
	case "next":
		newID, err = s.source.Navigate(r.Context(), current, true)
	case "prev":
		newID, err = s.source.Navigate(r.Context(), current, false)
	case "child":
		newID, err = s.source.NavigateChild(r.Context(), current)
	case "parent":
		newID, err = s.source.NavigateParent(r.Context(), current)
	}
	if err != nil {
		s.mu.Unlock()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.source.SetFocusedID(newID)
	info, err := s.source.ElementInfo(r.Context(), newID)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, navigateResponse{FocusedID: newID, Changed: newID != current, Element: info})
}
