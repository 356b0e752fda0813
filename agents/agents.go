// Copyright 2026 Lorekeep Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package agents contains the capability handlers (query, ingestion,
// summarization) and the dispatcher that routes input to them.
//
// Every handler entry point is total: it returns a Result envelope for
// any (action, input) pair, converting internal failures into
// success:false envelopes rather than letting errors escape.
package agents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/router"
)

// Result is the uniform envelope every handler returns.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
	Routing *RoutingInfo   `json:"routing,omitempty"`
}

// RoutingInfo records how an input was routed, attached by the dispatcher.
type RoutingInfo struct {
	AgentType  string  `json:"agent_type"`
	Action     string  `json:"action"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Handler is a capability handler: a total function from (action, input)
// to a Result envelope.
type Handler interface {
	// Process executes the action. It never returns an error; failures
	// are reported through the envelope.
	Process(ctx context.Context, action string, input map[string]any) *Result

	// Validate reports whether the input carries the fields the action
	// requires.
	Validate(action string, input map[string]any) bool

	// Capabilities lists the actions this handler supports.
	Capabilities() []string
}

// succeed builds a success envelope.
func succeed(data map[string]any, message string) *Result {
	return &Result{Success: true, Data: data, Message: message}
}

// fail builds a failure envelope naming the failing stage.
func fail(stage string, err error) *Result {
	return &Result{Success: false, Error: fmt.Sprintf("%s failed: %v", stage, err)}
}

// failMsg builds a failure envelope with a plain message.
func failMsg(msg string) *Result {
	return &Result{Success: false, Error: msg}
}

// unknownAction builds the failure envelope for an unsupported action.
func unknownAction(kind, action string) *Result {
	return failMsg(fmt.Sprintf("Unknown %s action: %s", kind, action))
}

// Dispatcher routes raw input through the router to the matching handler.
type Dispatcher struct {
	router   *router.Router
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher wiring the three capability handlers.
func NewDispatcher(r *router.Router, query, ingestion, summarization Handler) *Dispatcher {
	return &Dispatcher{
		router: r,
		handlers: map[string]Handler{
			router.AgentQuery:         query,
			router.AgentIngestion:     ingestion,
			router.AgentSummarization: summarization,
		},
		logger: slog.Default().With("component", "dispatcher"),
	}
}

// Process routes the raw input and invokes the chosen handler. The
// routing decision is attached to the returned envelope.
func (d *Dispatcher) Process(ctx context.Context, input string) *Result {
	decision := d.router.Route(ctx, input)

	if err := router.ValidateDecision(decision); err != nil {
		d.logger.Error("invalid routing decision", "err", err)
		return fail("routing", err)
	}

	handler, ok := d.handlers[decision.AgentType]
	if !ok || handler == nil {
		return failMsg(fmt.Sprintf("Unknown agent type: %s", decision.AgentType))
	}

	d.logger.Info("dispatching input",
		"agent_type", decision.AgentType,
		"action", decision.Action,
		"confidence", decision.Confidence)

	result := handler.Process(ctx, decision.Action, decision.InputData)
	result.Routing = &RoutingInfo{
		AgentType:  decision.AgentType,
		Action:     decision.Action,
		Confidence: decision.Confidence,
		Reasoning:  decision.Reasoning,
	}
	return result
}

// Handler returns the handler registered for an agent type, or nil.
func (d *Dispatcher) Handler(agentType string) Handler {
	return d.handlers[agentType]
}

// AgentTypes lists the registered agent types.
func (d *Dispatcher) AgentTypes() []string {
	return []string{router.AgentQuery, router.AgentIngestion, router.AgentSummarization}
}

// Input field accessors. Payloads arrive as loosely-typed maps from the
// router or the HTTP layer, so numeric fields may be float64.

func stringField(input map[string]any, key string) string {
	if v, ok := input[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func intField(input map[string]any, key string, fallback int) int {
	switch v := input[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case uint64:
		return int(v)
	}
	return fallback
}

func idField(input map[string]any, key string) (core.ID, bool) {
	switch v := input[key].(type) {
	case core.ID:
		return v, true
	case int:
		return core.ID(v), true
	case int64:
		return core.ID(v), true
	case uint64:
		return core.ID(v), true
	case float64:
		return core.ID(v), true
	}
	return 0, false
}

const previewLimit = 200

// truncateRunes caps s at limit runes, never splitting a multi-byte
// character.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// noteView projects a note to the shape returned to callers: metadata
// plus a bounded content preview.
func noteView(note *core.Note) map[string]any {
	preview := truncateRunes(note.Content, previewLimit)
	if preview != note.Content {
		preview += "..."
	}
	return map[string]any{
		"id":              note.Id,
		"title":           note.Title,
		"summary":         note.Summary,
		"tags":            note.Tags,
		"created_at":      note.CreatedAt,
		"content_preview": preview,
	}
}

// scoredNoteView is a noteView with a similarity or relevance score.
func scoredNoteView(note *core.Note, score float64) map[string]any {
	view := noteView(note)
	view["score"] = score
	return view
}
