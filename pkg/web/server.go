// Package web exposes the "serve" dashboard: a small HTTP API plus an
// SSE event stream that lets a browser watch a check run as it happens.
package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/google/uuid"

	"github.com/kallio-oss/semverify/pkg/diagnostic"
	"github.com/kallio-oss/semverify/pkg/logging"
	"github.com/kallio-oss/semverify/pkg/pubsub"
	"github.com/kallio-oss/semverify/pkg/rules"
)

const topicRunEvents = "run_events"

// RuleStarted, RuleFinished, and RunSummaryEvent are the run_events
// payloads published over SSE as a check progresses.
type RuleStarted struct {
	RuleID string `json:"rule_id"`
}

type RuleFinished struct {
	RuleID    string `json:"rule_id"`
	Matched   bool   `json:"matched"`
	LintLevel string `json:"lint_level"`
}

type RunSummaryEvent struct {
	Failures    int    `json:"failures"`
	Warnings    int    `json:"warnings"`
	Skipped     int    `json:"skipped"`
	Passed      int    `json:"passed"`
	MaxRequired string `json:"max_required_update,omitempty"`
}

// Server is the dashboard's HTTP surface: one SSE topic for run progress,
// plus a snapshot of the most recent run's diagnostics and rule set.
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher

	mu          sync.RWMutex
	runID       string
	loadedRules []*rules.Rule
	diagnostics []*diagnostic.Diagnostic
	summary     diagnostic.Summary
}

// NewServer builds a dashboard server with SSE replay of the last 50
// run_events so a browser opened mid-run still sees recent history.
func NewServer() *Server {
	publisher := pubsub.NewSSEPublisher()
	publisher.ConfigureTopic(topicRunEvents, pubsub.TopicConfig{
		BufferSize: 50,
		ReplayAll:  true,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: publisher,
	}
	s.setupRoutes()
	return s
}

// NewRunID mints an id for the next check run, used as the logging run id
// (pkg/logging). The run_events payloads do not carry it.
func (s *Server) NewRunID() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.runID = id
	s.mu.Unlock()
	return id
}

// SetRules stores the loaded rule set the dashboard reports on.
func (s *Server) SetRules(ruleList []*rules.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadedRules = ruleList
}

// SetResult stores the most recent run's diagnostics and summary.
func (s *Server) SetResult(diags []*diagnostic.Diagnostic, summary diagnostic.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnostics = diags
	s.summary = summary
}

// PublishRuleStarted announces that one rule's evaluation has begun.
func (s *Server) PublishRuleStarted(ruleID string) error {
	return s.publisher.Publish(topicRunEvents, "rule_started", RuleStarted{RuleID: ruleID})
}

// PublishRuleFinished announces one rule's outcome.
func (s *Server) PublishRuleFinished(ruleID string, matched bool, level rules.LintLevel) error {
	return s.publisher.Publish(topicRunEvents, "rule_finished", RuleFinished{
		RuleID:    ruleID,
		Matched:   matched,
		LintLevel: string(level),
	})
}

// PublishSummary announces the run's final aggregate counts.
func (s *Server) PublishSummary(summary diagnostic.Summary) error {
	evt := RunSummaryEvent{
		Failures: summary.Failures,
		Warnings: summary.Warnings,
		Skipped:  summary.Skipped,
		Passed:   summary.Passed,
	}
	if summary.HasMaxRequired {
		evt.MaxRequired = string(summary.MaxRequired)
	}
	return s.publisher.Publish(topicRunEvents, "run_summary", evt)
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)
	s.router.HandleFunc("/api/subscribe/run_events", s.handleSubscribe).Methods("GET")
	s.router.HandleFunc("/api/rules", s.handleRules).Methods("GET")
	s.router.HandleFunc("/api/diagnostics", s.handleDiagnostics).Methods("GET")
	s.router.HandleFunc("/api/rules/{id}", s.handleRuleByID).Methods("GET")
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sub, err := s.publisher.Subscribe(r.Context(), topicRunEvents)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			log.Printf("error writing SSE event: %v", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.loadedRules)
}

func (s *Server) handleRuleByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rule := range s.loadedRules {
		if rule.ID == id {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(rule)
			return
		}
	}
	http.Error(w, fmt.Sprintf("rule not found: %s", id), http.StatusNotFound)
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	if err := diagnostic.WriteJSON(w, s.diagnostics, s.summary); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Start serves the dashboard on the given port, blocking until the
// server stops or errors.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("dashboard listening on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.router)
}
