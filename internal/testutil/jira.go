// Package testutil provides canned doubles shared by tests: a fake Jira
// backend answering the read endpoints with fixed data, and a dispatch
// double for transport tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Canned identifiers the fake backend answers for.
const (
	BoardID  = 1
	IssueKey = "DEV-1"
)

const boardBody = `{"id":1,"self":"https://example.atlassian.net/rest/agile/1.0/board/1","name":"DEV board","type":"scrum","location":{"projectId":10000,"projectKey":"DEV","projectName":"Development"}}`

const issueBody = `{"id":"10100","key":"DEV-1","self":"https://example.atlassian.net/rest/api/3/issue/10100","fields":{"summary":"Fix the login flow","status":{"id":"3","name":"In Progress"},"issuetype":{"id":"10001","name":"Task"}}}`

const issuePageBody = `{"startAt":0,"maxResults":50,"total":1,"issues":[` + issueBody + `]}`

// cannedRoutes maps exact request paths to fixed JSON bodies.
var cannedRoutes = map[string]string{
	"/rest/agile/1.0/board":           `{"startAt":0,"maxResults":50,"total":1,"isLast":true,"values":[` + boardBody + `]}`,
	"/rest/agile/1.0/board/1":         boardBody,
	"/rest/agile/1.0/board/1/backlog": issuePageBody,
	"/rest/agile/1.0/board/1/epic":    `{"startAt":0,"maxResults":50,"isLast":true,"values":[{"id":23,"key":"DEV-8","name":"Checkout","summary":"Checkout rework","done":false}]}`,
	"/rest/agile/1.0/board/1/sprint":  `{"startAt":0,"maxResults":50,"isLast":true,"values":[{"id":3,"state":"active","name":"Sprint 3","originBoardId":1,"goal":"Ship the beta"}]}`,
	"/rest/api/3/issue/DEV-1":         issueBody,
	"/rest/api/3/search":              issuePageBody,
	"/rest/api/3/filter/my":           `[{"id":"10001","name":"My open issues","jql":"assignee = currentUser() AND resolution = Unresolved","favourite":true}]`,
	"/rest/api/3/field":               `[{"id":"summary","name":"Summary","custom":false,"schema":{"type":"string","system":"summary"}},{"id":"customfield_10016","name":"Story Points","custom":true,"schema":{"type":"number","customId":10016}}]`,
}

// JiraBackend fakes the slice of the Jira REST surface the adapter
// reads. Write endpoints are not canned; tests that need them script
// their own handlers with Handle.
type JiraBackend struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
}

// NewJiraBackend starts the fake backend and closes it with the test.
func NewJiraBackend(t *testing.T) *JiraBackend {
	t.Helper()

	b := &JiraBackend{handlers: make(map[string]http.HandlerFunc, len(cannedRoutes))}
	for path, body := range cannedRoutes {
		b.handlers[path] = staticJSON(body)
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.route))
	t.Cleanup(b.Close)
	return b
}

// Handle adds or replaces the handler for one exact request path.
func (b *JiraBackend) Handle(path string, handler http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[path] = handler
}

func (b *JiraBackend) route(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	handler, ok := b.handlers[r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string][]string{
			"errorMessages": {"no canned route for " + r.URL.Path},
		})
		return
	}
	handler(w, r)
}

func staticJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}
