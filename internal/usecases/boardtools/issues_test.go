package boardtools_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
)

func TestCreateIssueBuildsTheFieldEnvelope(t *testing.T) {
	var body map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/issue", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))
		writeJSON(w, http.StatusCreated, `{"id":"10500","key":"DEV-101","self":"https://x/rest/api/3/issue/10500"}`)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "create_issue", `{
		"projectKey": "DEV",
		"summary": "Ship the importer",
		"issueTypeId": "10001",
		"description": "First cut.",
		"assigneeAccountId": "5b10ac8d",
		"components": ["backend"]
	}`)

	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok, "issue creation should wrap everything under fields")
	assert.Equal(t, map[string]interface{}{"key": "DEV"}, fields["project"])
	assert.Equal(t, "Ship the importer", fields["summary"])
	assert.Equal(t, map[string]interface{}{"id": "10001"}, fields["issuetype"])
	assert.Equal(t, map[string]interface{}{"accountId": "5b10ac8d"}, fields["assignee"])
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "backend"}}, fields["components"])

	description, ok := fields["description"].(map[string]interface{})
	require.True(t, ok, "description should be sent as a rich-text document")
	assert.Equal(t, "doc", description["type"])

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &created))
	assert.Equal(t, "DEV-101", created["key"])
}

func TestUpdateIssueAppliesChangesInOrder(t *testing.T) {
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/issue/DEV-7", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		calls = append(calls, "fields")
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/rest/api/3/issue/DEV-7/assignee", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "assignee")
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/rest/api/3/issue/DEV-7/transitions", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "transition")
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/rest/api/3/issue/DEV-7/comment", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "comment")
		writeJSON(w, http.StatusCreated, `{"id":"3000","created":"2024-05-01T10:00:00.000+0000"}`)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "update_issue", `{
		"issueKeyOrId": "DEV-7",
		"summary": "Tighten retries",
		"assigneeAccountId": "5b10ac8d",
		"transitionId": "31",
		"comment": "Moving this along."
	}`)

	assert.Equal(t, []string{"fields", "assignee", "transition", "comment"}, calls)

	var result struct {
		IssueKeyOrID string   `json:"issueKeyOrId"`
		Applied      []string `json:"applied"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, "DEV-7", result.IssueKeyOrID)
	assert.Equal(t, []string{"summary", "assignee", "transition", "comment"}, result.Applied)
}

func TestUpdateIssueStopsAtTheFirstFailure(t *testing.T) {
	commented := false
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/issue/DEV-8", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/rest/api/3/issue/DEV-8/transitions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"errorMessages":["Transition is not valid"]}`)
	})
	mux.HandleFunc("/rest/api/3/issue/DEV-8/comment", func(w http.ResponseWriter, r *http.Request) {
		commented = true
		writeJSON(w, http.StatusCreated, `{"id":"3001"}`)
	})
	svc := newToolServer(t, mux)

	_, err := svc.CallTool(context.Background(), "update_issue", json.RawMessage(`{
		"issueKeyOrId": "DEV-8",
		"summary": "New summary",
		"transitionId": "99",
		"comment": "Never sent."
	}`))
	require.Error(t, err)
	assert.True(t, domain.IsUserInput(err))
	assert.False(t, commented, "steps after the failure should not run")
}

func TestUpdateIssueRejectsAnEmptyChangeSet(t *testing.T) {
	svc := newToolServer(t, http.NewServeMux())

	_, err := svc.CallTool(context.Background(), "update_issue", json.RawMessage(`{"issueKeyOrId":"DEV-9"}`))
	require.Error(t, err)
	assert.True(t, domain.IsUserInput(err))
	assert.Contains(t, err.Error(), "no change requested")
}

func TestUpdateIssueUnassignWinsOverAssignee(t *testing.T) {
	var assigneeBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/issue/DEV-10/assignee", func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assigneeBody = string(raw)
		w.WriteHeader(http.StatusNoContent)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "update_issue", `{"issueKeyOrId":"DEV-10","unassign":true,"assigneeAccountId":"ignored"}`)

	assert.JSONEq(t, `{"accountId":null}`, assigneeBody)

	var result struct {
		Applied []string `json:"applied"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, []string{"unassign"}, result.Applied)
}

func TestSearchIssuesForwardsTheQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "project = DEV ORDER BY created DESC", r.URL.Query().Get("jql"))
		assert.Equal(t, "25", r.URL.Query().Get("maxResults"))
		writeJSON(w, http.StatusOK, `{"startAt":0,"maxResults":25,"total":1,"issues":[{"id":"10500","key":"DEV-101"}]}`)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "search_issues", `{"jql":"project = DEV ORDER BY created DESC","maxResults":25}`)

	var result struct {
		Issues []struct {
			Key string `json:"key"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "DEV-101", result.Issues[0].Key)
}

func TestAddCommentWrapsPlainText(t *testing.T) {
	var body map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/issue/DEV-12/comment", func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))
		writeJSON(w, http.StatusCreated, `{"id":"3002","created":"2024-05-02T09:00:00.000+0000"}`)
	})
	svc := newToolServer(t, mux)

	callTool(t, svc, "add_comment", `{"issueKeyOrId":"DEV-12","body":"Looks good."}`)

	doc, ok := body["body"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "doc", doc["type"])
	assert.EqualValues(t, 1, doc["version"])
}
