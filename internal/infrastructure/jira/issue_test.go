package jira_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
)

func TestCreateIssueWrapsFieldsEnvelope(t *testing.T) {
	var gotBody map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		writeJSON(w, http.StatusCreated, `{"id":"10042","key":"DEV-42","self":"https://x/rest/api/3/issue/10042"}`)
	}))

	fields := map[string]interface{}{
		"project":   map[string]interface{}{"key": "DEV"},
		"summary":   "Fix login flow",
		"issuetype": map[string]interface{}{"id": "10001"},
	}
	created, err := client.CreateIssue(context.Background(), fields)
	require.NoError(t, err)
	assert.Equal(t, "DEV-42", created.Key)

	inner, ok := gotBody["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Fix login flow", inner["summary"])
}

func TestGetIssueEscapesKeyAndShapesQuery(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue/DEV-1", r.URL.Path)
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, `{"id":"10001","key":"DEV-1","fields":{"summary":"Login broken","customfield_10016":5}}`)
	}))

	issue, err := client.GetIssue(context.Background(), "DEV-1", jira.GetIssueOptions{
		Fields: []string{"summary", "customfield_10016"},
		Expand: "renderedFields",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"summary,customfield_10016"}, gotQuery["fields"])
	assert.Equal(t, []string{"renderedFields"}, gotQuery["expand"])
	assert.Equal(t, "DEV-1", issue.Key)
	assert.Equal(t, "Login broken", issue.Fields["summary"])
	assert.Equal(t, float64(5), issue.Fields["customfield_10016"])
}

func TestUpdateIssuePutsFieldsEnvelope(t *testing.T) {
	var gotMethod string
	var gotBody map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue/DEV-2", r.URL.Path)
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.UpdateIssue(context.Background(), "DEV-2", map[string]interface{}{"summary": "New title"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	inner := gotBody["fields"].(map[string]interface{})
	assert.Equal(t, "New title", inner["summary"])
}

func TestDeleteIssue(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteIssue(context.Background(), "DEV-3"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/rest/api/3/issue/DEV-3", gotPath)
}

func TestSearchIssues(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/search", r.URL.Path)
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, `{"startAt":0,"maxResults":25,"total":2,"issues":[{"id":"1","key":"DEV-1"},{"id":"2","key":"DEV-2"}]}`)
	}))

	result, err := client.SearchIssues(context.Background(), jira.IssueSearchOptions{
		PageOptions: jira.PageOptions{MaxResults: 25},
		JQL:         "project = DEV ORDER BY created DESC",
		Fields:      []string{"summary"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"project = DEV ORDER BY created DESC"}, gotQuery["jql"])
	assert.Equal(t, []string{"25"}, gotQuery["maxResults"])
	assert.NotContains(t, gotQuery, "startAt")
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "DEV-2", result.Issues[1].Key)
}

func TestSearchIssuesBadJQLIsUserInput(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"errorMessages":["Field 'proj' does not exist"]}`)
	}))

	_, err := client.SearchIssues(context.Background(), jira.IssueSearchOptions{JQL: "proj = DEV"})
	require.Error(t, err)
	assert.True(t, domain.IsUserInput(err))
	assert.Contains(t, domain.ContextOf(err).ResponseBody, "does not exist")
}

func TestGetTransitions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue/DEV-1/transitions", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"transitions":[{"id":"31","name":"In Progress"},{"id":"41","name":"Done"}]}`)
	}))

	list, err := client.GetTransitions(context.Background(), "DEV-1")
	require.NoError(t, err)
	require.Len(t, list.Transitions, 2)
	assert.Equal(t, "Done", list.Transitions[1].Name)
}

func TestTransitionIssuePostsTransitionID(t *testing.T) {
	var gotBody map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue/DEV-1/transitions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.TransitionIssue(context.Background(), "DEV-1", "31"))
	transition := gotBody["transition"].(map[string]interface{})
	assert.Equal(t, "31", transition["id"])
}

func TestAddCommentSendsADFBody(t *testing.T) {
	var gotBody map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue/DEV-1/comment", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		writeJSON(w, http.StatusCreated, `{"id":"5001","created":"2025-01-01T10:00:00.000+0000"}`)
	}))

	comment, err := client.AddComment(context.Background(), "DEV-1", "Deployed to staging")
	require.NoError(t, err)
	assert.Equal(t, "5001", comment.ID)

	doc := gotBody["body"].(map[string]interface{})
	assert.Equal(t, "doc", doc["type"])
	assert.Equal(t, float64(1), doc["version"])
	paragraph := doc["content"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "paragraph", paragraph["type"])
	text := paragraph["content"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Deployed to staging", text["text"])
}

func TestAssignIssue(t *testing.T) {
	var gotBody map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue/DEV-1/assignee", r.URL.Path)
		require.Equal(t, http.MethodPut, r.Method)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	account := "5b10ac8d82e05b22cc7d4ef5"
	require.NoError(t, client.AssignIssue(context.Background(), "DEV-1", &account))
	assert.Equal(t, account, gotBody["accountId"])
}

func TestAssignIssueNilUnassigns(t *testing.T) {
	var gotBody map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.AssignIssue(context.Background(), "DEV-1", nil))
	val, present := gotBody["accountId"]
	assert.True(t, present)
	assert.Nil(t, val)
}
