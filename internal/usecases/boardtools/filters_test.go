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
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
)

func TestCreateFilterSendsNameAndJQL(t *testing.T) {
	var body map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/filter", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))
		writeJSON(w, http.StatusOK, `{"id":"10042","name":"Open bugs","jql":"type = Bug AND resolution = Unresolved"}`)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "create_filter",
		`{"name":"Open bugs","jql":"type = Bug AND resolution = Unresolved"}`)

	assert.Equal(t, "Open bugs", body["name"])
	assert.Equal(t, "type = Bug AND resolution = Unresolved", body["jql"])
	assert.NotContains(t, body, "description", "omitted description must not be sent")

	var filter jira.Filter
	require.NoError(t, json.Unmarshal([]byte(text), &filter))
	assert.Equal(t, "10042", filter.ID)
}

func TestCreateFilterRequiresAName(t *testing.T) {
	svc := newToolServer(t, http.NewServeMux())

	_, err := svc.CallTool(context.Background(), "create_filter", json.RawMessage(`{"jql":"type = Bug"}`))
	require.Error(t, err)
	assert.True(t, domain.IsUserInput(err))
	assert.Contains(t, err.Error(), "name")
}

func TestGetMyFiltersReturnsTheList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/filter/my", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"10001","name":"My open issues","favourite":true}]`)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "get_my_filters", `{}`)

	var filters []jira.Filter
	require.NoError(t, json.Unmarshal([]byte(text), &filters))
	require.Len(t, filters, 1)
	assert.Equal(t, "My open issues", filters[0].Name)
}

func TestGetFavouriteFiltersReturnsTheList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/filter/favourite", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"10002","name":"Team board","favourite":true}]`)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "get_favourite_filters", `{}`)

	var filters []jira.Filter
	require.NoError(t, json.Unmarshal([]byte(text), &filters))
	require.Len(t, filters, 1)
	assert.Equal(t, "Team board", filters[0].Name)
}

func TestDeleteFilterReportsTheDeletedID(t *testing.T) {
	deleted := false
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/filter/10042", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "delete_filter", `{"filterId":"10042"}`)

	assert.True(t, deleted)
	assert.JSONEq(t, `{"deleted":"10042"}`, text)
}

func TestGetFilterKeepsBackendErrorKinds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/filter/99", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"errorMessages":["The filter with id '99' does not exist"]}`)
	})
	svc := newToolServer(t, mux)

	_, err := svc.CallTool(context.Background(), "get_filter", json.RawMessage(`{"filterId":"99"}`))
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
