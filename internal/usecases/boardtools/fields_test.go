package boardtools_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fieldListBody = `[
	{"id":"summary","key":"summary","name":"Summary","custom":false},
	{"id":"customfield_10016","key":"customfield_10016","name":"Story Points","custom":true,"schema":{"type":"number","customId":10016}}
]`

func TestFindCustomFieldReturnsTheMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/field", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, fieldListBody)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "find_custom_field", `{"name":"story points"}`)

	var field struct {
		ID     string `json:"id"`
		Custom bool   `json:"custom"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &field))
	assert.Equal(t, "customfield_10016", field.ID)
	assert.True(t, field.Custom)
}

func TestFindCustomFieldReturnsNullWhenNothingMatches(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/field", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, fieldListBody)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "find_custom_field", `{"name":"Epic Link"}`)

	assert.Equal(t, "null", text)
}

func TestGetFieldConfigurationsFetchesItemsOnRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/fieldconfiguration", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"startAt":0,"maxResults":50,"total":1,"isLast":true,"values":[{"id":10000,"name":"Default Field Configuration","isDefault":true}]}`)
	})
	mux.HandleFunc("/rest/api/3/fieldconfiguration/10000/fields", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"startAt":0,"maxResults":50,"total":1,"isLast":true,"values":[{"id":"summary","isRequired":true}]}`)
	})
	svc := newToolServer(t, mux)

	text := callTool(t, svc, "get_field_configurations", `{"configId":10000}`)

	var result struct {
		Configurations struct {
			Values []struct {
				ID int `json:"id"`
			} `json:"values"`
		} `json:"configurations"`
		Items struct {
			Values []struct {
				ID string `json:"id"`
			} `json:"values"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	require.Len(t, result.Configurations.Values, 1)
	assert.Equal(t, 10000, result.Configurations.Values[0].ID)
	require.Len(t, result.Items.Values, 1)
	assert.Equal(t, "summary", result.Items.Values[0].ID)
}
