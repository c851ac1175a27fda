package jira

import (
	"fmt"
	"net/http"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
)

// Translate maps one failed backend call onto the domain error taxonomy.
// The mapping is total: 400 is the caller's fault, 401 a credential
// problem, 403 a permission problem, 404 a missing entity, 5xx a backend
// fault, and everything else (no status, unexpected status, transport
// failure) an internal error reported as "Unexpected error". The same
// mapping is applied by every operation wrapper in this package.
//
// A status of 0 means no HTTP response was observed at all.
func Translate(operation string, status int, responseBody string, input interface{}, endpoint string) *domain.Error {
	ctx := &domain.ErrorContext{
		Status:       status,
		ResponseBody: responseBody,
		RequestInput: input,
		Endpoint:     endpoint,
	}

	switch {
	case status == http.StatusBadRequest:
		return domain.NewUserInputError(fmt.Sprintf("%s: Jira rejected the request", operation), ctx)
	case status == http.StatusUnauthorized:
		return domain.NewAuthenticationError(fmt.Sprintf("%s: authentication with Jira failed", operation), ctx)
	case status == http.StatusForbidden:
		return domain.NewForbiddenError(fmt.Sprintf("%s: not permitted by Jira", operation), ctx)
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(fmt.Sprintf("%s: not found in Jira", operation), ctx)
	case status >= http.StatusInternalServerError:
		return domain.NewInternalServerError(fmt.Sprintf("%s: Jira server error", operation), ctx)
	default:
		return domain.NewInternalServerError(fmt.Sprintf("%s: Unexpected error", operation), ctx)
	}
}
