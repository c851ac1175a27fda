package boardtools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
)

// boardSnapshot is the composite payload of the board resource. The
// sub-objects are always present so a reader can rely on the shape even
// when a board has no backlog, epics or sprints yet.
type boardSnapshot struct {
	Board   *jira.Board     `json:"board"`
	Backlog jira.IssueList  `json:"backlog"`
	Epics   jira.EpicList   `json:"epics"`
	Sprints jira.SprintList `json:"sprints"`
}

func registerBoardResources(s *usecases.ServerService, client *jira.Client) {
	s.RegisterResource(domain.NewResource("boards", "resource://boards",
		domain.WithResourceTitle("All boards"),
		domain.WithResourceDescription("The boards visible to the configured user"),
		domain.WithResourceHandler(func(ctx context.Context, uri string, params map[string]string) (interface{}, error) {
			boards, err := client.GetAllBoards(ctx, jira.BoardSearchOptions{})
			if err != nil {
				return nil, err
			}
			return boards, nil
		}),
	))

	s.RegisterResource(domain.NewResource("board", "resource://board/{boardId}",
		domain.WithResourceTitle("Board snapshot"),
		domain.WithResourceDescription("One board with its backlog, epics and sprints"),
		domain.WithResourceHandler(func(ctx context.Context, uri string, params map[string]string) (interface{}, error) {
			boardID, err := strconv.Atoi(params["boardId"])
			if err != nil {
				return nil, domain.NewUserInputError(fmt.Sprintf("board resource: %q is not a numeric board id", params["boardId"]), nil)
			}
			return boardSnapshotFor(ctx, client, boardID)
		}),
	))
}

func boardSnapshotFor(ctx context.Context, client *jira.Client, boardID int) (*boardSnapshot, error) {
	board, err := client.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	backlog, err := client.GetBoardBacklog(ctx, boardID, jira.IssuePageOptions{})
	if err != nil {
		return nil, err
	}
	epics, err := client.GetBoardEpics(ctx, boardID, jira.PageOptions{})
	if err != nil {
		return nil, err
	}
	sprints, err := client.GetBoardSprints(ctx, boardID, jira.SprintPageOptions{})
	if err != nil {
		return nil, err
	}

	snapshot := &boardSnapshot{
		Board:   board,
		Backlog: *backlog,
		Epics:   *epics,
		Sprints: *sprints,
	}
	if snapshot.Backlog.Issues == nil {
		snapshot.Backlog.Issues = []jira.Issue{}
	}
	if snapshot.Epics.Values == nil {
		snapshot.Epics.Values = []jira.Epic{}
	}
	if snapshot.Sprints.Values == nil {
		snapshot.Sprints.Values = []jira.Sprint{}
	}
	return snapshot, nil
}
