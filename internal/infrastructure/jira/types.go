package jira

// Backend entities are pass-through DTOs: they carry whatever Jira
// returned, are re-fetched on every call, and are never cached or
// mutated by this adapter. Issue fields stay an opaque map because the
// field set is instance-specific (custom fields).

// Board is an agile board.
type Board struct {
	ID       int            `json:"id"`
	Self     string         `json:"self,omitempty"`
	Name     string         `json:"name"`
	Type     string         `json:"type,omitempty"`
	Location *BoardLocation `json:"location,omitempty"`
}

// BoardLocation describes the project or user a board belongs to.
type BoardLocation struct {
	ProjectID      int    `json:"projectId,omitempty"`
	ProjectKey     string `json:"projectKey,omitempty"`
	ProjectName    string `json:"projectName,omitempty"`
	ProjectTypeKey string `json:"projectTypeKey,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	Name           string `json:"name,omitempty"`
}

// BoardList is a page of boards.
type BoardList struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	IsLast     bool    `json:"isLast"`
	Values     []Board `json:"values"`
}

// CreateBoardRequest is the body for board creation. FilterID selects
// the saved filter the board is built from.
type CreateBoardRequest struct {
	Name     string                `json:"name"`
	Type     string                `json:"type"`
	FilterID int                   `json:"filterId"`
	Location *BoardLocationRequest `json:"location,omitempty"`
}

// BoardLocationRequest pins a new board to a project.
type BoardLocationRequest struct {
	Type           string `json:"type"`
	ProjectKeyOrID string `json:"projectKeyOrId"`
}

// BoardConfiguration is the column, filter and estimation setup of a board.
type BoardConfiguration struct {
	ID           int               `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type,omitempty"`
	Self         string            `json:"self,omitempty"`
	Filter       *FilterRef        `json:"filter,omitempty"`
	ColumnConfig *ColumnConfig     `json:"columnConfig,omitempty"`
	Estimation   *EstimationConfig `json:"estimation,omitempty"`
	Ranking      *RankingConfig    `json:"ranking,omitempty"`
}

// FilterRef points at the saved filter backing a board.
type FilterRef struct {
	ID   string `json:"id"`
	Self string `json:"self,omitempty"`
}

// ColumnConfig lists the board columns and their constraint mode.
type ColumnConfig struct {
	Columns        []BoardColumn `json:"columns,omitempty"`
	ConstraintType string        `json:"constraintType,omitempty"`
}

// BoardColumn is one column with its mapped statuses and WIP limits.
type BoardColumn struct {
	Name     string      `json:"name"`
	Statuses []StatusRef `json:"statuses,omitempty"`
	Min      int         `json:"min,omitempty"`
	Max      int         `json:"max,omitempty"`
}

// StatusRef is a status reference inside a board column.
type StatusRef struct {
	ID   string `json:"id"`
	Self string `json:"self,omitempty"`
}

// EstimationConfig describes how a board estimates issues.
type EstimationConfig struct {
	Type  string           `json:"type,omitempty"`
	Field *EstimationField `json:"field,omitempty"`
}

// EstimationField names the custom field estimations are stored in.
type EstimationField struct {
	FieldID     string `json:"fieldId"`
	DisplayName string `json:"displayName,omitempty"`
}

// RankingConfig names the custom field used for issue ranking.
type RankingConfig struct {
	RankCustomFieldID int `json:"rankCustomFieldId,omitempty"`
}

// Sprint is an agile sprint.
type Sprint struct {
	ID            int    `json:"id"`
	Self          string `json:"self,omitempty"`
	State         string `json:"state,omitempty"`
	Name          string `json:"name"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	CompleteDate  string `json:"completeDate,omitempty"`
	OriginBoardID int    `json:"originBoardId,omitempty"`
	Goal          string `json:"goal,omitempty"`
}

// SprintList is a page of sprints.
type SprintList struct {
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
	Total      int      `json:"total,omitempty"`
	IsLast     bool     `json:"isLast"`
	Values     []Sprint `json:"values"`
}

// Epic is an agile epic.
type Epic struct {
	ID      int        `json:"id"`
	Key     string     `json:"key,omitempty"`
	Self    string     `json:"self,omitempty"`
	Name    string     `json:"name"`
	Summary string     `json:"summary,omitempty"`
	Color   *EpicColor `json:"color,omitempty"`
	Done    bool       `json:"done"`
}

// EpicColor is the display colour of an epic.
type EpicColor struct {
	Key string `json:"key,omitempty"`
}

// EpicList is a page of epics.
type EpicList struct {
	StartAt    int    `json:"startAt"`
	MaxResults int    `json:"maxResults"`
	Total      int    `json:"total,omitempty"`
	IsLast     bool   `json:"isLast"`
	Values     []Epic `json:"values"`
}

// Issue is a Jira issue. Fields is kept opaque: its keys depend on the
// instance's field configuration.
type Issue struct {
	ID     string                 `json:"id"`
	Key    string                 `json:"key"`
	Self   string                 `json:"self,omitempty"`
	Expand string                 `json:"expand,omitempty"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// IssueList is a page of issues, shared by board backlog/issue listings
// and JQL search.
type IssueList struct {
	Expand     string  `json:"expand,omitempty"`
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// CreatedIssue is the identifier triple returned by issue creation.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self,omitempty"`
}

// Transition is one workflow transition available to an issue.
type Transition struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	To          *Status `json:"to,omitempty"`
	IsAvailable bool    `json:"isAvailable,omitempty"`
}

// TransitionList is the transition listing for one issue.
type TransitionList struct {
	Expand      string       `json:"expand,omitempty"`
	Transitions []Transition `json:"transitions"`
}

// Status is a workflow status.
type Status struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Self           string          `json:"self,omitempty"`
	Description    string          `json:"description,omitempty"`
	StatusCategory *StatusCategory `json:"statusCategory,omitempty"`
}

// StatusCategory groups statuses into todo/in-progress/done buckets.
type StatusCategory struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	ColorName string `json:"colorName,omitempty"`
}

// IssueTypeStatuses lists the valid statuses for one issue type of a
// project.
type IssueTypeStatuses struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Self     string   `json:"self,omitempty"`
	Subtask  bool     `json:"subtask"`
	Statuses []Status `json:"statuses"`
}

// Project is a Jira project.
type Project struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Self           string `json:"self,omitempty"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	ProjectTypeKey string `json:"projectTypeKey,omitempty"`
	Style          string `json:"style,omitempty"`
	IsPrivate      bool   `json:"isPrivate,omitempty"`
}

// ProjectList is a page of projects.
type ProjectList struct {
	Self       string    `json:"self,omitempty"`
	NextPage   string    `json:"nextPage,omitempty"`
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	IsLast     bool      `json:"isLast"`
	Values     []Project `json:"values"`
}

// Filter is a saved JQL filter.
type Filter struct {
	ID          string `json:"id"`
	Self        string `json:"self,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	JQL         string `json:"jql,omitempty"`
	ViewURL     string `json:"viewUrl,omitempty"`
	SearchURL   string `json:"searchUrl,omitempty"`
	Favourite   bool   `json:"favourite,omitempty"`
	Owner       *User  `json:"owner,omitempty"`
}

// CreateFilterRequest is the body for filter creation.
type CreateFilterRequest struct {
	Name        string `json:"name"`
	JQL         string `json:"jql"`
	Description string `json:"description,omitempty"`
}

// User is a Jira account reference.
type User struct {
	AccountID    string `json:"accountId,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active,omitempty"`
}

// Comment is an issue comment as returned by the backend.
type Comment struct {
	ID      string      `json:"id"`
	Self    string      `json:"self,omitempty"`
	Author  *User       `json:"author,omitempty"`
	Body    interface{} `json:"body,omitempty"`
	Created string      `json:"created,omitempty"`
}

// Estimation is the estimation value of an issue in the context of one
// board.
type Estimation struct {
	FieldID string `json:"fieldId"`
	Value   string `json:"value,omitempty"`
}

// Field is one field definition, system or custom.
type Field struct {
	ID          string       `json:"id"`
	Key         string       `json:"key,omitempty"`
	Name        string       `json:"name"`
	Custom      bool         `json:"custom"`
	Orderable   bool         `json:"orderable,omitempty"`
	Navigable   bool         `json:"navigable,omitempty"`
	Searchable  bool         `json:"searchable,omitempty"`
	ClauseNames []string     `json:"clauseNames,omitempty"`
	Schema      *FieldSchema `json:"schema,omitempty"`
}

// FieldSchema is the type descriptor of a field.
type FieldSchema struct {
	Type     string `json:"type,omitempty"`
	Items    string `json:"items,omitempty"`
	System   string `json:"system,omitempty"`
	Custom   string `json:"custom,omitempty"`
	CustomID int    `json:"customId,omitempty"`
}

// FieldConfiguration is one field configuration scheme entry.
type FieldConfiguration struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsDefault   bool   `json:"isDefault,omitempty"`
}

// FieldConfigurationList is a page of field configurations.
type FieldConfigurationList struct {
	StartAt    int                  `json:"startAt"`
	MaxResults int                  `json:"maxResults"`
	Total      int                  `json:"total"`
	IsLast     bool                 `json:"isLast"`
	Values     []FieldConfiguration `json:"values"`
}

// FieldConfigurationItem is one field's behavior inside a configuration.
type FieldConfigurationItem struct {
	ID          string `json:"id"`
	IsHidden    bool   `json:"isHidden,omitempty"`
	IsRequired  bool   `json:"isRequired,omitempty"`
	Description string `json:"description,omitempty"`
	Renderer    string `json:"renderer,omitempty"`
}

// FieldConfigurationItemList is a page of configuration items.
type FieldConfigurationItemList struct {
	StartAt    int                      `json:"startAt"`
	MaxResults int                      `json:"maxResults"`
	Total      int                      `json:"total"`
	IsLast     bool                     `json:"isLast"`
	Values     []FieldConfigurationItem `json:"values"`
}

// ADFDocument is a minimal Atlassian Document Format document. Comment
// bodies on the v3 API must be ADF, not plain text.
type ADFDocument struct {
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Content []ADFNode `json:"content"`
}

// ADFNode is one node of an ADF document.
type ADFNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []ADFNode `json:"content,omitempty"`
}

// ADFFromText wraps plain text into a single-paragraph ADF document.
func ADFFromText(text string) ADFDocument {
	return ADFDocument{
		Type:    "doc",
		Version: 1,
		Content: []ADFNode{
			{
				Type: "paragraph",
				Content: []ADFNode{
					{Type: "text", Text: text},
				},
			},
		},
	}
}
