package hqdata

import "encoding/json"

// IssueType classifies an issue.
type IssueType string

// Issue types.
const (
	TypeBug         IssueType = "Bug"
	TypeEnhancement IssueType = "Enhancement"
	TypeTask        IssueType = "Task"
)

// Priority ranks an issue, P0 being the most urgent.
type Priority string

// Priorities.
const (
	P0 Priority = "P0"
	P1 Priority = "P1"
	P2 Priority = "P2"
	P3 Priority = "P3"
)

// Severity is derived from [Priority] when an issue is created.
type Severity string

// Severities.
const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Status is the workflow state of an issue. Any status may follow any other.
type Status string

// Statuses.
const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// LinkType says whether a link points outside the project or at a local resource.
type LinkType string

// Link types.
const (
	LinkExternal LinkType = "external"
	LinkLocal    LinkType = "local"
)

// Issue types, priorities and statuses in their canonical display order.
var (
	IssueTypes = []IssueType{TypeBug, TypeEnhancement, TypeTask}
	Priorities = []Priority{P0, P1, P2, P3}
	Statuses   = []Status{StatusBacklog, StatusTodo, StatusInProgress, StatusDone}
	LinkTypes  = []LinkType{LinkExternal, LinkLocal}
)

// Valid reports whether t is a known issue type.
func (t IssueType) Valid() bool { return contains(IssueTypes, t) }

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool { return contains(Priorities, p) }

// Valid reports whether s is a known status.
func (s Status) Valid() bool { return contains(Statuses, s) }

// Valid reports whether t is a known link type.
func (t LinkType) Valid() bool { return contains(LinkTypes, t) }

// Severity returns the severity an issue of priority p is created with.
// Unknown priorities map to [SeverityLow].
func (p Priority) Severity() Severity {
	switch p {
	case P0, P1:
		return SeverityHigh
	case P2:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}

	return false
}

// Issue is a tracked bug, enhancement or task.
//
// ScreenshotIDs are soft references: an id may not resolve to any
// screenshot, which means "no associated screenshot".
type Issue struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Type          IssueType `json:"type"`
	Severity      Severity  `json:"severity"`
	Priority      Priority  `json:"priority"`
	Status        Status    `json:"status"`
	Area          string    `json:"area"`
	Screen        string    `json:"screen,omitempty"`
	Platform      string    `json:"platform,omitempty"`
	Assignee      string    `json:"assignee,omitempty"`
	SprintID      string    `json:"sprintId,omitempty"`
	BuildNumber   string    `json:"buildNumber,omitempty"`
	Description   string    `json:"description"`
	RootCause     string    `json:"rootCause,omitempty"`
	FixApproach   string    `json:"fixApproach,omitempty"`
	Files         []string  `json:"files,omitempty"`
	ScreenshotIDs []string  `json:"screenshotIds,omitempty"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

// Screenshot is a captured screen image with tags and soft issue references.
type Screenshot struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Path            string   `json:"path"`
	Feature         string   `json:"feature"`
	Tags            []string `json:"tags"`
	Platform        string   `json:"platform,omitempty"`
	RelatedIssueIDs []string `json:"relatedIssueIds,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}

// Link is a bookmarked resource.
type Link struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Type        LinkType `json:"type"`
	Owner       string   `json:"owner,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	LastUpdated string   `json:"lastUpdated"`
}

// Decision records an architectural or product decision.
type Decision struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Title        string `json:"title"`
	Context      string `json:"context"`
	Decision     string `json:"decision"`
	Consequences string `json:"consequences,omitempty"`
	Status       string `json:"status"`
}

// ActivityEntry is one line of the activity log.
type ActivityEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Target    string `json:"target,omitempty"`
	Details   string `json:"details,omitempty"`
	Actor     string `json:"actor,omitempty"`
}

// Build is a shipped or in-flight build.
type Build struct {
	BuildNumber string `json:"buildNumber"`
	Version     string `json:"version"`
	Platform    string `json:"platform"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

// Sprint is a time-boxed iteration.
type Sprint struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Goal      string `json:"goal,omitempty"`
	Status    string `json:"status"`
}

// MarketplaceCategory is a storefront category and its readiness.
type MarketplaceCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	ItemCount   int    `json:"itemCount"`
}

// Meta describes the dataset itself.
type Meta struct {
	ProjectName string `json:"projectName"`
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Owner       string `json:"owner,omitempty"`
}

// QuickLink is a pinned shortcut shown on the overview.
type QuickLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// RecentChange is a dated changelog line.
type RecentChange struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

// Dataset is the complete dashboard document.
//
// Compliance and Architecture are carried as opaque JSON; nothing in this
// package interprets them.
type Dataset struct {
	Meta                  Meta                  `json:"meta"`
	Issues                []Issue               `json:"issues"`
	Screenshots           []Screenshot          `json:"screenshots"`
	Links                 []Link                `json:"links"`
	Decisions             []Decision            `json:"decisions"`
	ActivityLog           []ActivityEntry       `json:"activityLog"`
	Builds                []Build               `json:"builds"`
	Sprints               []Sprint              `json:"sprints"`
	MarketplaceCategories []MarketplaceCategory `json:"marketplaceCategories"`
	Compliance            json.RawMessage       `json:"compliance"`
	Architecture          json.RawMessage       `json:"architecture"`
	QuickLinks            []QuickLink           `json:"quickLinks"`
	RecentChanges         []RecentChange        `json:"recentChanges"`
}

// Overrides is the persisted, partial dataset layered over the baseline.
//
// A nil slice means "defer to baseline"; a non-nil slice, even an empty
// one, replaces the baseline collection entirely.
type Overrides struct {
	Issues      []Issue         `json:"issues,omitzero"`
	Screenshots []Screenshot    `json:"screenshots,omitzero"`
	Links       []Link          `json:"links,omitzero"`
	Decisions   []Decision      `json:"decisions,omitzero"`
	ActivityLog []ActivityEntry `json:"activityLog,omitzero"`
}

// IsEmpty reports whether o overrides nothing.
func (o Overrides) IsEmpty() bool {
	return o.Issues == nil && o.Screenshots == nil && o.Links == nil &&
		o.Decisions == nil && o.ActivityLog == nil
}
