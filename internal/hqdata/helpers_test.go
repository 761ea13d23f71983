package hqdata

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// sequentialIDs returns an id generator yielding act-001, act-002, ...
func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++

		return fmt.Sprintf("act-%03d", n)
	}
}

func testBaseline() Dataset {
	return Dataset{
		Meta: Meta{ProjectName: "Test", Version: "1.0.0", LastUpdated: "2026-10-01"},
		Issues: []Issue{
			{ID: "ISS-0002", Title: "Crash on login", Type: TypeBug, Severity: SeverityHigh, Priority: P1, Status: StatusTodo, Area: "Auth", Description: "Null session", ScreenshotIDs: []string{"SS-0001", "SS-0404"}, CreatedAt: "2026-09-02", UpdatedAt: "2026-09-02"},
			{ID: "ISS-0001", Title: "Dark mode", Type: TypeEnhancement, Severity: SeverityMedium, Priority: P2, Status: StatusBacklog, Area: "Settings", Description: "Add a theme toggle", CreatedAt: "2026-09-01", UpdatedAt: "2026-09-01"},
		},
		Screenshots: []Screenshot{
			{ID: "SS-0001", Name: "Login error", Path: "shots/login.png", Feature: "Auth", Tags: []string{"error"}, RelatedIssueIDs: []string{"ISS-0002", "ISS-0999"}, CreatedAt: "2026-09-02"},
		},
		Links: []Link{
			{ID: "LNK-0001", Title: "Docs", URL: "https://docs.example.com", Category: "Docs", Type: LinkExternal, LastUpdated: "2026-09-01"},
		},
		Decisions: []Decision{
			{ID: "DEC-0001", Date: "2026-09-01", Title: "Use Go", Context: "Tooling", Decision: "Write it in Go", Status: "accepted"},
		},
		ActivityLog: []ActivityEntry{
			{ID: "seed-1", Timestamp: "2026-09-01T10:00:00Z", Action: "issue.created", Target: "ISS-0001"},
		},
		Builds:                []Build{{BuildNumber: "7", Version: "1.0.0", Platform: "iOS", Date: "2026-09-30", Status: "testing"}},
		Sprints:               []Sprint{{ID: "SPR-1", Name: "Sprint 1", StartDate: "2026-09-01", EndDate: "2026-09-14", Status: "active"}},
		MarketplaceCategories: []MarketplaceCategory{{ID: "CAT-1", Name: "Gear", Status: "live", ItemCount: 3}},
		Compliance:            json.RawMessage(`{"checklists":[]}`),
		Architecture:          json.RawMessage(`{"layers":["app"]}`),
		QuickLinks:            []QuickLink{{Title: "Docs", URL: "https://docs.example.com"}},
		RecentChanges:         []RecentChange{{Date: "2026-09-30", Summary: "Build 7"}},
	}
}

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore()

	return NewService(testBaseline(), store, WithClock(fixedClock), WithIDFunc(sequentialIDs())), store
}

func mustMerged(t *testing.T, svc *Service) Dataset {
	t.Helper()

	ds, err := svc.Merged()
	require.NoError(t, err)

	return ds
}

func mustExport(t *testing.T, svc *Service) string {
	t.Helper()

	text, err := svc.Export()
	require.NoError(t, err)

	return text
}
