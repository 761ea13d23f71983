package hqdata

// FindIssue returns the issue with the given id. The boolean is false when
// no such issue exists.
func FindIssue(ds Dataset, id string) (Issue, bool) {
	for _, issue := range ds.Issues {
		if issue.ID == id {
			return issue, true
		}
	}

	return Issue{}, false
}

// FindScreenshot returns the screenshot with the given id. The boolean is
// false when no such screenshot exists.
func FindScreenshot(ds Dataset, id string) (Screenshot, bool) {
	for _, shot := range ds.Screenshots {
		if shot.ID == id {
			return shot, true
		}
	}

	return Screenshot{}, false
}

// IssueScreenshots resolves issue.ScreenshotIDs in reference order.
// Ids that no longer resolve are skipped.
func IssueScreenshots(ds Dataset, issue Issue) []Screenshot {
	var shots []Screenshot

	for _, id := range issue.ScreenshotIDs {
		if shot, ok := FindScreenshot(ds, id); ok {
			shots = append(shots, shot)
		}
	}

	return shots
}

// ScreenshotIssues resolves shot.RelatedIssueIDs in reference order.
// Ids that no longer resolve are skipped.
func ScreenshotIssues(ds Dataset, shot Screenshot) []Issue {
	var issues []Issue

	for _, id := range shot.RelatedIssueIDs {
		if issue, ok := FindIssue(ds, id); ok {
			issues = append(issues, issue)
		}
	}

	return issues
}
