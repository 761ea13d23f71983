package hqdata

import "slices"

// Merge layers overrides over baseline.
//
// Each overridable collection (issues, screenshots, links, decisions,
// activityLog) is taken whole from overrides when present and from baseline
// otherwise; records are never unioned. Every other field always comes from
// baseline. The result shares no collection storage with either input.
func Merge(baseline Dataset, overrides Overrides) Dataset {
	merged := baseline

	merged.Issues = pick(overrides.Issues, baseline.Issues)
	merged.Screenshots = pick(overrides.Screenshots, baseline.Screenshots)
	merged.Links = pick(overrides.Links, baseline.Links)
	merged.Decisions = pick(overrides.Decisions, baseline.Decisions)
	merged.ActivityLog = pick(overrides.ActivityLog, baseline.ActivityLog)

	merged.Builds = slices.Clone(baseline.Builds)
	merged.Sprints = slices.Clone(baseline.Sprints)
	merged.MarketplaceCategories = slices.Clone(baseline.MarketplaceCategories)
	merged.QuickLinks = slices.Clone(baseline.QuickLinks)
	merged.RecentChanges = slices.Clone(baseline.RecentChanges)
	merged.Compliance = slices.Clone(baseline.Compliance)
	merged.Architecture = slices.Clone(baseline.Architecture)

	return normalize(merged)
}

func pick[T any](override, base []T) []T {
	if override != nil {
		return slices.Clone(override)
	}

	return slices.Clone(base)
}
