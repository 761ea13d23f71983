package hqdata

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// MaxActivityEntries caps the activity log; older entries are dropped.
const MaxActivityEntries = 100

// Service is the mutation API over a baseline and an override [Store].
//
// Every mutation computes the merged view, transforms one collection and
// writes the entire override blob back. The merged view is never cached.
//
// Service performs no input validation; callers must check required fields
// and enumeration values before calling it.
type Service struct {
	baseline Dataset
	store    Store
	now      func() time.Time
	newID    func() string
}

// Option configures a [Service].
type Option func(*Service)

// WithClock sets the clock used for timestamps. Defaults to [time.Now].
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDFunc sets the generator for activity entry ids. Defaults to UUIDv7.
func WithIDFunc(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService returns a [Service] layering store over baseline.
func NewService(baseline Dataset, store Store, opts ...Option) *Service {
	s := &Service{
		baseline: normalize(baseline),
		store:    store,
		now:      time.Now,
		newID:    newActivityID,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// newActivityID returns a time-ordered UUIDv7, or a random UUID if the
// clock sequence cannot be read.
func newActivityID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

// Baseline returns the baseline the service was created with.
func (s *Service) Baseline() Dataset {
	return Merge(s.baseline, Overrides{})
}

// Merged returns the baseline with the current overrides applied.
func (s *Service) Merged() (Dataset, error) {
	o, err := s.store.Read()
	if err != nil {
		return Dataset{}, err
	}

	return Merge(s.baseline, o), nil
}

// NewIssue holds the caller-supplied fields of a new issue.
type NewIssue struct {
	Title         string
	Type          IssueType
	Priority      Priority
	Status        Status
	Area          string
	Screen        string
	Platform      string
	Assignee      string
	SprintID      string
	BuildNumber   string
	Description   string
	RootCause     string
	FixApproach   string
	Files         []string
	ScreenshotIDs []string
}

// IssueUpdate lists the mutable issue fields; nil means unchanged.
// Identifier, creation date and severity cannot be updated.
type IssueUpdate struct {
	Title         *string
	Type          *IssueType
	Priority      *Priority
	Status        *Status
	Area          *string
	Screen        *string
	Platform      *string
	Assignee      *string
	SprintID      *string
	BuildNumber   *string
	Description   *string
	RootCause     *string
	FixApproach   *string
	Files         *[]string
	ScreenshotIDs *[]string
}

// AddIssue creates an issue and prepends it to the issues collection.
// Its severity is derived from its priority.
func (s *Service) AddIssue(in NewIssue) (Issue, error) {
	var created Issue

	err := s.mutate(func(ds Dataset, o *Overrides) {
		today := s.today()

		created = Issue{
			ID:            nextID(IssuePrefix, issueIDs(ds.Issues)),
			Title:         in.Title,
			Type:          in.Type,
			Severity:      in.Priority.Severity(),
			Priority:      in.Priority,
			Status:        in.Status,
			Area:          in.Area,
			Screen:        in.Screen,
			Platform:      in.Platform,
			Assignee:      in.Assignee,
			SprintID:      in.SprintID,
			BuildNumber:   in.BuildNumber,
			Description:   in.Description,
			RootCause:     in.RootCause,
			FixApproach:   in.FixApproach,
			Files:         slices.Clone(in.Files),
			ScreenshotIDs: slices.Clone(in.ScreenshotIDs),
			CreatedAt:     today,
			UpdatedAt:     today,
		}

		o.Issues = append([]Issue{created}, ds.Issues...)
	})
	if err != nil {
		return Issue{}, err
	}

	return created, nil
}

// UpdateIssue applies u to the issue with the given id and refreshes its
// updatedAt. Returns [ErrIssueNotFound] without writing if there is no such issue.
func (s *Service) UpdateIssue(id string, u IssueUpdate) (Issue, error) {
	var updated Issue

	err := s.mutateErr(func(ds Dataset, o *Overrides) error {
		idx := slices.IndexFunc(ds.Issues, func(issue Issue) bool { return issue.ID == id })
		if idx < 0 {
			return ErrIssueNotFound
		}

		issues := ds.Issues
		issues[idx] = applyUpdate(issues[idx], u)
		issues[idx].UpdatedAt = s.today()
		updated = issues[idx]

		o.Issues = issues

		return nil
	})
	if err != nil {
		return Issue{}, err
	}

	return updated, nil
}

// DeleteIssue removes the issue with the given id. References to it from
// screenshots are left in place. Returns [ErrIssueNotFound] without writing
// if there is no such issue.
func (s *Service) DeleteIssue(id string) error {
	return s.mutateErr(func(ds Dataset, o *Overrides) error {
		idx := slices.IndexFunc(ds.Issues, func(issue Issue) bool { return issue.ID == id })
		if idx < 0 {
			return ErrIssueNotFound
		}

		o.Issues = slices.Delete(ds.Issues, idx, idx+1)

		return nil
	})
}

// NewScreenshot holds the caller-supplied fields of a new screenshot.
type NewScreenshot struct {
	Name            string
	Path            string
	Feature         string
	Tags            []string
	Platform        string
	RelatedIssueIDs []string
	Notes           string
}

// AddScreenshot creates a screenshot and prepends it to the screenshots collection.
func (s *Service) AddScreenshot(in NewScreenshot) (Screenshot, error) {
	var created Screenshot

	err := s.mutate(func(ds Dataset, o *Overrides) {
		created = Screenshot{
			ID:              nextID(ScreenshotPrefix, screenshotIDs(ds.Screenshots)),
			Name:            in.Name,
			Path:            in.Path,
			Feature:         in.Feature,
			Tags:            orEmpty(slices.Clone(in.Tags)),
			Platform:        in.Platform,
			RelatedIssueIDs: slices.Clone(in.RelatedIssueIDs),
			Notes:           in.Notes,
			CreatedAt:       s.today(),
		}

		o.Screenshots = append([]Screenshot{created}, ds.Screenshots...)
	})
	if err != nil {
		return Screenshot{}, err
	}

	return created, nil
}

// NewLink holds the caller-supplied fields of a new link.
type NewLink struct {
	Title    string
	URL      string
	Category string
	Type     LinkType
	Owner    string
	Notes    string
}

// AddLink creates a link and prepends it to the links collection.
func (s *Service) AddLink(in NewLink) (Link, error) {
	var created Link

	err := s.mutate(func(ds Dataset, o *Overrides) {
		created = Link{
			ID:          nextID(LinkPrefix, linkIDs(ds.Links)),
			Title:       in.Title,
			URL:         in.URL,
			Category:    in.Category,
			Type:        in.Type,
			Owner:       in.Owner,
			Notes:       in.Notes,
			LastUpdated: s.today(),
		}

		o.Links = append([]Link{created}, ds.Links...)
	})
	if err != nil {
		return Link{}, err
	}

	return created, nil
}

// NewActivity holds the caller-supplied fields of an activity entry.
type NewActivity struct {
	Action  string
	Target  string
	Details string
	Actor   string
}

// AddActivity prepends an entry to the activity log and keeps only the
// [MaxActivityEntries] newest entries.
func (s *Service) AddActivity(in NewActivity) (ActivityEntry, error) {
	var created ActivityEntry

	err := s.mutate(func(ds Dataset, o *Overrides) {
		created = ActivityEntry{
			ID:        s.newID(),
			Timestamp: s.now().UTC().Format(time.RFC3339),
			Action:    in.Action,
			Target:    in.Target,
			Details:   in.Details,
			Actor:     in.Actor,
		}

		log := append([]ActivityEntry{created}, ds.ActivityLog...)
		if len(log) > MaxActivityEntries {
			log = log[:MaxActivityEntries]
		}

		o.ActivityLog = log
	})
	if err != nil {
		return ActivityEntry{}, err
	}

	return created, nil
}

// Reset clears every override, reverting all collections to baseline.
func (s *Service) Reset() error {
	return s.store.Clear()
}

// mutate runs fn against the merged view and persists the overrides it
// produces. fn receives its own copy of every collection.
func (s *Service) mutate(fn func(ds Dataset, o *Overrides)) error {
	return s.mutateErr(func(ds Dataset, o *Overrides) error {
		fn(ds, o)

		return nil
	})
}

// mutateErr is like mutate, but nothing is written if fn fails.
func (s *Service) mutateErr(fn func(ds Dataset, o *Overrides) error) error {
	o, err := s.store.Read()
	if err != nil {
		return err
	}

	merged := Merge(s.baseline, o)

	err = fn(merged, &o)
	if err != nil {
		return err
	}

	return s.store.Write(o)
}

func (s *Service) today() string {
	return s.now().Format(time.DateOnly)
}

func applyUpdate(issue Issue, u IssueUpdate) Issue {
	set(&issue.Title, u.Title)
	set(&issue.Type, u.Type)
	set(&issue.Priority, u.Priority)
	set(&issue.Status, u.Status)
	set(&issue.Area, u.Area)
	set(&issue.Screen, u.Screen)
	set(&issue.Platform, u.Platform)
	set(&issue.Assignee, u.Assignee)
	set(&issue.SprintID, u.SprintID)
	set(&issue.BuildNumber, u.BuildNumber)
	set(&issue.Description, u.Description)
	set(&issue.RootCause, u.RootCause)
	set(&issue.FixApproach, u.FixApproach)

	if u.Files != nil {
		issue.Files = slices.Clone(*u.Files)
	}

	if u.ScreenshotIDs != nil {
		issue.ScreenshotIDs = slices.Clone(*u.ScreenshotIDs)
	}

	return issue
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
