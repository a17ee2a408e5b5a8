// Package analytics computes rollup statistics over a tenant's visit
// history. Every aggregate is recomputed from the visit table on each
// request; there is no caching and no staleness window.
package analytics

import (
	"context"
	"sort"
	"time"

	"foodbanked/internal/localday"
	"foodbanked/internal/models"
	"foodbanked/internal/repositories"

	"github.com/google/uuid"
)

// TrendPoint is one day in the visit-count series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AgeTotals sums the three non-overlapping age brackets across a window.
type AgeTotals struct {
	Age0To18  int `json:"age_0_18"`
	Age19To59 int `json:"age_19_59"`
	Age60Plus int `json:"age_60_plus"`
}

// ZipcodeCount is one entry in the top-zip-codes list. Percent is
// relative to the maximum count among the returned entries, not the
// window total: the busiest zip always shows 100.
type ZipcodeCount struct {
	Zipcode string  `json:"zipcode"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// HouseholdSizeBucket is one bar of the household-size histogram.
// Percent is relative to the modal count.
type HouseholdSizeBucket struct {
	Size    int     `json:"size"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// WindowStats are the rollups for one tenant and date window.
type WindowStats struct {
	StartDate         string                `json:"start_date"`
	EndDate           string                `json:"end_date"`
	TotalVisits       int                   `json:"total_visits"`
	UniqueHouseholds  int                   `json:"unique_households"`
	PeopleServed      int                   `json:"people_served"`
	FirstTimeVisitors int                   `json:"first_time_visitors"`
	Trend             []TrendPoint          `json:"trend"`
	AgeTotals         AgeTotals             `json:"age_totals"`
	TopZipcodes       []ZipcodeCount        `json:"top_zipcodes"`
	HouseholdSizes    []HouseholdSizeBucket `json:"household_sizes"`
}

// DashboardSummary backs the post-login dashboard.
type DashboardSummary struct {
	VisitsToday     int             `json:"visits_today"`
	VisitsThisWeek  int             `json:"visits_this_week"`
	VisitsThisMonth int             `json:"visits_this_month"`
	TotalPatrons    int             `json:"total_patrons"`
	RecentVisits    []*models.Visit `json:"recent_visits"`
}

// MemberStats is one member foodbank's contribution to an organization
// rollup.
type MemberStats struct {
	FoodbankID   uuid.UUID `json:"foodbank_id"`
	Name         string    `json:"name"`
	TotalVisits  int       `json:"total_visits"`
	PeopleServed int       `json:"people_served"`
}

// OrganizationStats aggregates across all member foodbanks, bucketed by
// the organization's own timezone.
type OrganizationStats struct {
	Combined WindowStats    `json:"combined"`
	Members  []*MemberStats `json:"members"`
}

const (
	topZipcodeLimit = 5
	dateFormat      = "2006-01-02"
)

// Service computes visit statistics from the repositories.
type Service struct {
	visitRepo    repositories.VisitRepository
	patronRepo   repositories.PatronRepository
	foodbankRepo repositories.FoodbankRepository
	orgRepo      repositories.OrganizationRepository
	now          func() time.Time
}

func NewService(visitRepo repositories.VisitRepository, patronRepo repositories.PatronRepository, foodbankRepo repositories.FoodbankRepository, orgRepo repositories.OrganizationRepository) *Service {
	return &Service{
		visitRepo:    visitRepo,
		patronRepo:   patronRepo,
		foodbankRepo: foodbankRepo,
		orgRepo:      orgRepo,
		now:          time.Now,
	}
}

// MonthToDate computes stats for the current month in the tenant's local
// calendar, the default stats window.
func (s *Service) MonthToDate(ctx context.Context, tenantID uuid.UUID) (*WindowStats, error) {
	foodbank, err := s.foodbankRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	today, err := localday.Today(foodbank.Timezone, s.now())
	if err != nil {
		return nil, err
	}
	return s.Window(ctx, tenantID, localday.StartOfMonth(today), today)
}

// YearToDate computes stats from January 1st through the tenant-local
// today.
func (s *Service) YearToDate(ctx context.Context, tenantID uuid.UUID) (*WindowStats, error) {
	foodbank, err := s.foodbankRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	today, err := localday.Today(foodbank.Timezone, s.now())
	if err != nil {
		return nil, err
	}
	return s.Window(ctx, tenantID, localday.StartOfYear(today), today)
}

// Window computes stats for an explicit inclusive date range. The trend
// series always covers the 30 calendar days ending at the window end,
// zero-filled, oldest first.
func (s *Service) Window(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*WindowStats, error) {
	visits, err := s.visitRepo.ListBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	trendStart := localday.TrendWindow(to)
	trendVisits, err := s.visitRepo.ListBetween(ctx, tenantID, trendStart, to)
	if err != nil {
		return nil, err
	}

	stats := computeWindow(visits, from, to)
	stats.Trend = computeTrend(trendVisits, to)
	return stats, nil
}

// Dashboard computes the quick counts for the tenant dashboard: visits
// today, since Monday, and since the 1st, all in the tenant's zone.
func (s *Service) Dashboard(ctx context.Context, tenantID uuid.UUID) (*DashboardSummary, error) {
	foodbank, err := s.foodbankRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	today, err := localday.Today(foodbank.Timezone, s.now())
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{}
	if summary.VisitsToday, err = s.visitRepo.CountOnDate(ctx, tenantID, today); err != nil {
		return nil, err
	}
	if summary.VisitsThisWeek, err = s.visitRepo.CountSince(ctx, tenantID, localday.StartOfWeek(today)); err != nil {
		return nil, err
	}
	if summary.VisitsThisMonth, err = s.visitRepo.CountSince(ctx, tenantID, localday.StartOfMonth(today)); err != nil {
		return nil, err
	}
	if summary.TotalPatrons, err = s.patronRepo.CountByTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	if summary.RecentVisits, err = s.visitRepo.ListRecent(ctx, tenantID, 5); err != nil {
		return nil, err
	}
	return summary, nil
}

// ForOrganization rolls up month-to-date stats across every member
// foodbank. The window is bucketed by the organization's own configured
// timezone, never an arbitrary member's.
func (s *Service) ForOrganization(ctx context.Context, organizationID uuid.UUID) (*OrganizationStats, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	today, err := localday.Today(org.Timezone, s.now())
	if err != nil {
		return nil, err
	}
	from, to := localday.StartOfMonth(today), today

	members, err := s.foodbankRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	// The trend window reaches back past the 1st for most of the month,
	// so it needs its own fetch per member, same as Window.
	trendStart := localday.TrendWindow(to)

	var all, trendAll []*models.Visit
	result := &OrganizationStats{Members: make([]*MemberStats, 0, len(members))}
	for _, member := range members {
		visits, err := s.visitRepo.ListBetween(ctx, member.ID, from, to)
		if err != nil {
			return nil, err
		}
		ms := &MemberStats{FoodbankID: member.ID, Name: member.Name, TotalVisits: len(visits)}
		for _, v := range visits {
			ms.PeopleServed += v.HouseholdSize
		}
		result.Members = append(result.Members, ms)
		all = append(all, visits...)

		trendVisits, err := s.visitRepo.ListBetween(ctx, member.ID, trendStart, to)
		if err != nil {
			return nil, err
		}
		trendAll = append(trendAll, trendVisits...)
	}

	combined := computeWindow(all, from, to)
	combined.Trend = computeTrend(trendAll, to)
	result.Combined = *combined
	return result, nil
}

func computeWindow(visits []*models.Visit, from, to time.Time) *WindowStats {
	stats := &WindowStats{
		StartDate:   from.Format(dateFormat),
		EndDate:     to.Format(dateFormat),
		TotalVisits: len(visits),
	}

	patrons := make(map[uuid.UUID]struct{})
	anonymous := 0
	zipCounts := make(map[string]int)
	sizeCounts := make(map[int]int)

	for _, v := range visits {
		if v.PatronID != nil {
			patrons[*v.PatronID] = struct{}{}
		} else {
			// Without a patron reference there is nothing to dedupe on:
			// every anonymous visit counts as its own household.
			anonymous++
		}
		stats.PeopleServed += v.HouseholdSize
		if v.FirstVisitThisMonth {
			stats.FirstTimeVisitors++
		}
		stats.AgeTotals.Age0To18 += v.Age0To18
		stats.AgeTotals.Age19To59 += v.Age19To59
		stats.AgeTotals.Age60Plus += v.Age60Plus
		zipCounts[v.Zipcode]++
		sizeCounts[v.HouseholdSize]++
	}

	stats.UniqueHouseholds = len(patrons) + anonymous
	stats.TopZipcodes = topZipcodes(zipCounts)
	stats.HouseholdSizes = householdHistogram(sizeCounts)
	return stats
}

// computeTrend builds the 30-point daily series ending on endDate,
// oldest to newest, with every calendar day present even at zero.
func computeTrend(visits []*models.Visit, endDate time.Time) []TrendPoint {
	counts := make(map[string]int)
	for _, v := range visits {
		counts[v.VisitDate.Format(dateFormat)]++
	}

	points := make([]TrendPoint, 0, localday.TrendDays)
	for i := localday.TrendDays - 1; i >= 0; i-- {
		day := endDate.AddDate(0, 0, -i).Format(dateFormat)
		points = append(points, TrendPoint{Date: day, Count: counts[day]})
	}
	return points
}

func topZipcodes(zipCounts map[string]int) []ZipcodeCount {
	entries := make([]ZipcodeCount, 0, len(zipCounts))
	for zip, count := range zipCounts {
		entries = append(entries, ZipcodeCount{Zipcode: zip, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Zipcode < entries[j].Zipcode
	})
	if len(entries) > topZipcodeLimit {
		entries = entries[:topZipcodeLimit]
	}
	if len(entries) > 0 {
		max := entries[0].Count
		for i := range entries {
			entries[i].Percent = float64(entries[i].Count) / float64(max) * 100
		}
	}
	return entries
}

func householdHistogram(sizeCounts map[int]int) []HouseholdSizeBucket {
	buckets := make([]HouseholdSizeBucket, 0, len(sizeCounts))
	mode := 0
	for size, count := range sizeCounts {
		buckets = append(buckets, HouseholdSizeBucket{Size: size, Count: count})
		if count > mode {
			mode = count
		}
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Size < buckets[j].Size })
	for i := range buckets {
		buckets[i].Percent = float64(buckets[i].Count) / float64(mode) * 100
	}
	return buckets
}
