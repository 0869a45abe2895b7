package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"citycare/internal/complaint"
	"citycare/internal/resource"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const adminStatsCacheKey = "analytics:admin_dashboard"
const adminStatsCacheTTL = 60 * time.Second

// Service computes dashboard statistics
type Service struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewService creates a new analytics service. The redis client may be nil;
// caching is then skipped.
func NewService(db *gorm.DB, redisClient *redis.Client) *Service {
	return &Service{db: db, redis: redisClient}
}

// AdminDashboard computes the admin overview, cached for a short TTL.
func (s *Service) AdminDashboard(ctx context.Context) (*AdminDashboardStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, adminStatsCacheKey).Result(); err == nil {
			var stats AdminDashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	now := time.Now().UTC()
	weekStart := now.AddDate(0, 0, -7)
	prevWeekStart := now.AddDate(0, 0, -14)

	stats := &AdminDashboardStats{}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalComplaints, s.db.Model(&complaint.Complaint{}).Where("created_at >= ?", weekStart)},
		{&stats.InProgress, s.db.Model(&complaint.Complaint{}).Where("status = ?", complaint.StatusInProgress)},
		{&stats.Resolved, s.db.Model(&complaint.Complaint{}).Where("status = ?", complaint.StatusResolved)},
		{&stats.HighPriority, s.db.Model(&complaint.Complaint{}).
			Where("priority = ? AND status IN ?", complaint.PriorityHigh,
				[]string{complaint.StatusOpen, complaint.StatusInProgress})},
		{&stats.TotalResources, s.db.Model(&resource.Resource{}).
			Where("lifecycle_state = ?", resource.LifecycleActive)},
		{&stats.AvailableResources, s.db.Model(&resource.Resource{}).
			Where("lifecycle_state = ? AND availability_status = ?",
				resource.LifecycleActive, resource.AvailabilityAvailable)},
		{&stats.BusyResources, s.db.Model(&resource.Resource{}).
			Where("lifecycle_state = ? AND availability_status = ?",
				resource.LifecycleActive, resource.AvailabilityBusy)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	prevWindow := func(extra string, args ...interface{}) (int64, error) {
		query := s.db.Model(&complaint.Complaint{}).
			Where("created_at >= ? AND created_at < ?", prevWeekStart, weekStart)
		if extra != "" {
			query = query.Where(extra, args...)
		}
		var n int64
		if err := query.Count(&n).Error; err != nil {
			return 0, fmt.Errorf("failed to compute previous-week stats: %w", err)
		}
		return n, nil
	}

	prevTotal, err := prevWindow("")
	if err != nil {
		return nil, err
	}
	prevInProgress, err := prevWindow("status = ?", complaint.StatusInProgress)
	if err != nil {
		return nil, err
	}
	prevResolved, err := prevWindow("status = ?", complaint.StatusResolved)
	if err != nil {
		return nil, err
	}
	prevHigh, err := prevWindow("priority = ?", complaint.PriorityHigh)
	if err != nil {
		return nil, err
	}

	stats.TotalComplaintsChange = PercentChange(stats.TotalComplaints, prevTotal)
	stats.InProgressChange = PercentChange(stats.InProgress, prevInProgress)
	stats.ResolvedChange = PercentChange(stats.Resolved, prevResolved)
	stats.HighPriorityChange = PercentChange(stats.HighPriority, prevHigh)

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.redis.Set(ctx, adminStatsCacheKey, payload, adminStatsCacheTTL)
		}
	}

	return stats, nil
}

// UserDashboard computes one citizen's complaint counts.
func (s *Service) UserDashboard(userID uuid.UUID) (*UserDashboardStats, error) {
	stats := &UserDashboardStats{}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalComplaints, s.db.Model(&complaint.Complaint{}).Where("reporter_id = ?", userID)},
		{&stats.InProgress, s.db.Model(&complaint.Complaint{}).
			Where("reporter_id = ? AND status = ?", userID, complaint.StatusInProgress)},
		{&stats.Resolved, s.db.Model(&complaint.Complaint{}).
			Where("reporter_id = ? AND status = ?", userID, complaint.StatusResolved)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to compute user stats: %w", err)
		}
	}

	return stats, nil
}

// PercentChange returns the week-over-week change rounded to two decimals,
// or nil when there is no previous-week baseline.
func PercentChange(current, previous int64) *float64 {
	if previous == 0 {
		return nil
	}
	change := math.Round(float64(current-previous)/float64(previous)*10000) / 100
	return &change
}
