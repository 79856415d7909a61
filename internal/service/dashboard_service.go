package service

import (
	"context"
	"fmt"

	"github.com/comexweb/internal/db"
	"gorm.io/gorm"
)

// DashboardStats 汇总后台首页的待办数量。
type DashboardStats struct {
	NewOrders      int64 `json:"newOrders"`
	NewLeads       int64 `json:"newLeads"`
	NewQueries     int64 `json:"newQueries"`
	DraftPosts     int64 `json:"draftPosts"`
	ActiveProducts int64 `json:"activeProducts"`
}

// DashboardService computes back office counters.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService returns a DashboardService.
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

// Stats counts the records that need attention.
func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	gdb := s.db.WithContext(ctx)

	counts := []struct {
		model any
		where string
		arg   any
		dst   *int64
	}{
		{&db.Order{}, "status = ?", db.StatusNew, &stats.NewOrders},
		{&db.WholesaleLead{}, "status = ?", db.StatusNew, &stats.NewLeads},
		{&db.ContactQuery{}, "status = ?", db.StatusNew, &stats.NewQueries},
		{&db.Post{}, "status = ?", db.PostStatusDraft, &stats.DraftPosts},
		{&db.Product{}, "active = ?", true, &stats.ActiveProducts},
	}
	for _, c := range counts {
		if err := gdb.Model(c.model).Where(c.where, c.arg).Count(c.dst).Error; err != nil {
			return stats, fmt.Errorf("dashboard count: %w", err)
		}
	}
	return stats, nil
}
