package service

import (
	"context"
	"fmt"

	"netsecurepro/internal/domain/model"
	"netsecurepro/internal/domain/repository"
)

const (
	recentAlertLimit = 5
	recentLogLimit   = 10
)

type DashboardService struct {
	alertRepo repository.AlertRepository
	logRepo   repository.LogRepository
}

func NewDashboardService(alertRepo repository.AlertRepository, logRepo repository.LogRepository) *DashboardService {
	return &DashboardService{alertRepo: alertRepo, logRepo: logRepo}
}

type DashboardData struct {
	Alerts []model.SecurityAlert
	Logs   []model.SecurityLog
}

// Overview returns the newest alerts and log entries owned by a user. Pure
// read, no mutation.
func (s *DashboardService) Overview(ctx context.Context, userID uint) (*DashboardData, error) {
	alerts, err := s.alertRepo.ListRecentForUser(ctx, userID, recentAlertLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	logs, err := s.logRepo.ListRecentForUser(ctx, userID, recentLogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list security logs: %w", err)
	}

	return &DashboardData{Alerts: alerts, Logs: logs}, nil
}
