package services

import (
	"fmt"

	"github.com/yukikurage/document-management-api/internal/constants"
	"github.com/yukikurage/document-management-api/internal/repository"
)

// DashboardService computes the landing page summary on every call.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	activityRepo  repository.ActivityRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo repository.DashboardRepository, activityRepo repository.ActivityRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		activityRepo:  activityRepo,
	}
}

// Summary is the dashboard payload.
type Summary struct {
	DocumentCount    int64                       `json:"documentCount"`
	FolderCount      int64                       `json:"folderCount"`
	FileCount        int64                       `json:"fileCount"`
	LatestDocuments  []repository.LatestDocument `json:"latestDocuments"`
	LatestActivities []repository.ActivityView   `json:"latestActivities"`
}

func (s *DashboardService) Summary() (*Summary, error) {
	counts, err := s.dashboardRepo.Counts()
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	latest, err := s.dashboardRepo.LatestDocuments(constants.DashboardLatestLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest documents: %w", err)
	}

	activities, err := s.activityRepo.Latest(constants.DashboardLatestLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest activities: %w", err)
	}

	return &Summary{
		DocumentCount:    counts.DocumentCount,
		FolderCount:      counts.FolderCount,
		FileCount:        counts.FileCount,
		LatestDocuments:  latest,
		LatestActivities: activities,
	}, nil
}
