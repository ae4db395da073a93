package service

import (
	"context"

	"astrolabe/internal/models"
	"astrolabe/internal/repository"
)

type ContentQueryService struct {
	Repo repository.ContentRepository
}

type DailyContentsResult struct {
	Items []models.DailyContent
	Total int64
}

func (s *ContentQueryService) ListDailyContents(ctx context.Context, params repository.ListDailyContentsParams) (DailyContentsResult, error) {
	total, err := s.Repo.CountDailyContents(ctx, params)
	if err != nil {
		return DailyContentsResult{}, err
	}
	items, err := s.Repo.ListDailyContents(ctx, params)
	if err != nil {
		return DailyContentsResult{}, err
	}
	return DailyContentsResult{Items: items, Total: total}, nil
}

func (s *ContentQueryService) ListSyncStates(ctx context.Context) ([]models.ContentSyncState, error) {
	return s.Repo.ListSyncStates(ctx)
}
