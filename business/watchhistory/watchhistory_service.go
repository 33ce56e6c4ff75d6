package watchhistory

import (
	"context"
	"fmt"
	"watchwise/domain"
	"watchwise/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type WatchedRepository interface {
	Add(ctx context.Context, userID, contentID string) (bool, error)
	Remove(ctx context.Context, userID, contentID string) (bool, error)
	Count(ctx context.Context, userID string) (int, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.WatchedItem, error)
	ListContentIDs(ctx context.Context, userID string) ([]string, error)
}

type ContentRepository interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.ContentRecord, error)
}

// Snapshot is the slice of watch history the recommendation prompt needs.
type Snapshot struct {
	Recent     []domain.WatchedItem
	WatchedIDs []string
}

type watchHistoryService struct {
	watchedRepo WatchedRepository
	contentRepo ContentRepository
}

func NewWatchHistoryService(watchedRepo WatchedRepository, contentRepo ContentRepository) *watchHistoryService {
	return &watchHistoryService{
		watchedRepo: watchedRepo,
		contentRepo: contentRepo,
	}
}

func (s *watchHistoryService) MarkWatched(ctx context.Context, userID, contentID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	records, err := s.contentRepo.FindByIDs(ctx, []string{contentID})
	if err != nil {
		logger.Error("Failed to check content", err)
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("content %s: %w", contentID, domain.ErrNotFound)
	}

	added, err := s.watchedRepo.Add(ctx, userID, contentID)
	if err != nil {
		logger.Error("Failed to mark content watched", err)
		return err
	}

	logger.Debug("Marked content watched", "user_id", userID, "content_id", contentID, "added", added)
	return nil
}

// UnmarkWatched is idempotent; removing something that was never watched
// is not an error.
func (s *watchHistoryService) UnmarkWatched(ctx context.Context, userID, contentID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	removed, err := s.watchedRepo.Remove(ctx, userID, contentID)
	if err != nil {
		logger.Error("Failed to unmark content watched", err)
		return err
	}

	logger.Debug("Unmarked content watched", "user_id", userID, "content_id", contentID, "removed", removed)
	return nil
}

func (s *watchHistoryService) ListWatched(ctx context.Context, userID string) ([]domain.WatchedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	items, err := s.watchedRepo.ListRecent(ctx, userID, 0)
	if err != nil {
		logger.Error("Failed to list watched content", err)
		return nil, err
	}

	return items, nil
}

// Fingerprint is the number of watched items. Any add or remove changes it,
// which is what invalidates cached recommendations.
func (s *watchHistoryService) Fingerprint(ctx context.Context, userID string) (int, error) {
	count, err := s.watchedRepo.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute watch fingerprint: %w", err)
	}

	return count, nil
}

func (s *watchHistoryService) Snapshot(ctx context.Context, userID string, recentLimit int) (Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recent, err := s.watchedRepo.ListRecent(gctx, userID, recentLimit)
		if err != nil {
			return err
		}
		snap.Recent = recent
		return nil
	})
	g.Go(func() error {
		ids, err := s.watchedRepo.ListContentIDs(gctx, userID)
		if err != nil {
			return err
		}
		snap.WatchedIDs = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load watch history: %w", err)
	}

	return snap, nil
}
