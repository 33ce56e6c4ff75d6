package recommendation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"watchwise/business/catalog"
	"watchwise/business/watchhistory"
	"watchwise/domain"
	"watchwise/pkg/logger"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type CacheRepository interface {
	Get(ctx context.Context, userID string) (domain.CachedRecommendationSet, bool, error)
	Upsert(ctx context.Context, set domain.CachedRecommendationSet) error
}

type WatchHistory interface {
	Fingerprint(ctx context.Context, userID string) (int, error)
	Snapshot(ctx context.Context, userID string, recentLimit int) (watchhistory.Snapshot, error)
}

type Catalog interface {
	Lookup(ctx context.Context) (*catalog.Lookup, error)
	Candidates(ctx context.Context, excludeIDs []string, limit int) ([]domain.ContentRecord, error)
	MatchTitles(ctx context.Context, titles []string) ([]domain.ContentRecord, error)
}

type RatingReader interface {
	UserRatings(ctx context.Context, userID string) (map[string]int, error)
}

type PreferenceReader interface {
	GetPreferences(ctx context.Context, userID string) (domain.UserPreference, error)
}

// Gateway asks the model for suggestions. Errors are domain.ErrRateLimited,
// domain.ErrUpstream or domain.ErrMalformedResponse.
type Gateway interface {
	RequestSuggestions(ctx context.Context, prompt string) ([]domain.ModelSuggestion, error)
}

const (
	outcomeSuccess       = "success"
	outcomeRateLimited   = "rate_limited"
	outcomeUpstreamError = "upstream_error"
	outcomeMalformed     = "malformed"
	outcomeInternalError = "internal_error"
	outcomePeerServed    = "peer_served"
)

type recommendationService struct {
	cache       CacheRepository
	history     WatchHistory
	catalog     Catalog
	ratings     RatingReader
	preferences PreferenceReader
	gateway     Gateway
	lock        RegenerationLock
	cfg         Config

	flight singleflight.Group
	now    func() time.Time
}

func NewRecommendationService(
	cache CacheRepository,
	history WatchHistory,
	catalogSvc Catalog,
	ratings RatingReader,
	preferences PreferenceReader,
	gateway Gateway,
	lock RegenerationLock,
	cfg Config,
) *recommendationService {
	if lock == nil {
		lock = NoopLock{}
	}

	return &recommendationService{
		cache:       cache,
		history:     history,
		catalog:     catalogSvc,
		ratings:     ratings,
		preferences: preferences,
		gateway:     gateway,
		lock:        lock,
		cfg:         cfg.withDefaults(),
		now:         time.Now,
	}
}

// GetRecommendations serves the cached list when its fingerprint matches
// the user's current watched count and regenerates otherwise. On failure the
// result carries the previous list (if any) marked Stale alongside the error.
func (s *recommendationService) GetRecommendations(ctx context.Context, rawUserID string) (domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}

	userID, err := domain.ParseUserID(rawUserID)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	var (
		fingerprint int
		cached      domain.CachedRecommendationSet
		found       bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fingerprint, err = s.history.Fingerprint(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		cached, found, err = s.cache.Get(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to read recommendation cache state", err, "user_id", userID)
		return domain.RecommendationResult{}, err
	}

	if found && cached.Fingerprint == fingerprint {
		CacheLookupsTotal.WithLabelValues("hit").Inc()
		logger.Debug("Recommendation cache hit", "user_id", userID, "fingerprint", fingerprint,
			"request_id", logger.RequestIDFromContext(ctx))
		return resultFromSet(cached, true), nil
	}

	CacheLookupsTotal.WithLabelValues("miss").Inc()
	logger.Info("Recommendation cache miss", "user_id", userID, "fingerprint", fingerprint,
		"cached", found, "cached_fingerprint", cached.Fingerprint,
		"request_id", logger.RequestIDFromContext(ctx))

	// The flight runs detached from the caller so that a client leaving
	// mid-generation still gets its cache row written.
	detached := context.WithoutCancel(ctx)
	key := userID + ":" + strconv.Itoa(fingerprint)
	ch := s.flight.DoChan(key, func() (interface{}, error) {
		return s.regenerate(detached, userID, fingerprint)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return staleResult(cached, found), res.Err
		}
		return resultFromSet(res.Val.(domain.CachedRecommendationSet), false), nil
	case <-ctx.Done():
		return staleResult(cached, found), fmt.Errorf("context error: %w", ctx.Err())
	}
}

func (s *recommendationService) regenerate(ctx context.Context, userID string, fingerprint int) (domain.CachedRecommendationSet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()

	release, acquired, err := s.lock.TryAcquire(ctx, userID, s.cfg.LockTTL)
	switch {
	case err != nil:
		logger.Warn("Regeneration lock unavailable, continuing without it", "user_id", userID, "error", err)
	case !acquired:
		if set, ok := s.waitForPeer(ctx, userID, fingerprint); ok {
			GenerationsTotal.WithLabelValues(outcomePeerServed).Inc()
			return set, nil
		}
	default:
		defer release(context.WithoutCancel(ctx))
	}

	start := s.now()
	recs, err := s.generate(ctx, userID)
	GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := outcomeFor(err)
		GenerationsTotal.WithLabelValues(outcome).Inc()
		switch outcome {
		case outcomeRateLimited:
			logger.Warn("Recommendation provider rate limited", "user_id", userID, "error", err)
		case outcomeMalformed:
			logger.Error("Recommendation provider returned an unparseable reply", "user_id", userID, "error", err)
		default:
			logger.Error("Recommendation generation failed", "user_id", userID, "outcome", outcome, "error", err)
		}
		return domain.CachedRecommendationSet{}, err
	}

	set := domain.CachedRecommendationSet{
		UserID:          userID,
		Recommendations: recs,
		Fingerprint:     fingerprint,
		GeneratedAt:     s.now().UTC(),
	}
	if err := s.cache.Upsert(ctx, set); err != nil {
		GenerationsTotal.WithLabelValues(outcomeInternalError).Inc()
		logger.Error("Failed to persist recommendations", "user_id", userID, "error", err)
		return domain.CachedRecommendationSet{}, err
	}

	GenerationsTotal.WithLabelValues(outcomeSuccess).Inc()
	logger.Info("Recommendations regenerated", "user_id", userID, "fingerprint", fingerprint,
		"count", len(recs), "took", time.Since(start))

	return set, nil
}

// waitForPeer polls the cache row while another instance regenerates. It
// reports ok only when a row with the expected fingerprint shows up.
func (s *recommendationService) waitForPeer(ctx context.Context, userID string, fingerprint int) (domain.CachedRecommendationSet, bool) {
	if s.cfg.LockWait <= 0 {
		return domain.CachedRecommendationSet{}, false
	}

	deadline := time.NewTimer(s.cfg.LockWait)
	defer deadline.Stop()
	ticker := time.NewTicker(s.cfg.LockPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			LockWaitsTotal.WithLabelValues("timeout").Inc()
			return domain.CachedRecommendationSet{}, false
		case <-deadline.C:
			LockWaitsTotal.WithLabelValues("timeout").Inc()
			logger.Warn("Peer regeneration did not finish in time", "user_id", userID)
			return domain.CachedRecommendationSet{}, false
		case <-ticker.C:
			set, found, err := s.cache.Get(ctx, userID)
			if err != nil {
				logger.Warn("Failed to poll recommendation cache", "user_id", userID, "error", err)
				continue
			}
			if found && set.Fingerprint == fingerprint {
				LockWaitsTotal.WithLabelValues("served").Inc()
				return set, true
			}
		}
	}
}

func (s *recommendationService) generate(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	var (
		lookup     *catalog.Lookup
		snapshot   watchhistory.Snapshot
		candidates []domain.ContentRecord
		ratings    map[string]int
		pref       domain.UserPreference
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lookup, err = s.catalog.Lookup(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot, err = s.history.Snapshot(gctx, userID, s.cfg.RecentWatchedLimit)
		if err != nil {
			return err
		}
		candidates, err = s.catalog.Candidates(gctx, snapshot.WatchedIDs, s.cfg.CandidateLimit)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = s.ratings.UserRatings(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		pref, err = s.preferences.GetPreferences(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load recommendation inputs: %w", err)
	}

	prompt, err := BuildPrompt(PromptInput{
		Recent:     snapshot.Recent,
		Ratings:    ratings,
		Preference: pref,
		Candidates: candidates,
		Lookup:     lookup,
		MaxResults: s.cfg.MaxRecommendations,
	})
	if err != nil {
		return nil, err
	}

	suggestions, err := s.gateway.RequestSuggestions(ctx, prompt)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(suggestions))
	for _, sg := range suggestions {
		titles = append(titles, sg.Title)
	}

	matches, err := s.catalog.MatchTitles(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("failed to match suggestions: %w", err)
	}

	exclude := make(map[string]struct{}, len(snapshot.WatchedIDs))
	for _, id := range snapshot.WatchedIDs {
		exclude[id] = struct{}{}
	}

	recs, stats := Reconcile(suggestions, matches, ReconcileOptions{
		MaxResults: s.cfg.MaxRecommendations,
		Exclude:    exclude,
	})
	SuggestionsReconciledTotal.WithLabelValues("catalog").Add(float64(stats.Matched))
	SuggestionsReconciledTotal.WithLabelValues("synthetic").Add(float64(stats.Synthetic))

	logger.Debug("Reconciled model suggestions", "user_id", userID, "suggested", len(suggestions),
		"matched", stats.Matched, "synthetic", stats.Synthetic, "dropped", stats.Dropped)

	return recs, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return outcomeRateLimited
	case errors.Is(err, domain.ErrMalformedResponse):
		return outcomeMalformed
	case errors.Is(err, domain.ErrUpstream):
		return outcomeUpstreamError
	default:
		return outcomeInternalError
	}
}

func resultFromSet(set domain.CachedRecommendationSet, hit bool) domain.RecommendationResult {
	recs := []domain.Recommendation(set.Recommendations)
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	return domain.RecommendationResult{
		Recommendations: recs,
		Fingerprint:     set.Fingerprint,
		GeneratedAt:     set.GeneratedAt,
		CacheHit:        hit,
	}
}

func staleResult(set domain.CachedRecommendationSet, found bool) domain.RecommendationResult {
	if !found {
		return domain.RecommendationResult{}
	}
	res := resultFromSet(set, false)
	res.Stale = true
	return res
}
