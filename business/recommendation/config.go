package recommendation

import "time"

type Config struct {
	// upper bound on the list returned to the user
	MaxRecommendations int

	// watched titles described in the prompt, newest first
	RecentWatchedLimit int

	// catalog rows offered to the model as the allowed set
	CandidateLimit int

	// bound on one regeneration, independent of the caller's deadline
	GenerationTimeout time.Duration

	// cross-instance lock; zero LockWait disables waiting on a peer
	LockTTL          time.Duration
	LockWait         time.Duration
	LockPollInterval time.Duration
}

const (
	defaultMaxRecommendations = 10
	defaultRecentWatchedLimit = 10
	defaultCandidateLimit     = 50
	defaultGenerationTimeout  = 90 * time.Second
	defaultLockTTL            = 2 * time.Minute
	defaultLockWait           = 20 * time.Second
	defaultLockPollInterval   = 500 * time.Millisecond
)

func DefaultConfig() Config {
	return Config{
		MaxRecommendations: defaultMaxRecommendations,
		RecentWatchedLimit: defaultRecentWatchedLimit,
		CandidateLimit:     defaultCandidateLimit,
		GenerationTimeout:  defaultGenerationTimeout,
		LockTTL:            defaultLockTTL,
		LockWait:           defaultLockWait,
		LockPollInterval:   defaultLockPollInterval,
	}
}

// withDefaults fills zero fields so a partially populated Config from the
// environment still behaves.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxRecommendations <= 0 {
		c.MaxRecommendations = d.MaxRecommendations
	}
	if c.RecentWatchedLimit <= 0 {
		c.RecentWatchedLimit = d.RecentWatchedLimit
	}
	if c.CandidateLimit <= 0 {
		c.CandidateLimit = d.CandidateLimit
	}
	if c.GenerationTimeout <= 0 {
		c.GenerationTimeout = d.GenerationTimeout
	}
	if c.LockTTL <= 0 {
		c.LockTTL = d.LockTTL
	}
	if c.LockWait < 0 {
		c.LockWait = 0
	}
	if c.LockPollInterval <= 0 {
		c.LockPollInterval = d.LockPollInterval
	}
	return c
}
