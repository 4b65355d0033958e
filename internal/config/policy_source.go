package config

import (
	"context"
	"sync"

	domain "github.com/seclearn/analytics/internal/domain/service"
	"github.com/seclearn/analytics/pkg/logger"
)

// PolicySource is a live-reloadable scoring policy provider. It implements
// the application layer's PolicyProvider and is updated by the config
// watcher, so weighting changes take effect without a restart.
type PolicySource struct {
	mu     sync.RWMutex
	policy domain.ScoringPolicy
	log    logger.Logger
}

// NewPolicySource builds a PolicySource from the scoring section of the
// config, falling back to domain defaults for unset values. An invalid
// policy (weights not summing to 1) falls back entirely to the defaults.
func NewPolicySource(cfg *ScoringConfig, log logger.Logger) *PolicySource {
	s := &PolicySource{
		policy: policyFromConfig(cfg),
		log:    log.WithComponent("PolicySource"),
	}
	if err := s.policy.Validate(); err != nil {
		s.log.Warn(context.Background(), "configured scoring policy invalid, using defaults", logger.Fields{"error": err.Error()})
		s.policy = domain.DefaultScoringPolicy()
	}
	return s
}

// Policy returns the current scoring policy.
func (s *PolicySource) Policy() domain.ScoringPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// Update swaps in the policy from a freshly reloaded config. Invalid
// policies are rejected and the current one stays in effect.
func (s *PolicySource) Update(cfg *ScoringConfig) {
	candidate := policyFromConfig(cfg)
	if err := candidate.Validate(); err != nil {
		s.log.Warn(context.Background(), "rejected scoring policy update", logger.Fields{"error": err.Error()})
		return
	}
	s.mu.Lock()
	s.policy = candidate
	s.mu.Unlock()
	s.log.Info(context.Background(), "scoring policy updated")
}

func policyFromConfig(cfg *ScoringConfig) domain.ScoringPolicy {
	policy := domain.DefaultScoringPolicy()
	if cfg == nil {
		return policy
	}
	if cfg.Weights.Phishing != 0 || cfg.Weights.TrainingCompletion != 0 {
		policy.Weights.Phishing = cfg.Weights.Phishing
		policy.Weights.TrainingCompletion = cfg.Weights.TrainingCompletion
		policy.Weights.TimeSinceTraining = cfg.Weights.TimeSinceTraining
		policy.Weights.QuizPerformance = cfg.Weights.QuizPerformance
		policy.Weights.SecurityIncident = cfg.Weights.SecurityIncident
		policy.Weights.LoginAnomaly = cfg.Weights.LoginAnomaly
	}
	if cfg.CacheTTL > 0 {
		policy.CacheTTL = cfg.CacheTTL
	}
	return policy
}
