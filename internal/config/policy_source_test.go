package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seclearn/analytics/internal/config"
	domain "github.com/seclearn/analytics/internal/domain/service"
	"github.com/seclearn/analytics/pkg/logger"
)

func TestPolicySourceDefaults(t *testing.T) {
	source := config.NewPolicySource(nil, logger.NewNoopLogger())
	assert.Equal(t, domain.DefaultScoringPolicy(), source.Policy())
}

func TestPolicySourceUsesConfiguredValues(t *testing.T) {
	cfg := &config.ScoringConfig{CacheTTL: 12 * time.Hour}
	source := config.NewPolicySource(cfg, logger.NewNoopLogger())
	assert.Equal(t, 12*time.Hour, source.Policy().CacheTTL)
	// Unset weights fall back to defaults.
	assert.Equal(t, 0.30, source.Policy().Weights.Phishing)
}

func TestPolicySourceFallsBackOnInvalidWeights(t *testing.T) {
	cfg := &config.ScoringConfig{}
	cfg.Weights.Phishing = 0.9
	cfg.Weights.TrainingCompletion = 0.9
	source := config.NewPolicySource(cfg, logger.NewNoopLogger())
	assert.Equal(t, domain.DefaultScoringPolicy().Weights, source.Policy().Weights)
}

func TestPolicySourceRejectsInvalidUpdate(t *testing.T) {
	source := config.NewPolicySource(nil, logger.NewNoopLogger())
	before := source.Policy()

	bad := &config.ScoringConfig{}
	bad.Weights.Phishing = 1.5
	bad.Weights.TrainingCompletion = 0.5
	source.Update(bad)

	assert.Equal(t, before, source.Policy())
}

func TestPolicySourceAcceptsValidUpdate(t *testing.T) {
	source := config.NewPolicySource(nil, logger.NewNoopLogger())

	next := &config.ScoringConfig{CacheTTL: 6 * time.Hour}
	source.Update(next)
	assert.Equal(t, 6*time.Hour, source.Policy().CacheTTL)
}
