package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/advisor"
	"github.com/spendwise/backend/internal/categorizer"
	"github.com/spendwise/backend/internal/config"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/pipeline"
	"gorm.io/gorm"
)

// keywordTable returns the configured keyword table or the built-in one.
func keywordTable(cfg *config.Config) (categorizer.Table, error) {
	if cfg.Categorizer.KeywordsFile == "" {
		return categorizer.DefaultTable, nil
	}

	table, err := categorizer.LoadTable(cfg.Categorizer.KeywordsFile)
	if err != nil {
		return nil, err
	}

	log.Info().Str("file", cfg.Categorizer.KeywordsFile).Int("categories", len(table)).Msg("loaded keyword table")
	return table, nil
}

// newStrategy returns the categorization strategy. User match rules from
// the database take precedence over keywords. Without a database, only
// keywords are used.
func newStrategy(cfg *config.Config, db *gorm.DB) (categorizer.Strategy, error) {
	table, err := keywordTable(cfg)
	if err != nil {
		return nil, err
	}

	keywords := categorizer.NewKeywordStrategy(table)
	if db == nil {
		return keywords, nil
	}

	return categorizer.Chain{categorizer.NewRuleStrategy(db), keywords}, nil
}

func newAdvisor(ctx context.Context, cfg *config.Config) (advisor.Advisor, error) {
	switch cfg.Advisor.Provider {
	case config.ProviderHeuristic:
		return advisor.Heuristic{}, nil
	case config.ProviderNone:
		return advisor.Disabled{}, nil
	case config.ProviderGenAI:
		g, err := advisor.NewGenAI(ctx, cfg.Advisor.APIKey, cfg.Advisor.Model)
		if err != nil {
			return nil, err
		}
		return advisor.NewBounded(g, int64(cfg.Advisor.MaxConcurrent)), nil
	}

	return nil, fmt.Errorf("unknown advisor provider %q", cfg.Advisor.Provider)
}

// newPublisher returns the publisher for stage events. The broker always
// receives them, the AMQP exchange only if it is configured. The returned
// function closes the AMQP connection.
func newPublisher(cfg *config.Config, broker *events.Broker) (events.Publisher, func(), error) {
	if cfg.Events.AMQPURL == "" {
		return broker, func() {}, nil
	}

	amqp, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("exchange", cfg.Events.Exchange).Msg("publishing stage events to AMQP")

	closeFn := func() {
		if err := amqp.Close(); err != nil {
			log.Error().Err(err).Msg("closing the AMQP connection")
		}
	}

	return events.Multi{broker, amqp}, closeFn, nil
}

func pipelineOptions(cfg *config.Config) (pipeline.Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Account:        cfg.Ledger.Account,
		Location:       loc,
		AdvisorTimeout: cfg.Advisor.Timeout,
		MaxInputLength: cfg.Input.MaxLength,
	}, nil
}
