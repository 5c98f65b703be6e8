// Package pipeline turns notification messages into stored transactions,
// budget alerts, insights, forecasts and advice.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/advisor"
	"github.com/spendwise/backend/internal/categorizer"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/insight"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/parser"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Options configure an Orchestrator.
type Options struct {
	// Account scopes the budget locks.
	Account string

	// Location is used to interpret dates and determine months.
	Location *time.Location

	// AdvisorTimeout bounds each call to the advisor.
	AdvisorTimeout time.Duration

	// MaxInputLength is the maximum message length in characters, 0 disables the check.
	MaxInputLength int

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of one run.
type Result struct {
	RunID       uuid.UUID          `json:"run_id" example:"0b3e8d07-4b4f-4a21-a2b0-7f2ad1a05c55"`
	Transaction models.Transaction `json:"transaction"`
	Evaluation  Evaluation         `json:"evaluation"`
	Alert       *models.Alert      `json:"alert,omitempty"`
	Advisor     string             `json:"advisor,omitempty" example:"Hold off on non-essential food spending until the month ends."`
	Insights    []string           `json:"insights"`
	Forecast    *Forecast          `json:"forecast,omitempty"`
	Stages      []State            `json:"stages"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// Orchestrator runs the pipeline.
//
// Runs may be concurrent. Reading the month to date spend, storing the
// transaction and raising the alert happen in one database transaction
// while holding the lock for the account and category.
type Orchestrator struct {
	db        *gorm.DB
	parser    *parser.Parser
	strategy  categorizer.Strategy
	advisor   advisor.Advisor
	publisher events.Publisher
	locks     *KeyedMutex
	opts      Options
}

func New(db *gorm.DB, strategy categorizer.Strategy, adv advisor.Advisor, publisher events.Publisher, opts Options) *Orchestrator {
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.AdvisorTimeout <= 0 {
		opts.AdvisorTimeout = 5 * time.Second
	}

	if adv == nil {
		adv = advisor.Disabled{}
	}

	if publisher == nil {
		publisher = events.Discard{}
	}

	p := parser.New(opts.Location)
	p.Now = opts.Now

	return &Orchestrator{
		db:        db,
		parser:    p,
		strategy:  strategy,
		advisor:   adv,
		publisher: publisher,
		locks:     NewKeyedMutex(),
		opts:      opts,
	}
}

// Now returns the current time in the ledger location.
func (o *Orchestrator) Now() time.Time {
	return o.opts.Now().In(o.opts.Location)
}

// Location is the location of the ledger.
func (o *Orchestrator) Location() *time.Location {
	return o.opts.Location
}

func (o *Orchestrator) lockKey(c category.Category) string {
	return o.opts.Account + "/" + string(c)
}

// run carries the state of a single Process call.
type run struct {
	o       *Orchestrator
	ctx     context.Context
	id      uuid.UUID
	machine *Machine
	logger  zerolog.Logger
	result  *Result
}

func (r *run) enter(s State) {
	if err := r.machine.Advance(s); err != nil {
		r.logger.Error().Err(err).Msg("pipeline")
		return
	}
	r.result.Stages = r.machine.History()

	e := events.Event{
		RunID: r.id,
		Stage: string(s),
		At:    r.o.opts.Now(),
	}

	if r.result.Transaction.ID != uuid.Nil {
		id := r.result.Transaction.ID
		e.TransactionID = &id
	}

	r.publish(e)
}

func (r *run) publish(e events.Event) {
	if err := r.o.publisher.Publish(r.ctx, e); err != nil {
		r.logger.Warn().Err(err).Str("stage", e.Stage).Msg("could not publish pipeline event")
	}
}

func (r *run) fail(err error) (Result, error) {
	if advanceErr := r.machine.Advance(StateFailed); advanceErr != nil {
		r.logger.Error().Err(advanceErr).Msg("pipeline")
	}
	r.result.Stages = r.machine.History()

	r.publish(events.Event{
		RunID: r.id,
		Stage: string(StateFailed),
		At:    r.o.opts.Now(),
		Error: err.Error(),
	})

	runCount.WithLabelValues("failed").Inc()
	r.logger.Info().Err(err).Msg("pipeline run failed")
	return *r.result, err
}

// soft records a failure that does not fail the run.
func (r *run) soft(stage string, err error) {
	softFailureCount.WithLabelValues(stage).Inc()
	r.result.Warnings = append(r.result.Warnings, fmt.Sprintf("%s: %s", stage, err))
}

func observe(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Process runs the pipeline for one message.
//
// Errors before the transaction is stored fail the run and nothing is
// written. Everything after that only degrades the result.
func (o *Orchestrator) Process(ctx context.Context, text string) (Result, error) {
	id := uuid.New()
	r := &run{
		o:       o,
		ctx:     ctx,
		id:      id,
		machine: NewMachine(),
		logger:  log.With().Str("run", id.String()).Logger(),
		result: &Result{
			RunID:    id,
			Insights: []string{},
			Stages:   []State{StateReceived},
		},
	}
	r.publish(events.Event{RunID: id, Stage: string(StateReceived), At: o.opts.Now()})

	if err := parser.Validate(text, o.opts.MaxInputLength); err != nil {
		return r.fail(err)
	}

	start := time.Now()
	candidate, err := o.parser.Parse(text)
	observe("parse", start)
	if err != nil {
		return r.fail(err)
	}
	r.enter(StateParsed)

	start = time.Now()
	c := categorizer.Categorize(ctx, o.strategy, categorizer.Input{Merchant: candidate.Merchant, Text: text})
	observe("categorize", start)
	r.logger = r.logger.With().Str("category", string(c)).Logger()
	r.enter(StateCategorized)

	transaction := models.Transaction{
		Amount:        candidate.Amount,
		Merchant:      candidate.Merchant,
		Category:      c,
		Date:          candidate.Date,
		PaymentMode:   candidate.PaymentMode,
		AccountSuffix: candidate.AccountSuffix,
		Bank:          candidate.Bank,
		RawSource:     text,
	}
	month := types.MonthOf(candidate.Date.In(o.opts.Location))

	start = time.Now()
	evaluation, alert, err := o.commit(ctx, &transaction, month)
	observe("persist", start)
	if err != nil {
		return r.fail(err)
	}

	r.result.Transaction = transaction
	r.result.Evaluation = evaluation
	r.logger = r.logger.With().Str("transaction", transaction.ID.String()).Logger()
	r.enter(StatePersisted)
	r.enter(StateEvaluated)

	if alert != nil {
		r.result.Alert = alert
		alertCount.WithLabelValues(string(c)).Inc()
		r.logger.Info().Str("total", evaluation.NewTotal.String()).Str("limit", evaluation.Limit.String()).Msg("budget exceeded")
		r.enter(StateAlerted)
	}

	start = time.Now()
	summary, budgets := o.summarize(r, month)
	observe("insight", start)
	r.result.Insights = summary.Sentences()
	r.enter(StateSummarized)

	start = time.Now()
	forecast, err := Predict(summary, month, o.opts.Now(), budgets)
	observe("predict", start)
	if errors.Is(err, ErrPredictionSkipped) {
		softFailureCount.WithLabelValues("predict").Inc()
		r.logger.Debug().Str("month", month.String()).Msg("prediction skipped")
	} else {
		r.result.Forecast = &forecast
	}

	if o.needsAdvice(r.result) {
		start = time.Now()
		text, err := o.advise(ctx, r.result, c)
		observe("advise", start)

		if err != nil {
			r.logger.Warn().Err(err).Msg("advisor unavailable")
			r.soft("advise", err)
		} else if text != "" {
			r.result.Advisor = text
			r.enter(StateAdvised)
		}
	}

	r.enter(StateDone)
	runCount.WithLabelValues("ok").Inc()
	r.logger.Debug().Msg("pipeline run complete")

	return *r.result, nil
}

// commit stores the transaction and its alert, if any.
func (o *Orchestrator) commit(ctx context.Context, transaction *models.Transaction, month types.Month) (Evaluation, *models.Alert, error) {
	unlock := o.locks.Lock(o.lockKey(transaction.Category))
	defer unlock()

	var evaluation Evaluation
	var alert *models.Alert

	err := o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prior, err := models.SpendInMonth(tx, transaction.Category, month)
		if err != nil {
			return err
		}

		budget, ok, err := models.BudgetFor(tx, transaction.Category)
		if err != nil {
			return err
		}

		if err := tx.Create(transaction).Error; err != nil {
			return err
		}

		var limit *models.Budget
		if ok {
			limit = &budget
		}
		evaluation = Evaluate(transaction.Amount, prior, limit)

		a, exceeded := NewAlert(*transaction, evaluation, month)
		if !exceeded {
			return nil
		}

		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		alert = &a

		return nil
	})
	if err != nil {
		return Evaluation{}, nil, models.General(err)
	}

	return evaluation, alert, nil
}

// summarize aggregates the month of the transaction. Failures only leave
// the summary empty.
func (o *Orchestrator) summarize(r *run, month types.Month) (insight.Summary, map[category.Category]decimal.Decimal) {
	budgets := make(map[category.Category]decimal.Decimal)

	transactions, err := models.TransactionsInMonth(o.db.WithContext(r.ctx), month)
	if err != nil {
		r.logger.Warn().Err(err).Msg("could not load transactions for insights")
		r.soft("insight", err)
		return insight.Aggregate(nil), budgets
	}

	stored, err := models.Budgets(o.db.WithContext(r.ctx))
	if err != nil {
		r.logger.Warn().Err(err).Msg("could not load budgets for the forecast")
		r.soft("insight", err)
	}

	for _, b := range stored {
		budgets[b.Category] = b.MonthlyLimit
	}

	return insight.Aggregate(transactions), budgets
}

// needsAdvice reports if an alert was raised or any category is projected
// to exceed its budget.
func (o *Orchestrator) needsAdvice(result *Result) bool {
	if result.Alert != nil {
		return true
	}

	if result.Forecast == nil {
		return false
	}

	for _, p := range result.Forecast.Projections {
		if p.OverBudget {
			return true
		}
	}

	return false
}

func (o *Orchestrator) advise(ctx context.Context, result *Result, c category.Category) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.opts.AdvisorTimeout)
	defer cancel()

	req := advisor.Request{
		Category: c,
		Insights: result.Insights,
	}

	if result.Alert != nil {
		req.Alerts = []string{result.Alert.Message}
	}

	if result.Forecast != nil {
		for _, p := range result.Forecast.Projections {
			projection := advisor.Projection{Category: p.Category, Projected: p.Projected}
			if p.Budget != nil {
				projection.Limit = *p.Budget
			}
			req.Projections = append(req.Projections, projection)
		}
	}

	return o.advisor.Advise(ctx, req)
}

// Delete removes a transaction while holding the lock of its category so
// that it cannot disappear in the middle of a budget evaluation.
func (o *Orchestrator) Delete(ctx context.Context, id uuid.UUID) error {
	db := o.db.WithContext(ctx)

	var transaction models.Transaction
	err := db.First(&transaction, models.Transaction{DefaultModel: models.DefaultModel{ID: id}}).Error
	if err != nil {
		return err
	}

	unlock := o.locks.Lock(o.lockKey(transaction.Category))
	defer unlock()

	result := db.Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	// Deleted concurrently
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w transaction matching your query", models.ErrResourceNotFound)
	}

	return nil
}

// Parse runs the parse and categorize stages without storing anything.
func (o *Orchestrator) Parse(ctx context.Context, text string) (parser.Candidate, category.Category, error) {
	if err := parser.Validate(text, o.opts.MaxInputLength); err != nil {
		return parser.Candidate{}, "", err
	}

	candidate, err := o.parser.Parse(text)
	if err != nil {
		return parser.Candidate{}, "", err
	}

	return candidate, categorizer.Categorize(ctx, o.strategy, categorizer.Input{Merchant: candidate.Merchant, Text: text}), nil
}
