package service

import (
	"context"
	"fmt"
	"time"

	"churnsynth/events"
	"churnsynth/models"
	"churnsynth/sampling"

	log "github.com/sirupsen/logrus"
)

// Stage names, in execution order
const (
	StageCustomers    = "customers"
	StageLabels       = "labels"
	StagePolicies     = "policies"
	StageTransactions = "transactions"
	StageEngagement   = "engagement"
)

// Pipeline runs the generation stages in their fixed order over one sampler
type Pipeline struct {
	eventPublisher EventPublisher
}

// NewPipeline creates a new pipeline. eventPublisher may be nil.
func NewPipeline(eventPublisher EventPublisher) *Pipeline {
	return &Pipeline{eventPublisher: eventPublisher}
}

// Generate builds a complete dataset. The result depends only on params.
func (p *Pipeline) Generate(ctx context.Context, params models.GenerationParams) (*models.Dataset, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	runID := params.RunID()
	window := params.Window()
	sampler := sampling.New(params.Seed)

	log.WithFields(log.Fields{
		"runID":     runID,
		"customers": params.Customers,
		"churnRate": params.ChurnRate,
		"start":     params.StartDate.Format(models.DateLayout),
		"end":       params.EndDate.Format(models.DateLayout),
		"seed":      params.Seed,
	}).Info("Generating dataset")

	ds := &models.Dataset{RunID: runID, Params: params}

	stage := func(name string, run func() (int, error)) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stageStart := time.Now()
		rows, err := run()
		if err != nil {
			return fmt.Errorf("%s stage failed: %w", name, err)
		}
		p.publish(ctx, events.StageCompletedEvent{
			RunID:    runID,
			Stage:    name,
			Rows:     rows,
			Duration: time.Since(stageStart),
		})
		return nil
	}

	stages := []struct {
		name string
		run  func() (int, error)
	}{
		{StageCustomers, func() (int, error) {
			ds.Customers = NewCustomerGenerator(sampler).Generate(params.Customers)
			return len(ds.Customers), nil
		}},
		{StageLabels, func() (int, error) {
			ds.Labels = NewLabelGenerator(sampler, window).Generate(ds.Customers, params.ChurnRate)
			return len(ds.Labels), nil
		}},
		{StagePolicies, func() (int, error) {
			policies, err := NewPolicyGenerator(sampler, window).Generate(ds.Customers)
			ds.Policies = policies
			return len(policies), err
		}},
		{StageTransactions, func() (int, error) {
			txs, err := NewTransactionGenerator(sampler, window).Generate(ds.Customers, ds.Policies, ds.Labels)
			ds.Transactions = txs
			return len(txs), err
		}},
		{StageEngagement, func() (int, error) {
			engagements, err := NewEngagementGenerator(sampler, window).Generate(ds.Customers, ds.Policies, ds.Labels)
			ds.Engagements = engagements
			return len(engagements), err
		}},
	}

	for _, s := range stages {
		if err := stage(s.name, s.run); err != nil {
			return nil, err
		}
	}

	p.publish(ctx, events.DatasetGeneratedEvent{
		RunID:     runID,
		Customers: len(ds.Customers),
		Churned:   ds.ChurnedCount(),
		Duration:  time.Since(started),
	})

	return ds, nil
}

func (p *Pipeline) publish(ctx context.Context, event events.Event) {
	if p.eventPublisher == nil {
		return
	}
	p.eventPublisher.Publish(ctx, event)
}
