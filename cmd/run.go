package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"churnsynth/config"
	"churnsynth/database"
	"churnsynth/events"
	"churnsynth/export"
	"churnsynth/report"
	"churnsynth/repository"
	"churnsynth/repository/sqlite"
	"churnsynth/service"

	log "github.com/sirupsen/logrus"
)

// Run generates a dataset and writes it to every configured sink
func Run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := configureLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"customers":  cfg.Customers,
		"churn_rate": cfg.ChurnRate,
		"start_date": cfg.StartDate.String(),
		"end_date":   cfg.EndDate.String(),
		"seed":       cfg.Seed,
		"sinks":      cfg.Sinks,
	}).Info("Starting churnsynth...")

	// Initialize event bus
	log.Info("Initializing event bus...")
	eventBus := events.NewBus()
	subscribeLogging(eventBus)
	log.Info("Event bus initialized successfully")

	// Open sinks before generating so configuration problems surface early
	log.Info("Initializing sinks...")
	sinks, closeSinks, err := openSinks(ctx, cfg, eventBus)
	if err != nil {
		return err
	}
	defer closeSinks()
	log.Info("Sinks initialized successfully")

	ds, err := service.NewPipeline(eventBus).Generate(ctx, cfg.Params())
	if err != nil {
		return fmt.Errorf("failed to generate dataset: %w", err)
	}

	for _, sink := range sinks {
		if err := sink.Write(ctx, ds); err != nil {
			return fmt.Errorf("failed to write %s sink: %w", sink.Name(), err)
		}
	}

	if err := report.PrintPreview(out, ds, cfg.Preview); err != nil {
		return fmt.Errorf("failed to print preview: %w", err)
	}

	summary := report.Summarize(ds)
	if cfg.Report {
		if err := report.Print(out, summary); err != nil {
			return fmt.Errorf("failed to print report: %w", err)
		}
	}
	if cfg.ChartPath != "" {
		if err := report.WriteChart(cfg.ChartPath, summary); err != nil {
			return err
		}
		log.WithField("path", cfg.ChartPath).Info("Summary chart written")
	}

	log.WithFields(log.Fields{
		"run_id": ds.RunID,
		"rows":   ds.RowCounts().Total(),
	}).Info("Dataset generation completed")
	return nil
}

// openSinks builds the configured sinks in a fixed order: csv, postgres, sqlite.
// The returned close function releases any database handles.
func openSinks(ctx context.Context, cfg *config.Config, eventBus *events.Bus) ([]service.DatasetSink, func(), error) {
	var sinks []service.DatasetSink
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.HasSink(config.SinkCSV) {
		sinks = append(sinks, export.NewCSVSink(cfg.OutputDir))
		log.WithField("dir", cfg.OutputDir).Info("CSV sink ready")
	}

	if cfg.HasSink(config.SinkPostgres) {
		databaseURL := cfg.GetDatabaseURL()

		log.WithField("url", database.RedactURL(databaseURL)).Info("Running database migrations...")
		if err := database.RunMigrationsWithURL(databaseURL); err != nil {
			closeAll()
			return nil, nil, err
		}

		log.Info("Connecting to database...")
		db, err := database.NewConnection(ctx, databaseURL)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closers = append(closers, func() {
			log.Info("Closing database connection...")
			db.Close()
		})
		log.Info("Database connection established successfully")

		uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
		sinks = append(sinks, service.NewDatasetLoader(config.SinkPostgres, uowFactory))
	}

	if cfg.HasSink(config.SinkSQLite) {
		path := cfg.SQLiteFile()

		log.WithField("path", path).Info("Opening SQLite database...")
		store, err := sqlite.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := store.Close(); err != nil {
				log.WithError(err).Warn("Error closing SQLite database")
			}
		})
		log.Info("SQLite database opened successfully")

		sinks = append(sinks, service.NewDatasetLoader(config.SinkSQLite, store.NewUnitOfWorkFactory(eventBus)))
	}

	return sinks, closeAll, nil
}

// subscribeLogging narrates pipeline and sink progress through the event bus
func subscribeLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeStageCompleted, func(ctx context.Context, event events.Event) {
		e := event.(events.StageCompletedEvent)
		log.WithFields(log.Fields{
			"stage":    e.Stage,
			"rows":     e.Rows,
			"duration": e.Duration,
		}).Debug("Stage completed")
	})
	bus.Subscribe(events.EventTypeDatasetGenerated, func(ctx context.Context, event events.Event) {
		e := event.(events.DatasetGeneratedEvent)
		log.WithFields(log.Fields{
			"run_id":    e.RunID,
			"customers": e.Customers,
			"churned":   e.Churned,
			"duration":  e.Duration,
		}).Info("Dataset generated")
	})
	bus.Subscribe(events.EventTypeDatasetPersisted, func(ctx context.Context, event events.Event) {
		e := event.(events.DatasetPersistedEvent)
		log.WithFields(log.Fields{
			"run_id": e.RunID,
			"sink":   e.Sink,
			"rows":   e.Rows,
		}).Info("Dataset persisted")
	})
}

var _ service.DatasetSink = (*export.CSVSink)(nil)
