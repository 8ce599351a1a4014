// Package export writes datasets as CSV files.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"churnsynth/models"

	log "github.com/sirupsen/logrus"
)

// Output file names
const (
	CustomersFile    = "customer_info.csv"
	PoliciesFile     = "policy_data.csv"
	TransactionsFile = "transactions.csv"
	EngagementFile   = "engagement.csv"
	LabelsFile       = "labels.csv"
	ManifestFile     = "manifest.json"
)

// CSVSink writes the five tables and a manifest into a directory
type CSVSink struct {
	outputDir string
}

// NewCSVSink creates a sink writing into outputDir
func NewCSVSink(outputDir string) *CSVSink {
	return &CSVSink{outputDir: outputDir}
}

func (s *CSVSink) Name() string {
	return "csv"
}

// Write renders every file into a staging directory next to the output directory
// and moves them into place only once all of them were written
func (s *CSVSink) Write(ctx context.Context, ds *models.Dataset) (err error) {
	outputDir := filepath.Clean(s.outputDir)
	parent := filepath.Dir(outputDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	staging, err := os.MkdirTemp(parent, "."+filepath.Base(outputDir)+".staging-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	if err := os.Chmod(staging, 0o755); err != nil {
		_ = os.RemoveAll(staging)
		return fmt.Errorf("failed to set staging directory permissions: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil && err == nil {
			log.WithError(rmErr).WithField("staging", staging).Warn("Failed to remove staging directory")
		}
	}()

	tables := Tables(ds)
	names := make([]string, 0, len(tables)+1)
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeCSVFile(filepath.Join(staging, table.File), table); err != nil {
			return fmt.Errorf("failed to write %s: %w", table.File, err)
		}
		names = append(names, table.File)
	}

	// The manifest lists every published file, itself included
	names = append(names, ManifestFile)
	if err := writeManifest(filepath.Join(staging, ManifestFile), ds, names); err != nil {
		return fmt.Errorf("failed to write %s: %w", ManifestFile, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := publish(staging, outputDir, names); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"sink":      s.Name(),
		"outputDir": outputDir,
		"files":     len(names),
	}).Info("Dataset written")

	return nil
}

// publish moves the staged files into outputDir
func publish(staging, outputDir string, names []string) error {
	if _, err := os.Stat(outputDir); errors.Is(err, os.ErrNotExist) {
		// Fresh output: the whole directory appears at once
		if err := os.Rename(staging, outputDir); err != nil {
			return fmt.Errorf("failed to publish output directory: %w", err)
		}
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to stat output directory: %w", err)
	}

	for _, name := range names {
		if err := os.Rename(filepath.Join(staging, name), filepath.Join(outputDir, name)); err != nil {
			return fmt.Errorf("failed to publish %s: %w", name, err)
		}
	}
	return nil
}

func writeCSVFile(path string, table Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(table.Header); err != nil {
		return err
	}
	for i := range table.Len {
		if err := w.Write(table.Row(i)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
