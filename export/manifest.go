package export

import (
	"encoding/json"
	"fmt"
	"os"

	"churnsynth/models"

	"github.com/google/uuid"
)

// Manifest describes the files of one CSV export
type Manifest struct {
	RunID     uuid.UUID        `json:"run_id"`
	Params    ManifestParams   `json:"params"`
	RowCounts models.RowCounts `json:"row_counts"`
	Churned   int              `json:"churned"`
	Files     []string         `json:"files"`
}

// ManifestParams are the generation parameters with calendar dates
type ManifestParams struct {
	Customers int     `json:"customers"`
	ChurnRate float64 `json:"churn_rate"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Seed      int64   `json:"seed"`
}

// NewManifest builds the manifest of a dataset written as files
func NewManifest(ds *models.Dataset, files []string) Manifest {
	return Manifest{
		RunID: ds.RunID,
		Params: ManifestParams{
			Customers: ds.Params.Customers,
			ChurnRate: ds.Params.ChurnRate,
			StartDate: ds.Params.StartDate.Format(models.DateLayout),
			EndDate:   ds.Params.EndDate.Format(models.DateLayout),
			Seed:      ds.Params.Seed,
		},
		RowCounts: ds.RowCounts(),
		Churned:   ds.ChurnedCount(),
		Files:     files,
	}
}

// ReadManifest loads a manifest written by the CSV sink
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

func writeManifest(path string, ds *models.Dataset, files []string) error {
	data, err := json.MarshalIndent(NewManifest(ds, files), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
