package plans

import (
	"math"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/utils"
)

// Dimension is one tracked usage axis.
type Dimension struct {
	Used    int64 `json:"used"`
	Limit   int64 `json:"limit"`
	Percent int   `json:"percent"`
}

// UsageReport compares consumed resources against a plan's limits. Percent
// is 0 for unlimited dimensions and is not clamped to 100; clamping is a
// display concern.
type UsageReport struct {
	Documents        Dimension `json:"documents"`
	Storage          Dimension `json:"storage"`
	Users            Dimension `json:"users"`
	StorageFormatted string    `json:"storageFormatted"`
}

// ComputeUsage derives a usage report from full collection scans. Usage is
// computed, never stored.
func ComputeUsage(docs []models.Document, users []models.User, plan *Plan) UsageReport {
	var storageBytes int64
	for _, d := range docs {
		storageBytes += d.SizeBytes
	}

	return UsageReport{
		Documents:        dimension(int64(len(docs)), int64(plan.Limits.MaxDocuments)),
		Storage:          dimension(storageBytes, plan.Limits.MaxStorageBytes),
		Users:            dimension(int64(len(users)), int64(plan.Limits.MaxUsers)),
		StorageFormatted: utils.FormatBytes(storageBytes),
	}
}

func dimension(used, limit int64) Dimension {
	return Dimension{
		Used:    used,
		Limit:   limit,
		Percent: percent(used, limit),
	}
}

func percent(used, limit int64) int {
	if limit == Unlimited || limit == 0 {
		return 0
	}
	return int(math.Round(float64(used) / float64(limit) * 100))
}
