package ports

import "go.trai.ch/tsbuild/internal/core/domain"

// ReportStore persists the outcome log of a run.
//
//go:generate mockgen -source=report_store.go -destination=mocks/mock_report_store.go -package=mocks
type ReportStore interface {
	// Get returns the last report stored under root.
	// Returns nil, nil if none exists.
	Get(root string) (*domain.RunReport, error)

	// Put stores report under root, replacing any previous one.
	Put(root string, report domain.RunReport) error
}
