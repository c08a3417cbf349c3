// Package report persists the outcome log of the last run as JSON.
package report

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ReportStore with one file under the state directory.
type Store struct{}

var _ ports.ReportStore = (*Store)(nil)

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get reads the report stored under root. It returns nil, nil when no run
// has been recorded yet.
func (s *Store) Get(root string) (*domain.RunReport, error) {
	//nolint:gosec // path is the fixed report location under the run root
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrReportReadFailed.Error())
	}

	var r domain.RunReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, zerr.Wrap(err, domain.ErrReportUnmarshalFailed.Error())
	}
	return &r, nil
}

// Put writes report under root, replacing the previous one.
func (s *Store) Put(root string, report domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrReportMarshalFailed.Error())
	}

	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrReportCreateFailed.Error())
	}

	//nolint:gosec // path is the fixed report location under the run root
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrReportWriteFailed.Error())
	}
	return nil
}

// Path returns the report location for root.
func Path(root string) string {
	return filepath.Join(root, domain.DefaultReportPath())
}
