package usecase

import (
	"context"

	"github.com/iho/onlinebank/internal/domain"
)

// AccountRecord is one persisted account in its raw text form. Validation is
// left to the Bank so that a single bad record never aborts a load.
type AccountRecord struct {
	Number  string
	Balance string
}

// LoadResult is everything a store read back, including lines it could not
// recognise as a record tag.
type LoadResult struct {
	Records      []AccountRecord
	Unrecognized []string
}

// AccountStore persists the full account set.
type AccountStore interface {
	// Load returns all stored records. A store that has never been saved
	// returns an empty result and no error.
	Load(ctx context.Context) (LoadResult, error)
	// Save replaces the stored set with accounts, preserving their order.
	Save(ctx context.Context, accounts []*domain.Account) error
}

// MetricsRecorder receives registry events.
type MetricsRecorder interface {
	AccountCreated()
	AccountsLoaded(n int)
	LoadDiagnostic(kind string)
}

type noopMetrics struct{}

func (noopMetrics) AccountCreated()       {}
func (noopMetrics) AccountsLoaded(int)    {}
func (noopMetrics) LoadDiagnostic(string) {}
