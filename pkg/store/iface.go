// iface.go defines the StoreInterface for dependency injection and testing.
//
// The concrete *Store type satisfies this interface. The cmd layer accepts
// StoreInterface instead of *Store, enabling mock injection in tests.
package store

import "github.com/daviddao/chronology/pkg/model"

// StoreInterface defines the full set of store operations.
// The concrete *Store type implements this interface.
type StoreInterface interface {
	// Close closes the database connection.
	Close() error

	// --- Stamps ---

	// SaveStamp inserts or replaces a stamp by label.
	SaveStamp(st *model.Stamp) error

	// GetStamp retrieves a stamp by label.
	GetStamp(label string) (*model.Stamp, error)

	// ListStamps returns all stamps in instant order.
	ListStamps() ([]model.Stamp, error)

	// DeleteStamp removes a stamp by label.
	DeleteStamp(label string) error

	// CountStamps returns the number of saved stamps.
	CountStamps() int64

	// --- Periods ---

	// SavePeriod inserts or replaces a period by label.
	SavePeriod(r *model.PeriodRecord) error

	// GetPeriod retrieves a period by label.
	GetPeriod(label string) (*model.PeriodRecord, error)

	// ListPeriods returns all periods ordered by label.
	ListPeriods() ([]model.PeriodRecord, error)

	// FindPeriodsByDigest returns the periods equal to the one hashed.
	FindPeriodsByDigest(digest string) ([]model.PeriodRecord, error)

	// DeletePeriod removes a period by label.
	DeletePeriod(label string) error
}

// Compile-time check that *Store implements StoreInterface.
var _ StoreInterface = (*Store)(nil)
