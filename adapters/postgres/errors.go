package postgres

import (
	"github.com/lib/pq"

	apperrors "pcon/internal/errors"
)

// pq error class 23 is integrity_constraint_violation: unique (23505, a lost
// allocation race surfacing at insert), foreign key (23503, a dangling parent
// reference), not-null, check.
const pqIntegrityViolation = "23"

// storeErr maps a driver error onto the store taxonomy: integrity-constraint
// hits become STORE_CONSTRAINT_VIOLATION, everything else STORE_UNAVAILABLE.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Class() == pqIntegrityViolation {
		return apperrors.StoreConstraintViolation(op, err)
	}
	return apperrors.StoreUnavailable(op, err)
}
