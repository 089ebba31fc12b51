package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pcon/domain/code"
	"pcon/ports"
)

// CodePattern is the strict format predicate applied to every series column.
// Rows not matching it (legacy data) are excluded from max-finding, never fatal.
const CodePattern = "^[A-Z]{4}[0-9]{4}$"

// CodeStoreImpl implements CodeStore for PostgreSQL
type CodeStoreImpl struct {
	db *sqlx.DB
}

// NewCodeStore creates a new PostgreSQL code store
func NewCodeStore(db *sqlx.DB) ports.CodeStore {
	return &CodeStoreImpl{db: db}
}

// MaxCode finds the greatest conforming code in the series.
//
// The ORDER BY reproduces the composite order explicitly (letters as a
// base-26 big-endian number scaled by the 10^4 digit space, plus the numeric
// suffix) rather than trusting the column's string collation to agree with
// it. The key is forced to bigint: the full key space tops out near 4.57e9,
// past int4, so int4 arithmetic would overflow for high letter prefixes.
// Table and column come from the fixed series vars, quoted as
// identifiers; the format predicate is the only bound parameter.
func (s *CodeStoreImpl) MaxCode(ctx context.Context, series ports.Series) (code.Code, bool, error) {
	table := pq.QuoteIdentifier(series.Table)
	column := pq.QuoteIdentifier(series.Column)
	query := fmt.Sprintf(`
		SELECT %[2]s
		FROM %[1]s
		WHERE %[2]s ~ $1
		ORDER BY (
			(ascii(substr(%[2]s, 1, 1)) - 65)::bigint * 17576 +
			(ascii(substr(%[2]s, 2, 1)) - 65) * 676 +
			(ascii(substr(%[2]s, 3, 1)) - 65) * 26 +
			(ascii(substr(%[2]s, 4, 1)) - 65)
		) * 10000 + substr(%[2]s, 5, 4)::bigint DESC
		LIMIT 1
	`, table, column)

	var raw string
	err := s.db.GetContext(ctx, &raw, query, CodePattern)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storeErr("max code lookup on "+series.String(), err)
	}

	last, err := code.Parse(raw)
	if err != nil {
		// The predicate should make this unreachable; treat it as bad data,
		// not a crash.
		return "", false, nil
	}
	return last, true, nil
}

// CodeExists reports whether a row in the series already carries c
func (s *CodeStoreImpl) CodeExists(ctx context.Context, series ports.Series, c code.Code) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		pq.QuoteIdentifier(series.Table), pq.QuoteIdentifier(series.Column),
	)
	var exists bool
	if err := s.db.GetContext(ctx, &exists, query, c.String()); err != nil {
		return false, storeErr("code existence check on "+series.String(), err)
	}
	return exists, nil
}
