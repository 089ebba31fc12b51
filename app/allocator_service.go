package app

import (
	"context"

	"pcon/domain/code"
	apperrors "pcon/internal/errors"
	"pcon/ports"
)

// AllocatorService produces the next available code for a named series.
//
// It holds no cache of issued codes: every call re-derives state from the
// store, so one instance per request or one shared instance behave the same.
// Allocation only computes a candidate; the caller claims it by inserting a
// row in the same logical create operation. Two uncoordinated callers can
// therefore compute the same candidate (see AllocateWithRetry); the schema's
// unique constraints on code columns turn the residual collision into a
// STORE_CONSTRAINT_VIOLATION rather than a silent duplicate.
type AllocatorService struct {
	store ports.CodeStore
}

// NewAllocatorService creates an allocator over the given store
func NewAllocatorService(store ports.CodeStore) *AllocatorService {
	return &AllocatorService{store: store}
}

// Allocate computes the next code for the series: the successor of the
// greatest conforming code present, or the minimum code for an empty series.
// Store failures propagate unchanged; Allocate never retries them.
func (a *AllocatorService) Allocate(ctx context.Context, series ports.Series) (code.Code, error) {
	last, ok, err := a.store.MaxCode(ctx, series)
	if err != nil {
		return "", err
	}
	if !ok {
		last = ""
	}
	next, err := code.Next(last)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeSeriesExhausted) {
			return "", apperrors.SeriesExhausted(series.String())
		}
		return "", err
	}
	return next, nil
}

// AllocateWithRetry allocates a candidate, checks once whether a concurrent
// caller already claimed it, and on a hit allocates exactly once more and
// returns that result without a further check. Best effort only: it narrows
// the race window between reading the series maximum and inserting the row,
// it does not close it.
func (a *AllocatorService) AllocateWithRetry(ctx context.Context, series ports.Series) (code.Code, error) {
	candidate, err := a.Allocate(ctx, series)
	if err != nil {
		return "", err
	}
	taken, err := a.store.CodeExists(ctx, series, candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}
	return a.Allocate(ctx, series)
}
