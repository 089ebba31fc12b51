package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcon/domain/code"
	apperrors "pcon/internal/errors"
	"pcon/ports"
)

// fakeCodeStore serves canned series contents, honoring the strict format
// predicate the way the SQL store does.
type fakeCodeStore struct {
	values []string
	err    error

	// maxQueue, when non-empty, serves MaxCode results per call in order,
	// simulating concurrent inserts between reads
	maxQueue []string

	// existsOverride forces CodeExists results in call order when non-nil
	existsOverride []bool
	existsErr      error
	existsCalls    int
	maxCalls       int
}

func (f *fakeCodeStore) MaxCode(_ context.Context, _ ports.Series) (code.Code, bool, error) {
	f.maxCalls++
	if f.err != nil {
		return "", false, f.err
	}
	if len(f.maxQueue) > 0 {
		raw := f.maxQueue[0]
		f.maxQueue = f.maxQueue[1:]
		return code.Code(raw), true, nil
	}
	var best code.Code
	found := false
	for _, raw := range f.values {
		c := code.Code(raw)
		if !c.Valid() {
			continue
		}
		if !found || c.OrderKey() > best.OrderKey() {
			best = c
			found = true
		}
	}
	return best, found, nil
}

func (f *fakeCodeStore) CodeExists(_ context.Context, _ ports.Series, c code.Code) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.existsErr != nil {
		return false, f.existsErr
	}
	defer func() { f.existsCalls++ }()
	if f.existsOverride != nil {
		if f.existsCalls < len(f.existsOverride) {
			return f.existsOverride[f.existsCalls], nil
		}
		return false, nil
	}
	for _, raw := range f.values {
		if raw == c.String() {
			return true, nil
		}
	}
	return false, nil
}

func TestAllocate_EmptySeries(t *testing.T) {
	alloc := NewAllocatorService(&fakeCodeStore{})
	got, err := alloc.Allocate(context.Background(), ports.SeriesStop)
	require.NoError(t, err)
	assert.Equal(t, code.Min, got)
}

func TestAllocate_Increments(t *testing.T) {
	alloc := NewAllocatorService(&fakeCodeStore{values: []string{"AAAA0005"}})
	got, err := alloc.Allocate(context.Background(), ports.SeriesShipment)
	require.NoError(t, err)
	assert.Equal(t, code.Code("AAAA0006"), got)
}

func TestAllocate_IgnoresNonConformingRows(t *testing.T) {
	// Legacy values are excluded from max-finding, never fatal
	alloc := NewAllocatorService(&fakeCodeStore{values: []string{"AAAA0005", "LEGACY1", "aaaa9999"}})
	got, err := alloc.Allocate(context.Background(), ports.SeriesSID)
	require.NoError(t, err)
	assert.Equal(t, code.Code("AAAA0006"), got)
}

func TestAllocate_UsesCompositeOrder(t *testing.T) {
	alloc := NewAllocatorService(&fakeCodeStore{values: []string{"AAAA0000", "AAAA0001", "AAAB0000"}})
	got, err := alloc.Allocate(context.Background(), ports.SeriesOSD)
	require.NoError(t, err)
	assert.Equal(t, code.Code("AAAB0001"), got)
}

func TestAllocate_SeriesExhausted(t *testing.T) {
	alloc := NewAllocatorService(&fakeCodeStore{values: []string{"ZZZZ9999"}})
	_, err := alloc.Allocate(context.Background(), ports.SeriesStop)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSeriesExhausted, apperrors.GetCode(err))
}

func TestAllocate_StoreErrorPropagates(t *testing.T) {
	storeErr := apperrors.StoreUnavailable("max code lookup", nil)
	store := &fakeCodeStore{err: storeErr}
	alloc := NewAllocatorService(store)
	_, err := alloc.Allocate(context.Background(), ports.SeriesStop)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeStoreUnavailable, apperrors.GetCode(err))
	assert.Equal(t, 1, store.maxCalls, "store failures must not be retried")
}

func TestAllocateWithRetry_FirstCandidateFree(t *testing.T) {
	store := &fakeCodeStore{values: []string{"AAAA0009"}, existsOverride: []bool{false}}
	alloc := NewAllocatorService(store)
	got, err := alloc.AllocateWithRetry(context.Background(), ports.SeriesStop)
	require.NoError(t, err)
	assert.Equal(t, code.Code("AAAA0010"), got)
	assert.Equal(t, 1, store.maxCalls)
	assert.Equal(t, 1, store.existsCalls)
}

func TestAllocateWithRetry_CollisionReallocatesOnce(t *testing.T) {
	// The first candidate reads as taken: a concurrent caller claimed it
	// between our max read and the check. The second read sees the new max.
	store := &fakeCodeStore{maxQueue: []string{"AAAA0010", "AAAA0011"}, existsOverride: []bool{true}}
	alloc := NewAllocatorService(store)
	got, err := alloc.AllocateWithRetry(context.Background(), ports.SeriesStop)
	require.NoError(t, err)
	assert.Equal(t, code.Code("AAAA0012"), got)
	assert.Equal(t, 2, store.maxCalls, "exactly one re-allocation")
	assert.Equal(t, 1, store.existsCalls, "the retry result is returned without a further check")
}

func TestAllocateWithRetry_ExistsCheckErrorPropagates(t *testing.T) {
	store := &fakeCodeStore{
		values:    []string{"AAAA0001"},
		existsErr: apperrors.StoreUnavailable("code existence check", nil),
	}
	alloc := NewAllocatorService(store)
	_, err := alloc.AllocateWithRetry(context.Background(), ports.SeriesStop)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeStoreUnavailable, apperrors.GetCode(err))
}
