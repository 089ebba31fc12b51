package testkit

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pcon/domain/code"
	apperrors "pcon/internal/errors"
	"pcon/models"
	"pcon/ports"
)

// TestKit bundles in-memory implementations of every port so service and
// handler tests run without a database. The memory store honors the same
// format predicate and composite ordering as the Postgres code store.
type TestKit struct {
	Manifests *MemoryManifestRepo
	Stops     *MemoryStopRepo
	Shipments *MemoryShipmentRepo
	SIDs      *MemorySIDRepo
	OSDs      *MemoryOSDRepo
	Codes     *MemoryCodeStore
}

// NewTestKit creates an empty in-memory backing set
func NewTestKit() *TestKit {
	kit := &TestKit{
		Manifests: &MemoryManifestRepo{rows: make(map[string]models.Manifest)},
		Stops:     &MemoryStopRepo{rows: make(map[code.Code]models.Stop)},
		Shipments: &MemoryShipmentRepo{rows: make(map[code.Code]models.Shipment)},
		SIDs:      &MemorySIDRepo{rows: make(map[code.Code]models.SID)},
		OSDs:      &MemoryOSDRepo{rows: make(map[code.Code]models.OSD)},
	}
	kit.Stops.kit = kit
	kit.Shipments.kit = kit
	kit.Codes = &MemoryCodeStore{kit: kit}
	return kit
}

// MemoryCodeStore derives series state from the live fake tables, the same
// way the SQL store derives it from rows.
type MemoryCodeStore struct {
	kit *TestKit

	// FailWith, when set, is returned by every call to simulate an outage
	FailWith error
}

func (s *MemoryCodeStore) seriesValues(series ports.Series) []string {
	switch series {
	case ports.SeriesStop:
		return s.kit.Stops.codes()
	case ports.SeriesShipment:
		return s.kit.Shipments.codes()
	case ports.SeriesSID:
		return s.kit.SIDs.codes()
	case ports.SeriesOSD:
		return s.kit.OSDs.codes()
	}
	return nil
}

// MaxCode returns the greatest conforming value under the composite order
func (s *MemoryCodeStore) MaxCode(_ context.Context, series ports.Series) (code.Code, bool, error) {
	if s.FailWith != nil {
		return "", false, s.FailWith
	}
	var best code.Code
	found := false
	for _, raw := range s.seriesValues(series) {
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

// CodeExists reports whether any row carries c
func (s *MemoryCodeStore) CodeExists(_ context.Context, series ports.Series, c code.Code) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	for _, raw := range s.seriesValues(series) {
		if raw == c.String() {
			return true, nil
		}
	}
	return false, nil
}

// MemoryManifestRepo is an in-memory ManifestRepository
type MemoryManifestRepo struct {
	mu   sync.Mutex
	rows map[string]models.Manifest
}

func (r *MemoryManifestRepo) Create(_ context.Context, m *models.Manifest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[m.ManifestNo]; ok {
		return apperrors.StoreConstraintViolation("manifest insert", nil)
	}
	r.rows[m.ManifestNo] = *m
	return nil
}

func (r *MemoryManifestRepo) Get(_ context.Context, manifestNo string) (*models.Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[manifestNo]
	if !ok {
		return nil, apperrors.NotFound("manifest " + manifestNo)
	}
	return &m, nil
}

func (r *MemoryManifestRepo) Exists(_ context.Context, manifestNo string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[manifestNo]
	return ok, nil
}

func (r *MemoryManifestRepo) Search(_ context.Context, filter models.ManifestFilter, limit int) ([]models.Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Manifest
	for _, m := range r.rows {
		if filter.ManifestNo != "" && !strings.Contains(strings.ToLower(m.ManifestNo), strings.ToLower(filter.ManifestNo)) {
			continue
		}
		if filter.CarrierCode != "" && !strings.Contains(strings.ToLower(m.OBCarrierCode), strings.ToLower(filter.CarrierCode)) {
			continue
		}
		if filter.DateFrom != nil && (m.ShipDate == nil || m.ShipDate.Before(*filter.DateFrom)) {
			continue
		}
		if filter.DateTo != nil && (m.ShipDate == nil || m.ShipDate.After(*filter.DateTo)) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ManifestNo > out[j].ManifestNo })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MemoryStopRepo is an in-memory StopRepository. Cascade deletes record
// their table order in the kit's CascadeLog for ordering assertions.
type MemoryStopRepo struct {
	mu   sync.Mutex
	rows map[code.Code]models.Stop

	// CascadeLog records the table names touched by DeleteCascade, in order
	CascadeLog []string

	kit *TestKit
}

func (r *MemoryStopRepo) codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.rows))
	for c := range r.rows {
		out = append(out, c.String())
	}
	return out
}

func (r *MemoryStopRepo) Insert(_ context.Context, s *models.Stop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[s.DropNo]; ok {
		return apperrors.StoreConstraintViolation("stop insert", nil)
	}
	r.rows[s.DropNo] = *s
	return nil
}

func (r *MemoryStopRepo) ListForManifest(_ context.Context, manifestNo string) ([]models.Stop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Stop
	for _, s := range r.rows {
		if s.ManifestNo == manifestNo {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StopOrder < out[j].StopOrder })
	return out, nil
}

func (r *MemoryStopRepo) Exists(_ context.Context, dropNo code.Code) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[dropNo]
	return ok, nil
}

func (r *MemoryStopRepo) DeleteCascade(ctx context.Context, dropNo code.Code) error {
	// Resolve dependent shipments first, then delete leaves-first like the
	// SQL cascade: SIDs, OSDs, shipments, stop.
	shipments, _ := r.kit.Shipments.ListForStop(ctx, dropNo)
	for _, sh := range shipments {
		r.kit.SIDs.deleteForOrder(sh.OrderID)
	}
	r.appendLog("sid")
	for _, sh := range shipments {
		r.kit.OSDs.deleteForOrder(sh.OrderID)
	}
	r.appendLog("osd")
	for _, sh := range shipments {
		r.kit.Shipments.delete(sh.OrderID)
	}
	r.appendLog("shipment_detail")

	r.mu.Lock()
	delete(r.rows, dropNo)
	r.CascadeLog = append(r.CascadeLog, "manifest_destinations")
	r.mu.Unlock()
	return nil
}

func (r *MemoryStopRepo) appendLog(table string) {
	r.mu.Lock()
	r.CascadeLog = append(r.CascadeLog, table)
	r.mu.Unlock()
}

// MemoryShipmentRepo is an in-memory ShipmentRepository
type MemoryShipmentRepo struct {
	mu   sync.Mutex
	rows map[code.Code]models.Shipment

	// CascadeLog records the table names touched by DeleteCascade, in order
	CascadeLog []string

	kit *TestKit
}

func (r *MemoryShipmentRepo) codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.rows))
	for c := range r.rows {
		out = append(out, c.String())
	}
	return out
}

func (r *MemoryShipmentRepo) delete(orderID code.Code) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, orderID)
}

func (r *MemoryShipmentRepo) Insert(_ context.Context, s *models.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[s.OrderID]; ok {
		return apperrors.StoreConstraintViolation("shipment insert", nil)
	}
	r.rows[s.OrderID] = *s
	return nil
}

func (r *MemoryShipmentRepo) ListForStop(_ context.Context, dropNo code.Code) ([]models.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Shipment
	for _, s := range r.rows {
		if s.DropNo == dropNo {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := out[i].BOLNo, out[j].BOLNo
		if ki == "" {
			ki = out[i].OrderID.String()
		}
		if kj == "" {
			kj = out[j].OrderID.String()
		}
		return ki < kj
	})
	return out, nil
}

func (r *MemoryShipmentRepo) GetPrimarySID(_ context.Context, orderID code.Code) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[orderID]
	if !ok {
		return nil, apperrors.NotFound("shipment " + orderID.String())
	}
	return s.SID, nil
}

func (r *MemoryShipmentRepo) SetPrimarySID(_ context.Context, orderID code.Code, sidNumber *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[orderID]
	if !ok {
		return apperrors.NotFound("shipment " + orderID.String())
	}
	s.SID = sidNumber
	r.rows[orderID] = s
	return nil
}

func (r *MemoryShipmentRepo) DeleteCascade(_ context.Context, orderID code.Code) error {
	r.kit.SIDs.deleteForOrder(orderID)
	r.kit.OSDs.deleteForOrder(orderID)

	r.mu.Lock()
	delete(r.rows, orderID)
	r.CascadeLog = append(r.CascadeLog, "sid", "osd", "shipment_detail")
	r.mu.Unlock()
	return nil
}

// MemorySIDRepo is an in-memory SIDRepository
type MemorySIDRepo struct {
	mu   sync.Mutex
	rows map[code.Code]models.SID
}

func (r *MemorySIDRepo) codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.rows))
	for c := range r.rows {
		out = append(out, c.String())
	}
	return out
}

func (r *MemorySIDRepo) deleteForOrder(orderID code.Code) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.rows {
		if s.OrderID == orderID {
			delete(r.rows, id)
		}
	}
}

func (r *MemorySIDRepo) Insert(_ context.Context, s *models.SID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[s.SIDID]; ok {
		return apperrors.StoreConstraintViolation("SID insert", nil)
	}
	r.rows[s.SIDID] = *s
	return nil
}

func (r *MemorySIDRepo) ListForOrder(_ context.Context, orderID code.Code) ([]models.SID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SID
	for _, s := range r.rows {
		if s.OrderID == orderID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SIDNumber < out[j].SIDNumber })
	return out, nil
}

func (r *MemorySIDRepo) Delete(_ context.Context, sidID code.Code) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, sidID)
	return nil
}

// MemoryOSDRepo is an in-memory OSDRepository
type MemoryOSDRepo struct {
	mu   sync.Mutex
	rows map[code.Code]models.OSD
}

func (r *MemoryOSDRepo) codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.rows))
	for c := range r.rows {
		out = append(out, c.String())
	}
	return out
}

func (r *MemoryOSDRepo) deleteForOrder(orderID code.Code) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, o := range r.rows {
		if o.OrderID == orderID {
			delete(r.rows, id)
		}
	}
}

func (r *MemoryOSDRepo) Insert(_ context.Context, o *models.OSD) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[o.OSDIndex]; ok {
		return apperrors.StoreConstraintViolation("OSD insert", nil)
	}
	r.rows[o.OSDIndex] = *o
	return nil
}

func (r *MemoryOSDRepo) ListForOrder(_ context.Context, orderID code.Code) ([]models.OSD, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.OSD
	for _, o := range r.rows {
		if o.OrderID == orderID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OSDIndex < out[j].OSDIndex })
	return out, nil
}

func (r *MemoryOSDRepo) Delete(_ context.Context, osdIndex code.Code) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, osdIndex)
	return nil
}
