package app

import (
	"context"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"pcon/domain/code"
	apperrors "pcon/internal/errors"
	"pcon/models"
	"pcon/ports"
)

// DefaultSearchLimit caps manifest search results
const DefaultSearchLimit = 500

// ManifestService orchestrates manifest data entry: manifest CRUD, stops,
// shipments, SIDs and OSD rows, with code allocation on every create.
type ManifestService struct {
	manifests ports.ManifestRepository
	stops     ports.StopRepository
	shipments ports.ShipmentRepository
	sids      ports.SIDRepository
	osds      ports.OSDRepository
	alloc     *AllocatorService

	searchLimit int
}

// NewManifestService creates a manifest service over the given repositories
func NewManifestService(
	manifests ports.ManifestRepository,
	stops ports.StopRepository,
	shipments ports.ShipmentRepository,
	sids ports.SIDRepository,
	osds ports.OSDRepository,
	alloc *AllocatorService,
) *ManifestService {
	return &ManifestService{
		manifests:   manifests,
		stops:       stops,
		shipments:   shipments,
		sids:        sids,
		osds:        osds,
		alloc:       alloc,
		searchLimit: DefaultSearchLimit,
	}
}

// SetSearchLimit overrides the search result cap
func (s *ManifestService) SetSearchLimit(limit int) {
	if limit > 0 {
		s.searchLimit = limit
	}
}

// CreateManifest inserts a new manifest after a duplicate check
func (s *ManifestService) CreateManifest(ctx context.Context, m *models.Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	exists, err := s.manifests.Exists(ctx, m.ManifestNo)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Duplicate("manifest " + m.ManifestNo)
	}
	return s.manifests.Create(ctx, m)
}

// GetManifest returns one manifest by number
func (s *ManifestService) GetManifest(ctx context.Context, manifestNo string) (*models.Manifest, error) {
	return s.manifests.Get(ctx, manifestNo)
}

// SearchManifests applies the filter, capped at the configured row limit
func (s *ManifestService) SearchManifests(ctx context.Context, filter models.ManifestFilter) ([]models.Manifest, error) {
	return s.manifests.Search(ctx, filter, s.searchLimit)
}

// AddStop allocates a drop number and inserts the stop. The drop-number
// series keeps the collision pre-check because two sessions routinely edit
// stops at the same time.
func (s *ManifestService) AddStop(ctx context.Context, stop *models.Stop) (code.Code, error) {
	if err := stop.Validate(); err != nil {
		return "", err
	}
	exists, err := s.manifests.Exists(ctx, stop.ManifestNo)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperrors.NotFound("manifest " + stop.ManifestNo)
	}
	dropNo, err := s.alloc.AllocateWithRetry(ctx, ports.SeriesStop)
	if err != nil {
		return "", err
	}
	stop.DropNo = dropNo
	if err := s.stops.Insert(ctx, stop); err != nil {
		return "", err
	}
	return dropNo, nil
}

// ListStops returns a manifest's stops in stop order
func (s *ManifestService) ListStops(ctx context.Context, manifestNo string) ([]models.Stop, error) {
	return s.stops.ListForManifest(ctx, manifestNo)
}

// DeleteStop cascades: SIDs, OSDs, shipments, then the stop itself
func (s *ManifestService) DeleteStop(ctx context.Context, dropNo code.Code) error {
	return s.stops.DeleteCascade(ctx, dropNo)
}

// AddShipment allocates an order id and inserts the shipment
func (s *ManifestService) AddShipment(ctx context.Context, sh *models.Shipment) (code.Code, error) {
	if err := sh.Validate(); err != nil {
		return "", err
	}
	exists, err := s.stops.Exists(ctx, sh.DropNo)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperrors.NotFound("stop " + sh.DropNo.String())
	}
	orderID, err := s.alloc.Allocate(ctx, ports.SeriesShipment)
	if err != nil {
		return "", err
	}
	sh.OrderID = orderID
	if err := s.shipments.Insert(ctx, sh); err != nil {
		return "", err
	}
	return orderID, nil
}

// ListShipments returns the shipments recorded against a stop
func (s *ManifestService) ListShipments(ctx context.Context, dropNo code.Code) ([]models.Shipment, error) {
	return s.shipments.ListForStop(ctx, dropNo)
}

// DeleteShipment cascades: SIDs, OSDs, then the shipment itself
func (s *ManifestService) DeleteShipment(ctx context.Context, orderID code.Code) error {
	return s.shipments.DeleteCascade(ctx, orderID)
}

// ListSIDs returns the secondary shipping identifiers for a shipment
func (s *ManifestService) ListSIDs(ctx context.Context, orderID code.Code) ([]models.SID, error) {
	return s.sids.ListForOrder(ctx, orderID)
}

// AddSIDs inserts the given SID numbers, skipping blanks and numbers the
// shipment already carries. Returns how many rows were inserted.
func (s *ManifestService) AddSIDs(ctx context.Context, orderID code.Code, sidNumbers []string) (int, error) {
	clean := make([]string, 0, len(sidNumbers))
	for _, n := range sidNumbers {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			clean = append(clean, trimmed)
		}
	}
	if len(clean) == 0 {
		return 0, nil
	}

	existing, err := s.sids.ListForOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, sid := range existing {
		seen[sid.SIDNumber] = true
	}

	added := 0
	for _, number := range clean {
		if seen[number] {
			continue
		}
		sidID, err := s.alloc.Allocate(ctx, ports.SeriesSID)
		if err != nil {
			return added, err
		}
		sid := &models.SID{SIDID: sidID, OrderID: orderID, SIDNumber: number}
		if err := s.sids.Insert(ctx, sid); err != nil {
			return added, err
		}
		seen[number] = true
		added++
	}
	return added, nil
}

// DeleteSID removes a single SID row
func (s *ManifestService) DeleteSID(ctx context.Context, sidID code.Code) error {
	return s.sids.Delete(ctx, sidID)
}

// GetPrimarySID reads the primary SID off the shipment row; nil means unset
func (s *ManifestService) GetPrimarySID(ctx context.Context, orderID code.Code) (*string, error) {
	return s.shipments.GetPrimarySID(ctx, orderID)
}

// SetPrimarySID writes the primary SID on the shipment row. A nil or blank
// number clears it.
func (s *ManifestService) SetPrimarySID(ctx context.Context, orderID code.Code, sidNumber *string) error {
	if sidNumber != nil {
		trimmed := strings.TrimSpace(*sidNumber)
		if trimmed == "" {
			sidNumber = nil
		} else {
			sidNumber = &trimmed
		}
	}
	return s.shipments.SetPrimarySID(ctx, orderID, sidNumber)
}

// ListOSDs returns the OSD exceptions recorded against a shipment
func (s *ManifestService) ListOSDs(ctx context.Context, orderID code.Code) ([]models.OSD, error) {
	return s.osds.ListForOrder(ctx, orderID)
}

// AddOSD allocates an OSD index and inserts the exception row
func (s *ManifestService) AddOSD(ctx context.Context, o *models.OSD) (code.Code, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}
	osdIndex, err := s.alloc.Allocate(ctx, ports.SeriesOSD)
	if err != nil {
		return "", err
	}
	o.OSDIndex = osdIndex
	if err := s.osds.Insert(ctx, o); err != nil {
		return "", err
	}
	return osdIndex, nil
}

// DeleteOSD removes a single OSD row
func (s *ManifestService) DeleteOSD(ctx context.Context, osdIndex code.Code) error {
	return s.osds.Delete(ctx, osdIndex)
}

// Detail loads the full manifest tree. Shipment lists for the stops are
// fetched concurrently; stop order is preserved in the result.
func (s *ManifestService) Detail(ctx context.Context, manifestNo string) (*models.ManifestDetail, error) {
	manifest, err := s.manifests.Get(ctx, manifestNo)
	if err != nil {
		return nil, err
	}
	stops, err := s.stops.ListForManifest(ctx, manifestNo)
	if err != nil {
		return nil, err
	}

	detail := &models.ManifestDetail{
		Manifest: *manifest,
		Stops:    make([]models.StopDetail, len(stops)),
	}
	g, gctx := errgroup.WithContext(ctx)
	for i, stop := range stops {
		detail.Stops[i].Stop = stop
		g.Go(func() error {
			shipments, err := s.shipments.ListForStop(gctx, stop.DropNo)
			if err != nil {
				return err
			}
			detail.Stops[i].Shipments = shipments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// Summary computes the aggregate totals panel for a manifest
func (s *ManifestService) Summary(ctx context.Context, manifestNo string) (*models.ManifestSummary, error) {
	detail, err := s.Detail(ctx, manifestNo)
	if err != nil {
		return nil, err
	}

	summary := &models.ManifestSummary{
		ManifestNo:         manifestNo,
		StopCount:          len(detail.Stops),
		TotalDeclaredValue: decimal.Zero,
	}
	var weights []float64
	for _, stop := range detail.Stops {
		for _, sh := range stop.Shipments {
			summary.ShipmentCount++
			summary.TotalSkids += sh.Skids
			summary.TotalBoxes += sh.Boxes
			summary.TotalDeclaredValue = summary.TotalDeclaredValue.Add(sh.DeclaredValue)
			if sh.Hazmat {
				summary.HazmatCount++
			}
			weights = append(weights, sh.WeightLb.InexactFloat64())
		}
	}
	if len(weights) > 0 {
		// stats errors only on empty input, guarded above
		summary.TotalWeightLb, _ = stats.Sum(weights)
		summary.MeanWeightLb, _ = stats.Mean(weights)
		summary.MedianWeightLb, _ = stats.Median(weights)
	}
	return summary, nil
}
