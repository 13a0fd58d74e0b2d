package queries

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"lastbite/internal/domain/offer"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/pkg/geo"
)

type SortOrder string

const (
	SortByExpiry   SortOrder = "expiry" // default: soonest expiry first, never-expires last
	SortByPrice    SortOrder = "price"
	SortByNew      SortOrder = "new"
	SortByDistance SortOrder = "distance"
)

func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortByPrice, SortByNew, SortByDistance:
		return SortOrder(s)
	default:
		return SortByExpiry
	}
}

// ActiveOfferRow is the raw listing row from the read store: the offer joined
// with the restaurant fields the directory needs for distance and city
// filtering. Pricing and sorting happen here, not in SQL, so the pricing
// function stays the single source of the discount schedule.
type ActiveOfferRow struct {
	ID                 uuid.UUID
	RestaurantID       uuid.UUID
	Title              string
	Description        *string
	PriceCents         int64
	OriginalPriceCents *int64
	QtyLeft            *int32
	QtyTotal           int32
	ExpiresAt          *time.Time
	PhotoURL           *string
	CreatedAt          time.Time
	RestaurantLat      *float64
	RestaurantLon      *float64
	RestaurantCity     *string
}

type OfferReadStore interface {
	ListActive(ctx context.Context, now time.Time, limit int32) ([]*ActiveOfferRow, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, activeOnly bool, now time.Time) ([]*MerchantOfferView, error)
}

type ListPublicParams struct {
	Limit int32
	Sort  SortOrder
	// Observer coordinate; both must be set for distances to be computed.
	Lat *float64
	Lon *float64
	// Case-insensitive exact city match.
	City *string
}

type OfferQueries interface {
	ListPublic(ctx context.Context, params ListPublicParams, now time.Time) ([]*PublicOfferView, error)
	ListByOwner(ctx context.Context, restaurantID uuid.UUID, activeOnly bool, now time.Time) ([]*MerchantOfferView, error)
	ExportCSV(ctx context.Context, restaurantID uuid.UUID, now time.Time, w io.Writer) error
}

type offerQueriesImpl struct {
	store OfferReadStore
}

func NewOfferQueries(store OfferReadStore) OfferQueries {
	return &offerQueriesImpl{store: store}
}

const defaultListLimit = 200

func (q *offerQueriesImpl) ListPublic(ctx context.Context, params ListPublicParams, now time.Time) ([]*PublicOfferView, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := q.store.ListActive(ctx, now, limit)
	if err != nil {
		return nil, err
	}

	views := make([]*PublicOfferView, 0, len(rows))
	for _, row := range rows {
		view := toPublicOfferView(row, now)
		if params.Lat != nil && params.Lon != nil && row.RestaurantLat != nil && row.RestaurantLon != nil {
			d := geo.HaversineKm(*params.Lat, *params.Lon, *row.RestaurantLat, *row.RestaurantLon)
			view.DistanceKm = &d
		}
		if params.City != nil && !cityMatches(view.City, *params.City) {
			continue
		}
		views = append(views, view)
	}

	order := params.Sort
	if order == SortByDistance && (params.Lat == nil || params.Lon == nil) {
		// no observer coordinate, no distances to order by
		order = SortByExpiry
	}
	sortOffers(views, order)
	return views, nil
}

func (q *offerQueriesImpl) ListByOwner(ctx context.Context, restaurantID uuid.UUID, activeOnly bool, now time.Time) ([]*MerchantOfferView, error) {
	return q.store.ListByRestaurant(ctx, restaurantID, activeOnly, now)
}

var csvHeader = []string{
	"id", "restaurant_id", "title", "description", "price_cents",
	"original_price_cents", "qty_left", "qty_total", "expires_at",
	"archived_at", "photo_url", "created_at",
}

func (q *offerQueriesImpl) ExportCSV(ctx context.Context, restaurantID uuid.UUID, now time.Time, w io.Writer) error {
	rows, err := q.store.ListByRestaurant(ctx, restaurantID, false, now)
	if err != nil {
		return err
	}
	// The merchant listing shows newest first; the export is oldest first.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errs.Wrap(err, "failed to write csv header")
	}
	for _, row := range rows {
		record := []string{
			row.ID.String(),
			row.RestaurantID.String(),
			row.Title,
			strOrEmpty(row.Description),
			strconv.FormatInt(row.PriceCents, 10),
			int64PtrOrEmpty(row.OriginalPriceCents),
			int32PtrOrEmpty(row.QtyLeft),
			strconv.FormatInt(int64(row.QtyTotal), 10),
			timePtrOrEmpty(row.ExpiresAt),
			timePtrOrEmpty(row.ArchivedAt),
			strOrEmpty(row.PhotoURL),
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return errs.Wrap(err, "failed to write csv record")
		}
	}
	cw.Flush()
	return errs.Wrap(cw.Error(), "failed to flush csv")
}

func toPublicOfferView(row *ActiveOfferRow, now time.Time) *PublicOfferView {
	quote := offer.Quote(row.PriceCents, row.OriginalPriceCents, row.ExpiresAt, now)
	return &PublicOfferView{
		ID:                  row.ID,
		RestaurantID:        row.RestaurantID,
		Title:               row.Title,
		Description:         row.Description,
		PriceCents:          row.PriceCents,
		OriginalPriceCents:  row.OriginalPriceCents,
		PriceCentsEffective: quote.EffectivePriceCents,
		DiscountPercent:     quote.DiscountPercent,
		DiscountTier:        quote.Tier,
		QtyLeft:             row.QtyLeft,
		QtyTotal:            row.QtyTotal,
		ExpiresAt:           row.ExpiresAt,
		PhotoURL:            row.PhotoURL,
		City:                row.RestaurantCity,
		CreatedAt:           row.CreatedAt,
	}
}

func cityMatches(city *string, want string) bool {
	if city == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*city), strings.TrimSpace(want))
}

// sortOffers imposes a total order over the filtered set. The input arrives
// in creation order and the sort is stable, so ties keep that order.
func sortOffers(views []*PublicOfferView, order SortOrder) {
	switch order {
	case SortByPrice:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].PriceCentsEffective < views[j].PriceCentsEffective
		})
	case SortByNew:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		})
	case SortByDistance:
		sort.SliceStable(views, func(i, j int) bool {
			di, dj := views[i].DistanceKm, views[j].DistanceKm
			if di == nil {
				return false // offers without a distance sort last
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	default: // expiry
		sort.SliceStable(views, func(i, j int) bool {
			ei, ej := views[i].ExpiresAt, views[j].ExpiresAt
			if ei == nil {
				return false // never-expiring offers sort last
			}
			if ej == nil {
				return true
			}
			return ei.Before(*ej)
		})
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func int64PtrOrEmpty(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func int32PtrOrEmpty(v *int32) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(int64(*v), 10)
}

func timePtrOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
