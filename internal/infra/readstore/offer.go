package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"lastbite/internal/infra"
	"lastbite/internal/infra/db"
	"lastbite/internal/pkg/pgconv"
	"lastbite/internal/usecase/queries"
	"lastbite/internal/usecase/shared"
)

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(dbtx db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: dbtx}
}

// Rows come back in creation order so the query layer's stable sort breaks
// ties by insertion order.
const listActiveOffersSQL = `
SELECT o.id, o.restaurant_id, o.title, o.description, o.price_cents,
       o.original_price_cents, o.qty_left, o.qty_total, o.expires_at,
       o.photo_url, o.created_at, r.lat, r.lon, r.city
FROM offers o
JOIN restaurants r ON r.id = o.restaurant_id
WHERE o.archived_at IS NULL
  AND (o.expires_at IS NULL OR o.expires_at > $1)
  AND (o.qty_left IS NULL OR o.qty_left > 0)
ORDER BY o.created_at, o.id
LIMIT $2`

func (s *OfferReadStore) ListActive(ctx context.Context, now time.Time, limit int32) ([]*queries.ActiveOfferRow, error) {
	rows, err := s.db.Query(ctx, listActiveOffersSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active offers", err)
	}
	defer rows.Close()

	var result []*queries.ActiveOfferRow
	for rows.Next() {
		var (
			row                queries.ActiveOfferRow
			description        pgtype.Text
			originalPriceCents pgtype.Int8
			qtyLeft            pgtype.Int4
			expiresAt          pgtype.Timestamptz
			photoURL           pgtype.Text
			lat, lon           pgtype.Float8
			city               pgtype.Text
		)
		if err := rows.Scan(
			&row.ID, &row.RestaurantID, &row.Title, &description, &row.PriceCents,
			&originalPriceCents, &qtyLeft, &row.QtyTotal, &expiresAt,
			&photoURL, &row.CreatedAt, &lat, &lon, &city,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan active offer row", err)
		}
		row.Description = pgconv.StringPtrFromPgtype(description)
		row.OriginalPriceCents = pgconv.Int64PtrFromPgtype(originalPriceCents)
		row.QtyLeft = pgconv.Int32PtrFromPgtype(qtyLeft)
		row.ExpiresAt = pgconv.TimePtrFromPgtype(expiresAt)
		row.PhotoURL = pgconv.StringPtrFromPgtype(photoURL)
		row.RestaurantLat = pgconv.Float64PtrFromPgtype(lat)
		row.RestaurantLon = pgconv.Float64PtrFromPgtype(lon)
		row.RestaurantCity = pgconv.StringPtrFromPgtype(city)
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate active offer rows", err)
	}
	return result, nil
}

const listOffersByRestaurantSQL = `
SELECT id, restaurant_id, title, description, price_cents, original_price_cents,
       qty_left, qty_total, expires_at, archived_at, photo_url, created_at
FROM offers
WHERE restaurant_id = $1`

func (s *OfferReadStore) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, activeOnly bool, now time.Time) ([]*queries.MerchantOfferView, error) {
	sql := listOffersByRestaurantSQL
	args := []any{restaurantID}
	if activeOnly {
		sql += `
  AND archived_at IS NULL
  AND (expires_at IS NULL OR expires_at > $2)
  AND (qty_left IS NULL OR qty_left > 0)`
		args = append(args, now)
	}
	sql += `
ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers by restaurant", err)
	}
	defer rows.Close()

	var result []*queries.MerchantOfferView
	for rows.Next() {
		var (
			view               queries.MerchantOfferView
			description        pgtype.Text
			originalPriceCents pgtype.Int8
			qtyLeft            pgtype.Int4
			expiresAt          pgtype.Timestamptz
			archivedAt         pgtype.Timestamptz
			photoURL           pgtype.Text
		)
		if err := rows.Scan(
			&view.ID, &view.RestaurantID, &view.Title, &description, &view.PriceCents,
			&originalPriceCents, &qtyLeft, &view.QtyTotal, &expiresAt, &archivedAt,
			&photoURL, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan merchant offer row", err)
		}
		view.Description = pgconv.StringPtrFromPgtype(description)
		view.OriginalPriceCents = pgconv.Int64PtrFromPgtype(originalPriceCents)
		view.QtyLeft = pgconv.Int32PtrFromPgtype(qtyLeft)
		view.ExpiresAt = pgconv.TimePtrFromPgtype(expiresAt)
		view.ArchivedAt = pgconv.TimePtrFromPgtype(archivedAt)
		view.PhotoURL = pgconv.StringPtrFromPgtype(photoURL)
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate merchant offer rows", err)
	}
	return result, nil
}

const offerSnapshotSQL = `
SELECT id, restaurant_id, title, price_cents, qty_left, expires_at, archived_at
FROM offers
WHERE id = $1`

func (s *OfferReadStore) FindSnapshotByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.OfferSnapshot, error) {
	var (
		snap       shared.OfferSnapshot
		qtyLeft    pgtype.Int4
		expiresAt  pgtype.Timestamptz
		archivedAt pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, offerSnapshotSQL, id).Scan(
		&snap.ID, &snap.RestaurantID, &snap.Title, &snap.PriceCents,
		&qtyLeft, &expiresAt, &archivedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer by ID", err)
	}
	snap.QtyLeft = pgconv.Int32PtrFromPgtype(qtyLeft)
	snap.ExpiresAt = pgconv.TimePtrFromPgtype(expiresAt)
	snap.ArchivedAt = pgconv.TimePtrFromPgtype(archivedAt)
	return &snap, nil
}
