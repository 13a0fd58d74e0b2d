package readstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"lastbite/internal/domain/reservation"
	"lastbite/internal/infra"
	"lastbite/internal/infra/db"
	"lastbite/internal/pkg/pgconv"
	"lastbite/internal/usecase/shared"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const findReservationByCodeSQL = `
SELECT res.id, res.offer_id, o.restaurant_id, res.code, res.qty, res.status,
       res.created_at, res.redeemed_at, o.expires_at
FROM reservations res
JOIN offers o ON o.id = res.offer_id
WHERE res.code = $1`

func (s *ReservationReadStore) FindSnapshotByCode(ctx context.Context, dbtx db.DBTX, code string) (*shared.ReservationSnapshot, error) {
	var (
		snap       shared.ReservationSnapshot
		status     string
		redeemedAt pgtype.Timestamptz
		expiresAt  pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, findReservationByCodeSQL, code).Scan(
		&snap.ID, &snap.OfferID, &snap.RestaurantID, &snap.Code, &snap.Qty, &status,
		&snap.CreatedAt, &redeemedAt, &expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by code", err)
	}
	snap.Status = reservation.Status(status)
	snap.RedeemedAt = pgconv.TimePtrFromPgtype(redeemedAt)
	snap.OfferExpiresAt = pgconv.TimePtrFromPgtype(expiresAt)
	return &snap, nil
}
