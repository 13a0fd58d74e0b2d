package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"lastbite/internal/domain/reservation"
	"lastbite/internal/infra"
	"lastbite/internal/infra/db"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const createReservationSQL = `
INSERT INTO reservations (id, offer_id, code, qty, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation, now time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createReservationSQL,
		res.ID(),
		res.OfferID(),
		res.Code(),
		res.Qty(),
		res.Status().String(),
		now,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("reservation code collision", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

// MarkRedeemed performs the reserved → redeemed transition as a conditional
// update so a concurrent cancel cannot interleave. Zero rows means the
// reservation was no longer in reserved status; the caller re-reads and
// decides (already-redeemed is an idempotent success there).
func (r *ReservationRepository) MarkRedeemed(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE reservations SET status = $2, redeemed_at = $3 WHERE id = $1 AND status = $4`,
		id, reservation.StatusRedeemed.String(), at, reservation.StatusReserved.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to redeem reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation is not in reserved status", nil, infra.KindConflict)
	}
	return nil
}

func (r *ReservationRepository) MarkCanceled(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx,
		`UPDATE reservations SET status = $2 WHERE id = $1 AND status = $3`,
		id, reservation.StatusCanceled.String(), reservation.StatusReserved.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation is not in reserved status", nil, infra.KindConflict)
	}
	return nil
}

const pgErrCodeUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeUniqueViolation
	}
	return false
}
