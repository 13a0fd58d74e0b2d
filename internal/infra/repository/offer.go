package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"lastbite/internal/domain/offer"
	"lastbite/internal/infra"
	"lastbite/internal/infra/db"
	"lastbite/internal/pkg/pgconv"
	"lastbite/internal/usecase/shared"
)

type OfferRepository struct{}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{}
}

const createOfferSQL = `
INSERT INTO offers (
	id, restaurant_id, title, description, price_cents, original_price_cents,
	qty_total, qty_left, expires_at, photo_url
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

func (r *OfferRepository) Create(ctx context.Context, tx db.DBTX, o *offer.Offer) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createOfferSQL,
		o.ID(),
		o.RestaurantID(),
		o.Title(),
		pgconv.StringPtrToPgtype(o.Description()),
		o.PriceCents(),
		pgconv.Int64PtrToPgtype(o.OriginalPriceCents()),
		o.QtyTotal(),
		pgconv.Int32PtrToPgtype(o.QtyLeft()),
		pgconv.TimePtrToPgtype(o.ExpiresAt()),
		pgconv.StringPtrToPgtype(o.PhotoURL()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create offer", err)
	}
	return id, nil
}

// Update applies a partial edit; only fields present in the patch reach the
// SET clause.
func (r *OfferRepository) Update(ctx context.Context, tx db.DBTX, id uuid.UUID, patch shared.OfferPatch) error {
	var sets []string
	var args []any
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.DescriptionSet {
		addSet("description", pgconv.StringPtrToPgtype(patch.Description))
	}
	if patch.PriceCents != nil {
		addSet("price_cents", *patch.PriceCents)
	}
	if patch.OriginalPriceCents != nil {
		addSet("original_price_cents", *patch.OriginalPriceCents)
	}
	if patch.QtyTotal != nil {
		addSet("qty_total", *patch.QtyTotal)
	}
	if patch.QtyLeft != nil {
		addSet("qty_left", *patch.QtyLeft)
	}
	if patch.ExpiresAtSet {
		addSet("expires_at", pgconv.TimePtrToPgtype(patch.ExpiresAt))
	}
	if patch.PhotoURLSet {
		addSet("photo_url", pgconv.StringPtrToPgtype(patch.PhotoURL))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	sql := fmt.Sprintf("UPDATE offers SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

// Archive is an idempotent soft delete; the row is never removed so
// reservation history stays intact.
func (r *OfferRepository) Archive(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE offers SET archived_at = COALESCE(archived_at, $2) WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to archive offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

// reserveQuantitySQL is the ledger's critical section: the capacity check and
// the decrement are one statement, so two reservations racing for the last
// unit cannot both pass. NULL qty_left means unlimited; NULL - qty stays NULL,
// which is exactly the required no-op.
const reserveQuantitySQL = `
UPDATE offers
SET qty_left = qty_left - $2
WHERE id = $1
  AND archived_at IS NULL
  AND (expires_at IS NULL OR expires_at > $3)
  AND (qty_left IS NULL OR qty_left >= $2)`

func (r *OfferRepository) ReserveQuantity(ctx context.Context, tx db.DBTX, id uuid.UUID, qty int32, now time.Time) error {
	tag, err := tx.Exec(ctx, reserveQuantitySQL, id, qty, now)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve offer quantity", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	// The conditional update matched nothing; a follow-up read classifies the
	// refusal. The read informs the error kind only, never the decision.
	return r.classifyReserveFailure(ctx, tx, id, now)
}

func (r *OfferRepository) classifyReserveFailure(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error {
	var archivedAt, expiresAt pgtype.Timestamptz
	err := tx.QueryRow(ctx,
		`SELECT archived_at, expires_at FROM offers WHERE id = $1`,
		id,
	).Scan(&archivedAt, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to inspect offer after reserve refusal", err)
	}
	if archivedAt.Valid || (expiresAt.Valid && !expiresAt.Time.After(now)) {
		return infra.WrapRepoErr("offer is not active", nil, infra.KindInactive)
	}
	return infra.WrapRepoErr("not enough quantity left", nil, infra.KindInsufficientQty)
}

// ReleaseQuantity restores capacity after a cancellation. The increment is
// unconditional and unclamped: callers must release exactly what they
// reserved, exactly once. A double release inflates qty_left past qty_total
// and the ledger will not detect it; see the cancellation command for the
// guard that makes release single-shot.
func (r *OfferRepository) ReleaseQuantity(ctx context.Context, tx db.DBTX, id uuid.UUID, qty int32) error {
	tag, err := tx.Exec(ctx,
		`UPDATE offers SET qty_left = qty_left + $2 WHERE id = $1 AND qty_left IS NOT NULL`,
		id, qty,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release offer quantity", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	// Unlimited offers track nothing; only a missing row is an error.
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM offers WHERE id = $1)`, id).Scan(&exists); err != nil {
		return infra.WrapRepoErr("failed to inspect offer after release", err)
	}
	if !exists {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}
