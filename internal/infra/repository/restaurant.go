package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lastbite/internal/domain/restaurant"
	"lastbite/internal/infra"
	"lastbite/internal/infra/db"
	"lastbite/internal/pkg/pgconv"
	"lastbite/internal/usecase/shared"
)

type RestaurantRepository struct{}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{}
}

const createRestaurantSQL = `
INSERT INTO restaurants (id, api_key_hash, title, phone, city, address, lat, lon)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

func (r *RestaurantRepository) Create(ctx context.Context, tx db.DBTX, rest *restaurant.Restaurant) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createRestaurantSQL,
		rest.ID(),
		rest.APIKeyHash(),
		rest.Title(),
		pgconv.StringPtrToPgtype(rest.Phone()),
		pgconv.StringPtrToPgtype(rest.City()),
		pgconv.StringPtrToPgtype(rest.Address()),
		pgconv.Float64PtrToPgtype(rest.Lat()),
		pgconv.Float64PtrToPgtype(rest.Lon()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create restaurant", err)
	}
	return id, nil
}

func (r *RestaurantRepository) UpdateProfile(ctx context.Context, tx db.DBTX, id uuid.UUID, patch shared.RestaurantPatch) error {
	var sets []string
	var args []any
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Phone != nil {
		addSet("phone", *patch.Phone)
	}
	if patch.City != nil {
		addSet("city", *patch.City)
	}
	if patch.Address != nil {
		addSet("address", *patch.Address)
	}
	if patch.Lat != nil {
		addSet("lat", *patch.Lat)
	}
	if patch.Lon != nil {
		addSet("lon", *patch.Lon)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	sql := fmt.Sprintf("UPDATE restaurants SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update restaurant profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}
	return nil
}
