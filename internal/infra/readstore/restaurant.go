package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"lastbite/internal/domain/restaurant"
	"lastbite/internal/infra"
	"lastbite/internal/infra/db"
	"lastbite/internal/pkg/pgconv"
	"lastbite/internal/usecase/queries"
)

type RestaurantReadStore struct {
	db db.DBTX
}

func NewRestaurantReadStore(dbtx db.DBTX) *RestaurantReadStore {
	return &RestaurantReadStore{db: dbtx}
}

const findRestaurantProfileSQL = `
SELECT id, title, phone, city, address, lat, lon
FROM restaurants
WHERE id = $1`

func (s *RestaurantReadStore) FindProfile(ctx context.Context, id uuid.UUID) (*queries.RestaurantProfileView, error) {
	var (
		view                 queries.RestaurantProfileView
		phone, city, address pgtype.Text
		lat, lon             pgtype.Float8
	)
	err := s.db.QueryRow(ctx, findRestaurantProfileSQL, id).Scan(
		&view.ID, &view.Title, &phone, &city, &address, &lat, &lon,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant profile", err)
	}
	view.Phone = pgconv.StringPtrFromPgtype(phone)
	view.City = pgconv.StringPtrFromPgtype(city)
	view.Address = pgconv.StringPtrFromPgtype(address)
	view.Lat = pgconv.Float64PtrFromPgtype(lat)
	view.Lon = pgconv.Float64PtrFromPgtype(lon)
	return &view, nil
}

const findRestaurantByIDSQL = `
SELECT id, api_key_hash, title, phone, city, address, lat, lon, created_at
FROM restaurants
WHERE id = $1`

// FindByID returns the full entity, API key hash included; it backs the
// authentication middleware and must never be exposed on a read endpoint.
func (s *RestaurantReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*restaurant.Restaurant, error) {
	var (
		rid                  uuid.UUID
		apiKeyHash, title    string
		phone, city, address pgtype.Text
		lat, lon             pgtype.Float8
		createdAt            pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, findRestaurantByIDSQL, id).Scan(
		&rid, &apiKeyHash, &title, &phone, &city, &address, &lat, &lon, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant by ID", err)
	}
	return restaurant.ReconstructRestaurant(
		rid, apiKeyHash, title,
		pgconv.StringPtrFromPgtype(phone),
		pgconv.StringPtrFromPgtype(city),
		pgconv.StringPtrFromPgtype(address),
		pgconv.Float64PtrFromPgtype(lat),
		pgconv.Float64PtrFromPgtype(lon),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}
