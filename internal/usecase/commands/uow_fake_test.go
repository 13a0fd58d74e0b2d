//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"lastbite/internal/domain/offer"
	"lastbite/internal/domain/reservation"
	"lastbite/internal/domain/restaurant"
	"lastbite/internal/infra"
	"lastbite/internal/infra/db"
	"lastbite/internal/usecase/shared"
)

// In-memory UnitOfWork. Within serializes transactions with one mutex, which
// is exactly the property the conditional decrement needs from the store.
// Mutations are applied in place; the command paths under test never mutate
// before their failing check.

type offerRecord struct {
	restaurantID       uuid.UUID
	title              string
	description        *string
	priceCents         int64
	originalPriceCents *int64
	qtyTotal           int32
	qtyLeft            *int32
	expiresAt          *time.Time
	archivedAt         *time.Time
	photoURL           *string
	createdAt          time.Time
}

type reservationRecord struct {
	offerID    uuid.UUID
	code       string
	qty        int32
	status     reservation.Status
	createdAt  time.Time
	redeemedAt *time.Time
}

type fakeUoW struct {
	mu           sync.Mutex
	offers       map[uuid.UUID]*offerRecord
	reservations map[uuid.UUID]*reservationRecord
	restaurants  map[uuid.UUID]*restaurant.Restaurant
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		offers:       make(map[uuid.UUID]*offerRecord),
		reservations: make(map[uuid.UUID]*reservationRecord),
		restaurants:  make(map[uuid.UUID]*restaurant.Restaurant),
	}
}

func (u *fakeUoW) addOffer(rec *offerRecord) uuid.UUID {
	u.mu.Lock()
	defer u.mu.Unlock()
	id := uuid.New()
	u.offers[id] = rec
	return id
}

func (u *fakeUoW) offerQtyLeft(id uuid.UUID) *int32 {
	u.mu.Lock()
	defer u.mu.Unlock()
	rec := u.offers[id]
	if rec == nil || rec.qtyLeft == nil {
		return nil
	}
	v := *rec.qtyLeft
	return &v
}

func (u *fakeUoW) reservationByCode(code string) (uuid.UUID, *reservationRecord) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for id, rec := range u.reservations {
		if rec.code == code {
			return id, rec
		}
	}
	return uuid.Nil, nil
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, &fakeTx{u: u})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{u: u, locked: false}
}

type fakeTx struct {
	u *fakeUoW
}

func (t *fakeTx) DB() db.DBTX { return nil }

func (t *fakeTx) Offers() shared.OfferRepository { return &fakeOfferRepo{u: t.u} }

func (t *fakeTx) Reservations() shared.ReservationRepository {
	return &fakeReservationRepo{u: t.u}
}

func (t *fakeTx) Restaurants() shared.RestaurantRepository { return &fakeRestaurantRepo{u: t.u} }

func (t *fakeTx) Reads() shared.CommandReads { return &fakeReads{u: t.u, locked: true} }

type fakeOfferRepo struct {
	u *fakeUoW
}

func (r *fakeOfferRepo) Create(_ context.Context, _ db.DBTX, o *offer.Offer) (uuid.UUID, error) {
	r.u.offers[o.ID()] = &offerRecord{
		restaurantID:       o.RestaurantID(),
		title:              o.Title(),
		description:        o.Description(),
		priceCents:         o.PriceCents(),
		originalPriceCents: o.OriginalPriceCents(),
		qtyTotal:           o.QtyTotal(),
		qtyLeft:            o.QtyLeft(),
		expiresAt:          o.ExpiresAt(),
		photoURL:           o.PhotoURL(),
		createdAt:          time.Now().UTC(),
	}
	return o.ID(), nil
}

func (r *fakeOfferRepo) Update(_ context.Context, _ db.DBTX, id uuid.UUID, patch shared.OfferPatch) error {
	rec, ok := r.u.offers[id]
	if !ok {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	if patch.Title != nil {
		rec.title = *patch.Title
	}
	if patch.DescriptionSet {
		rec.description = patch.Description
	}
	if patch.PriceCents != nil {
		rec.priceCents = *patch.PriceCents
	}
	if patch.OriginalPriceCents != nil {
		rec.originalPriceCents = patch.OriginalPriceCents
	}
	if patch.QtyTotal != nil {
		rec.qtyTotal = *patch.QtyTotal
	}
	if patch.QtyLeft != nil {
		rec.qtyLeft = patch.QtyLeft
	}
	if patch.ExpiresAtSet {
		rec.expiresAt = patch.ExpiresAt
	}
	if patch.PhotoURLSet {
		rec.photoURL = patch.PhotoURL
	}
	return nil
}

func (r *fakeOfferRepo) Archive(_ context.Context, _ db.DBTX, id uuid.UUID, at time.Time) error {
	rec, ok := r.u.offers[id]
	if !ok {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	if rec.archivedAt == nil {
		rec.archivedAt = &at
	}
	return nil
}

func (r *fakeOfferRepo) ReserveQuantity(_ context.Context, _ db.DBTX, id uuid.UUID, qty int32, now time.Time) error {
	rec, ok := r.u.offers[id]
	if !ok {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	if rec.archivedAt != nil || (rec.expiresAt != nil && !rec.expiresAt.After(now)) {
		return infra.WrapRepoErr("offer is not active", nil, infra.KindInactive)
	}
	if rec.qtyLeft == nil {
		return nil
	}
	if *rec.qtyLeft < qty {
		return infra.WrapRepoErr("not enough quantity left", nil, infra.KindInsufficientQty)
	}
	left := *rec.qtyLeft - qty
	rec.qtyLeft = &left
	return nil
}

func (r *fakeOfferRepo) ReleaseQuantity(_ context.Context, _ db.DBTX, id uuid.UUID, qty int32) error {
	rec, ok := r.u.offers[id]
	if !ok {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	if rec.qtyLeft != nil {
		left := *rec.qtyLeft + qty
		rec.qtyLeft = &left
	}
	return nil
}

type fakeReservationRepo struct {
	u *fakeUoW
}

func (r *fakeReservationRepo) Create(_ context.Context, _ db.DBTX, res *reservation.Reservation, now time.Time) (uuid.UUID, error) {
	for _, rec := range r.u.reservations {
		if rec.code == res.Code() {
			return uuid.Nil, infra.WrapRepoErr("reservation code collision", nil, infra.KindDuplicateKey)
		}
	}
	r.u.reservations[res.ID()] = &reservationRecord{
		offerID:   res.OfferID(),
		code:      res.Code(),
		qty:       res.Qty(),
		status:    res.Status(),
		createdAt: now,
	}
	return res.ID(), nil
}

func (r *fakeReservationRepo) MarkRedeemed(_ context.Context, _ db.DBTX, id uuid.UUID, at time.Time) error {
	rec, ok := r.u.reservations[id]
	if !ok || rec.status != reservation.StatusReserved {
		return infra.WrapRepoErr("reservation is not in reserved status", nil, infra.KindConflict)
	}
	rec.status = reservation.StatusRedeemed
	rec.redeemedAt = &at
	return nil
}

func (r *fakeReservationRepo) MarkCanceled(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	rec, ok := r.u.reservations[id]
	if !ok || rec.status != reservation.StatusReserved {
		return infra.WrapRepoErr("reservation is not in reserved status", nil, infra.KindConflict)
	}
	rec.status = reservation.StatusCanceled
	return nil
}

type fakeRestaurantRepo struct {
	u *fakeUoW
}

func (r *fakeRestaurantRepo) Create(_ context.Context, _ db.DBTX, rest *restaurant.Restaurant) (uuid.UUID, error) {
	r.u.restaurants[rest.ID()] = rest
	return rest.ID(), nil
}

func (r *fakeRestaurantRepo) UpdateProfile(_ context.Context, _ db.DBTX, id uuid.UUID, patch shared.RestaurantPatch) error {
	rest, ok := r.u.restaurants[id]
	if !ok {
		return infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}
	title := rest.Title()
	if patch.Title != nil {
		title = *patch.Title
	}
	phone, city, address := rest.Phone(), rest.City(), rest.Address()
	lat, lon := rest.Lat(), rest.Lon()
	if patch.Phone != nil {
		phone = patch.Phone
	}
	if patch.City != nil {
		city = patch.City
	}
	if patch.Address != nil {
		address = patch.Address
	}
	if patch.Lat != nil {
		lat = patch.Lat
	}
	if patch.Lon != nil {
		lon = patch.Lon
	}
	r.u.restaurants[id] = restaurant.ReconstructRestaurant(
		id, rest.APIKeyHash(), title, phone, city, address, lat, lon, rest.CreatedAt(),
	)
	return nil
}

type fakeReads struct {
	u      *fakeUoW
	locked bool
}

func (r *fakeReads) lock() func() {
	if r.locked {
		return func() {}
	}
	r.u.mu.Lock()
	return r.u.mu.Unlock
}

func (r *fakeReads) OfferByID(_ context.Context, id uuid.UUID) (*shared.OfferSnapshot, error) {
	defer r.lock()()
	rec, ok := r.u.offers[id]
	if !ok {
		return nil, infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return &shared.OfferSnapshot{
		ID:           id,
		RestaurantID: rec.restaurantID,
		Title:        rec.title,
		PriceCents:   rec.priceCents,
		QtyLeft:      rec.qtyLeft,
		ExpiresAt:    rec.expiresAt,
		ArchivedAt:   rec.archivedAt,
	}, nil
}

func (r *fakeReads) ReservationByCode(_ context.Context, code string) (*shared.ReservationSnapshot, error) {
	defer r.lock()()
	for id, rec := range r.u.reservations {
		if rec.code != code {
			continue
		}
		snap := &shared.ReservationSnapshot{
			ID:         id,
			OfferID:    rec.offerID,
			Code:       rec.code,
			Qty:        rec.qty,
			Status:     rec.status,
			CreatedAt:  rec.createdAt,
			RedeemedAt: rec.redeemedAt,
		}
		if o, ok := r.u.offers[rec.offerID]; ok {
			snap.RestaurantID = o.restaurantID
			snap.OfferExpiresAt = o.expiresAt
		}
		return snap, nil
	}
	return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
}

func (r *fakeReads) RestaurantByID(_ context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	defer r.lock()()
	rest, ok := r.u.restaurants[id]
	if !ok {
		return nil, infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}
	return rest, nil
}
