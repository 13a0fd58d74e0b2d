package restaurant

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"lastbite/internal/pkg/apikey"
)

var (
	ErrEmptyTitle   = errors.New("restaurant title cannot be empty")
	ErrTitleTooLong = errors.New("restaurant title is too long (max 255 characters)")
)

const MaxTitleLength = 255

type Restaurant struct {
	id         uuid.UUID
	apiKeyHash string
	title      string
	phone      *string
	city       *string
	address    *string
	lat        *float64
	lon        *float64
	createdAt  time.Time
}

func NewRestaurant(
	id uuid.UUID,
	apiKeyHash string,
	title string,
	phone, city, address *string,
	lat, lon *float64,
) (*Restaurant, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	return &Restaurant{
		id:         id,
		apiKeyHash: apiKeyHash,
		title:      title,
		phone:      phone,
		city:       city,
		address:    address,
		lat:        lat,
		lon:        lon,
	}, nil
}

func ReconstructRestaurant(
	id uuid.UUID,
	apiKeyHash, title string,
	phone, city, address *string,
	lat, lon *float64,
	createdAt time.Time,
) *Restaurant {
	return &Restaurant{
		id:         id,
		apiKeyHash: apiKeyHash,
		title:      title,
		phone:      phone,
		city:       city,
		address:    address,
		lat:        lat,
		lon:        lon,
		createdAt:  createdAt,
	}
}

// VerifyKey reports whether the presented API key belongs to this restaurant.
func (r *Restaurant) VerifyKey(key string) bool {
	if key == "" {
		return false
	}
	return apikey.Verify(r.apiKeyHash, key)
}

// HasCoordinate reports whether a distance can be computed to this restaurant.
func (r *Restaurant) HasCoordinate() bool {
	return r.lat != nil && r.lon != nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func (r *Restaurant) ID() uuid.UUID        { return r.id }
func (r *Restaurant) APIKeyHash() string   { return r.apiKeyHash }
func (r *Restaurant) Title() string        { return r.title }
func (r *Restaurant) Phone() *string       { return r.phone }
func (r *Restaurant) City() *string        { return r.city }
func (r *Restaurant) Address() *string     { return r.address }
func (r *Restaurant) Lat() *float64        { return r.lat }
func (r *Restaurant) Lon() *float64        { return r.lon }
func (r *Restaurant) CreatedAt() time.Time { return r.createdAt }
