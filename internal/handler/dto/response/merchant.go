package response

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"lastbite/internal/usecase/commands"
	"lastbite/internal/usecase/queries"
)

type RegisterMerchantResponse struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	APIKey       string    `json:"api_key"`
}

type MerchantProfileResponse struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Phone   *string   `json:"phone,omitempty"`
	City    *string   `json:"city,omitempty"`
	Address *string   `json:"address,omitempty"`
	Lat     *float64  `json:"lat,omitempty"`
	Lon     *float64  `json:"lon,omitempty"`
}

type KPIResponse struct {
	Reserved       int64   `json:"reserved"`
	Redeemed       int64   `json:"redeemed"`
	RedemptionRate float64 `json:"redemption_rate"`
	RevenueCents   int64   `json:"revenue_cents"`
}

func FromRegisterResult(res *commands.RegisterMerchantResult) RegisterMerchantResponse {
	return RegisterMerchantResponse{RestaurantID: res.ID, APIKey: res.APIKey}
}

func FromProfileView(view *queries.RestaurantProfileView) (MerchantProfileResponse, error) {
	var out MerchantProfileResponse
	if err := copier.Copy(&out, view); err != nil {
		return MerchantProfileResponse{}, err
	}
	return out, nil
}

func FromKPIView(view *queries.KPIView) KPIResponse {
	return KPIResponse{
		Reserved:       view.Reserved,
		Redeemed:       view.Redeemed,
		RedemptionRate: view.RedemptionRate,
		RevenueCents:   view.RevenueCents,
	}
}
