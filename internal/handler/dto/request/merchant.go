package request

import "lastbite/internal/usecase/commands"

type RegisterMerchantRequest struct {
	Title   string   `json:"title" binding:"required"`
	Phone   *string  `json:"phone,omitempty"`
	City    *string  `json:"city,omitempty"`
	Address *string  `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

func (r RegisterMerchantRequest) ToCommand() commands.RegisterMerchantRequest {
	return commands.RegisterMerchantRequest{
		Title:   r.Title,
		Phone:   r.Phone,
		City:    r.City,
		Address: r.Address,
		Lat:     r.Lat,
		Lon:     r.Lon,
	}
}

type UpdateMerchantProfileRequest struct {
	Title   *string  `json:"title,omitempty"`
	Phone   *string  `json:"phone,omitempty"`
	City    *string  `json:"city,omitempty"`
	Address *string  `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

func (r UpdateMerchantProfileRequest) ToCommand() commands.UpdateMerchantProfileRequest {
	return commands.UpdateMerchantProfileRequest{
		Title:   r.Title,
		Phone:   r.Phone,
		City:    r.City,
		Address: r.Address,
		Lat:     r.Lat,
		Lon:     r.Lon,
	}
}
