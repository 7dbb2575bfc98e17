package dto

import "github.com/alimikegami/point-of-sales/storefront-service/internal/domain"

type RajaOngkirMeta struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Status  string `json:"status"`
}

type RajaOngkirDestinationResponse struct {
	Meta RajaOngkirMeta          `json:"meta"`
	Data []RajaOngkirDestination `json:"data"`
}

type RajaOngkirDestination struct {
	ID              int    `json:"id"`
	Label           string `json:"label"`
	ProvinceName    string `json:"province_name"`
	CityName        string `json:"city_name"`
	DistrictName    string `json:"district_name"`
	SubdistrictName string `json:"subdistrict_name"`
	ZipCode         string `json:"zip_code"`
}

type RajaOngkirCostResponse struct {
	Meta RajaOngkirMeta   `json:"meta"`
	Data []RajaOngkirCost `json:"data"`
}

type RajaOngkirCost struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Service     string `json:"service"`
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
	Etd         string `json:"etd"`
}

type CostRequest struct {
	Origin      string
	Destination string
	Weight      int
	Couriers    []string
}

// Same-origin route payloads.

type DestinationsResponse struct {
	Destinations []domain.Destination `json:"destinations"`
}

type ShippingOptionsResponse struct {
	ShippingOptions []domain.ShippingOption `json:"shippingOptions"`
}

type CouriersResponse struct {
	Couriers []domain.Courier `json:"couriers"`
}

type RouteErrorResponse struct {
	Error string `json:"error"`
}
