package domain

// Destination is an aggregator side location used to quote shipping.
type Destination struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	ProvinceName    string `json:"provinceName"`
	CityName        string `json:"cityName"`
	DistrictName    string `json:"districtName"`
	SubdistrictName string `json:"subdistrictName"`
	ZipCode         string `json:"zipCode"`
}

type ShippingOption struct {
	CourierCode      string `json:"courierCode"`
	CourierName      string `json:"courierName"`
	Service          string `json:"service"`
	Description      string `json:"description"`
	Cost             int64  `json:"cost"`
	EstimatedDays    string `json:"estimatedDays"`
	MinEstimatedDays int    `json:"minEstimatedDays"`
	MaxEstimatedDays int    `json:"maxEstimatedDays"`
}

// Key identifies an option within one quote.
func (o ShippingOption) Key() string {
	return o.CourierCode + ":" + o.Service
}

type Courier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
