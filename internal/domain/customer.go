package domain

type Customer struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	EmailAddress string    `json:"emailAddress"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	Addresses    []Address `json:"addresses,omitempty"`
}

type Address struct {
	ID                     string `json:"id,omitempty"`
	FullName               string `json:"fullName"`
	Company                string `json:"company,omitempty"`
	StreetLine1            string `json:"streetLine1"`
	StreetLine2            string `json:"streetLine2,omitempty"`
	City                   string `json:"city"`
	Province               string `json:"province"`
	PostalCode             string `json:"postalCode"`
	CountryCode            string `json:"countryCode"`
	PhoneNumber            string `json:"phoneNumber"`
	DefaultShippingAddress bool   `json:"defaultShippingAddress"`
	DefaultBillingAddress  bool   `json:"defaultBillingAddress"`
}

// SameDestination compares the delivery fields only, since order addresses
// carry no id.
func (a Address) SameDestination(other Address) bool {
	return a.FullName == other.FullName &&
		a.StreetLine1 == other.StreetLine1 &&
		a.StreetLine2 == other.StreetLine2 &&
		a.City == other.City &&
		a.PostalCode == other.PostalCode &&
		a.PhoneNumber == other.PhoneNumber
}

type WishlistItem struct {
	ID               string `json:"id"`
	ProductVariantID string `json:"productVariantId"`
	ProductName      string `json:"productName"`
	VariantName      string `json:"variantName"`
	PriceWithTax     int64  `json:"priceWithTax"`
	FeaturedAssetURL string `json:"featuredAssetUrl,omitempty"`
}
