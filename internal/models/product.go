package models

// Product represents a catalog product variant that may carry a licence
type Product struct {
	ID          int64  `json:"id"`
	DefaultCode string `json:"default_code"` // Internal reference / product code
	Name        string `json:"name"`
	Active      bool   `json:"active"`

	// Number of months after sale until a licence issued for this
	// product expires. Non-positive means the product is not licensed.
	LicenceLengthMonths int `json:"licence_length_months"`
}

// Licensed reports whether the product participates in expiration reporting
func (p *Product) Licensed() bool {
	return p.LicenceLengthMonths > 0
}
