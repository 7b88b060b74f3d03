package models

import "tawheed/src/types"

// Priced is the shared pricing capability of the two catalog schemas.
// Booking totals are always computed against it, never against raw columns.
type Priced interface {
	EffectivePrice() float64
}

type PackageCategory string

const (
	CategoryHajj    PackageCategory = "hajj"
	CategoryUmrah   PackageCategory = "umrah"
	CategoryRamadan PackageCategory = "ramadan"
)

var packageCategoryDisplay = map[PackageCategory]string{
	CategoryHajj:    "Hajj",
	CategoryUmrah:   "Umrah",
	CategoryRamadan: "Ramadan Special",
}

func (c PackageCategory) Valid() bool {
	_, ok := packageCategoryDisplay[c]
	return ok
}

func (c PackageCategory) Display() string {
	return packageCategoryDisplay[c]
}

type Package struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	Name             string          `json:"name"`
	PackageType      PackageCategory `gorm:"type:text" json:"package_type"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description,omitempty"`
	Price            float64         `json:"price"`
	DiscountedPrice  *float64        `json:"discounted_price,omitempty"`
	DurationDays     int             `json:"duration_days"`
	MaxPassengers    int             `json:"max_passengers"`
	Image            string          `json:"image,omitempty"`
	Includes         string          `json:"includes,omitempty"`
	Excludes         string          `json:"excludes,omitempty"`
	Itinerary        string          `json:"itinerary,omitempty"`
	IsFeatured       bool            `json:"is_featured"`
	IsActive         bool            `gorm:"default:true" json:"is_active"`

	types.Timestamps
}

func (p *Package) EffectivePrice() float64 {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}
