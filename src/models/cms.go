package models

import (
	"strings"
	"tawheed/src/types"
)

type HeroSection struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	BackgroundVideo string `json:"background_video,omitempty"`
	BackgroundImage string `json:"background_image,omitempty"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`

	types.Timestamps
}

type ComponentType string

const (
	ComponentAbout        ComponentType = "about"
	ComponentServices     ComponentType = "services"
	ComponentTestimonials ComponentType = "testimonials"
	ComponentGallery      ComponentType = "gallery"
	ComponentFeatures     ComponentType = "features"
)

func (t ComponentType) Valid() bool {
	switch t {
	case ComponentAbout, ComponentServices, ComponentTestimonials, ComponentGallery, ComponentFeatures:
		return true
	}
	return false
}

type Component struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	Name          string        `json:"name"`
	ComponentType ComponentType `gorm:"type:text" json:"component_type"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Image         string        `json:"image,omitempty"`
	IsActive      bool          `gorm:"default:true" json:"is_active"`
	Order         int           `gorm:"column:display_order;default:0" json:"order"`

	types.Timestamps
}

// CMSPackage is the CMS-side catalog, keyed by a unique package_type tag.
// It shares the Priced capability with the main catalog but is referenced
// only by CMS views.
type CMSPackage struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	PackageType  string  `gorm:"uniqueIndex" json:"package_type"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Currency     string  `gorm:"default:'USD'" json:"currency"`
	Image        string  `json:"image,omitempty"`
	Features     string  `json:"features,omitempty"`
	DurationDays int     `gorm:"default:7" json:"duration_days"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
	IsFeatured   bool    `json:"is_featured"`

	types.Timestamps
}

func (p *CMSPackage) TableName() string { return "cms_packages" }

func (p *CMSPackage) EffectivePrice() float64 { return p.Price }

// FeaturesList splits the stored features text into one entry per
// non-empty line.
func (p *CMSPackage) FeaturesList() []string {
	var features []string
	for _, line := range strings.Split(p.Features, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			features = append(features, line)
		}
	}
	return features
}

type HomePage struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Content         string `json:"content"`
	BackgroundVideo string `json:"background_video,omitempty"`
	BackgroundImage string `json:"background_image,omitempty"`
	WelcomeTitle    string `gorm:"default:'Welcome'" json:"welcome_title"`
	WelcomeSubtitle string `json:"welcome_subtitle,omitempty"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`

	types.Timestamps
}
