package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type BookingIDParams struct {
	BookingID string `uri:"booking_id" binding:"required,uuid"`
}

type RegisterRequestBody struct {
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone,omitempty" binding:"omitempty,max=15"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequestBody struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=15"`
	DateOfBirth *string `json:"date_of_birth,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address,omitempty"`
}

type UpdateUserRequestBody struct {
	UpdateProfileRequestBody
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Role  *string `json:"role,omitempty"`
}

type ChangePasswordRequestBody struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type CreateBookingRequestBody struct {
	Package             *uint   `json:"package,omitempty"`
	Name                string  `json:"name" binding:"required,max=100"`
	Email               string  `json:"email" binding:"required,email"`
	Phone               string  `json:"phone" binding:"required,max=15"`
	PackageType         string  `json:"package_type" binding:"required,max=100"`
	TravelMonth         string  `json:"travel_month" binding:"required,max=50"`
	Nights              int     `json:"nights" binding:"required,gt=0"`
	Passengers          int     `json:"passengers" binding:"required,gt=0"`
	DepartureDate       *string `json:"departure_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	SpecialRequirements string  `json:"special_requirements,omitempty"`
	TotalAmount         float64 `json:"total_amount,omitempty" binding:"omitempty,gte=0"`
}

type UpdateBookingRequestBody struct {
	Package             *uint   `json:"package,omitempty"`
	Name                *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Email               *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone               *string `json:"phone,omitempty" binding:"omitempty,max=15"`
	PackageType         *string `json:"package_type,omitempty" binding:"omitempty,max=100"`
	TravelMonth         *string `json:"travel_month,omitempty" binding:"omitempty,max=50"`
	Nights              *int    `json:"nights,omitempty" binding:"omitempty,gt=0"`
	Passengers          *int    `json:"passengers,omitempty" binding:"omitempty,gt=0"`
	DepartureDate       *string `json:"departure_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	SpecialRequirements *string `json:"special_requirements,omitempty"`
}

type UpdateBookingStatusRequestBody struct {
	Status string `json:"status" binding:"required"`
}

type CreatePackageRequestBody struct {
	Name             string   `json:"name" binding:"required,max=200"`
	PackageType      string   `json:"package_type" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	ShortDescription string   `json:"short_description,omitempty" binding:"omitempty,max=300"`
	Price            float64  `json:"price" binding:"required,gt=0"`
	DiscountedPrice  *float64 `json:"discounted_price,omitempty" binding:"omitempty,gt=0"`
	DurationDays     int      `json:"duration_days" binding:"required,gt=0"`
	MaxPassengers    int      `json:"max_passengers" binding:"required,gt=0"`
	Image            string   `json:"image,omitempty"`
	Includes         string   `json:"includes,omitempty"`
	Excludes         string   `json:"excludes,omitempty"`
	Itinerary        string   `json:"itinerary,omitempty"`
	IsFeatured       *bool    `json:"is_featured,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
}

type UpdatePackageRequestBody struct {
	Name             *string  `json:"name,omitempty" binding:"omitempty,max=200"`
	PackageType      *string  `json:"package_type,omitempty"`
	Description      *string  `json:"description,omitempty"`
	ShortDescription *string  `json:"short_description,omitempty" binding:"omitempty,max=300"`
	Price            *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	DiscountedPrice  *float64 `json:"discounted_price,omitempty"`
	DurationDays     *int     `json:"duration_days,omitempty" binding:"omitempty,gt=0"`
	MaxPassengers    *int     `json:"max_passengers,omitempty" binding:"omitempty,gt=0"`
	Image            *string  `json:"image,omitempty"`
	Includes         *string  `json:"includes,omitempty"`
	Excludes         *string  `json:"excludes,omitempty"`
	Itinerary        *string  `json:"itinerary,omitempty"`
	IsFeatured       *bool    `json:"is_featured,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
}

type HeroSectionRequestBody struct {
	Title           *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Subtitle        *string `json:"subtitle,omitempty"`
	BackgroundVideo *string `json:"background_video,omitempty"`
	BackgroundImage *string `json:"background_image,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

type ComponentRequestBody struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,max=100"`
	ComponentType *string `json:"component_type,omitempty"`
	Title         *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Description   *string `json:"description,omitempty"`
	Image         *string `json:"image,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	Order         *int    `json:"order,omitempty"`
}

type CreateCMSPackageRequestBody struct {
	PackageType  string  `json:"package_type" binding:"required,max=20"`
	Title        string  `json:"title" binding:"required,max=200"`
	Description  string  `json:"description" binding:"required"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Currency     string  `json:"currency,omitempty" binding:"omitempty,max=10"`
	Image        string  `json:"image,omitempty"`
	Features     string  `json:"features,omitempty"`
	DurationDays *int    `json:"duration_days,omitempty" binding:"omitempty,gt=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
	IsFeatured   *bool   `json:"is_featured,omitempty"`
}

type UpdateCMSPackageRequestBody struct {
	Title        *string  `json:"title,omitempty" binding:"omitempty,max=200"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	Currency     *string  `json:"currency,omitempty" binding:"omitempty,max=10"`
	Image        *string  `json:"image,omitempty"`
	Features     *string  `json:"features,omitempty"`
	DurationDays *int     `json:"duration_days,omitempty" binding:"omitempty,gt=0"`
	IsActive     *bool    `json:"is_active,omitempty"`
	IsFeatured   *bool    `json:"is_featured,omitempty"`
}

type UpdateCMSPackagePriceRequestBody struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

type HomePageRequestBody struct {
	Content         *string `json:"content,omitempty"`
	BackgroundVideo *string `json:"background_video,omitempty"`
	BackgroundImage *string `json:"background_image,omitempty"`
	WelcomeTitle    *string `json:"welcome_title,omitempty" binding:"omitempty,max=200"`
	WelcomeSubtitle *string `json:"welcome_subtitle,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

type ContactUsRequestBody struct {
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required,max=15"`
	PackageType string `json:"package_type,omitempty" binding:"omitempty,max=50"`
	Message     string `json:"message" binding:"required"`
}
