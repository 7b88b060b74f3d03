package models

import (
	"tawheed/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

var bookingStatusDisplay = map[BookingStatus]string{
	BookingPending:   "Pending",
	BookingConfirmed: "Confirmed",
	BookingCancelled: "Cancelled",
	BookingCompleted: "Completed",
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingStatusDisplay[s]
	return ok
}

func (s BookingStatus) Display() string {
	return bookingStatusDisplay[s]
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// bookingTransitions is the whole lifecycle. completed and cancelled have no
// outgoing edges.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// CanTransition is the single authority on status changes. A same-status
// write is treated as an idempotent no-op and allowed.
func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;default:gen_random_uuid()" json:"booking_id"`
	UserID    uint      `json:"user_id,omitempty"`
	PackageID *uint     `json:"package,omitempty"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	PackageType         string     `gorm:"default:'Standard'" json:"package_type"`
	TravelMonth         string     `gorm:"default:'January'" json:"travel_month"`
	Nights              int        `gorm:"default:1" json:"nights"`
	Passengers          int        `gorm:"default:1" json:"passengers"`
	DepartureDate       *time.Time `json:"departure_date,omitempty"`
	SpecialRequirements string     `json:"special_requirements,omitempty"`
	TotalAmount         float64    `json:"total_amount"`

	Status BookingStatus `gorm:"type:text;default:'pending'" json:"status"`

	User    *User    `gorm:"foreignKey:user_id" json:"-"`
	Package *Package `gorm:"foreignKey:package_id" json:"package_details,omitempty"`

	types.Timestamps
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.BookingID == uuid.Nil {
		b.BookingID = uuid.New()
	}
	return nil
}
