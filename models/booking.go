package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Guest and hotel owner are opaque ids from the external auth provider.
	UserID       string `gorm:"column:user_id;index;type:varchar(191)" json:"userId"`
	HotelOwnerID string `gorm:"column:hotel_owner_id;index;type:varchar(191)" json:"hotelOwnerId"`

	HotelID uint `gorm:"column:hotel_id;index" json:"hotelId"`
	RoomID  uint `gorm:"column:room_id;index" json:"roomId"`

	StartDate time.Time `gorm:"column:start_date" json:"startDate"`
	EndDate   time.Time `gorm:"column:end_date" json:"endDate"`

	BreakfastIncluded bool    `gorm:"column:breakfast_included" json:"breakfastIncluded"`
	Currency          string  `gorm:"column:currency;size:8" json:"currency"`
	TotalPrice        float64 `gorm:"column:total_price" json:"totalPrice"`

	// PaymentStatus flips to true exactly once, when the payment provider
	// reports success and the dates re-validate conflict-free. It never
	// reverts. Rows with PaymentStatus == false do not block availability.
	PaymentStatus   bool   `gorm:"column:payment_status;default:false" json:"paymentStatus"`
	PaymentIntentID string `gorm:"column:payment_intent_id;uniqueIndex;size:191" json:"paymentIntentId"`

	ReferenceCode string         `gorm:"column:reference_code;size:64" json:"referenceCode,omitempty"`
	PaymentMeta   datatypes.JSON `gorm:"column:payment_meta" json:"paymentMeta,omitempty"`

	BookedAt time.Time `gorm:"column:booked_at" json:"bookedAt"`

	Room  Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Hotel Hotel `gorm:"foreignKey:HotelID;references:ID" json:"hotel,omitempty"`
}
