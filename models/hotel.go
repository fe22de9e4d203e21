package models

import (
	"gorm.io/gorm"
)

type Hotel struct {
	gorm.Model

	// Owner identity comes from the external auth provider, so it is an
	// opaque string, not a FK into a local users table.
	UserID string `json:"userId" gorm:"column:user_id;index;type:varchar(191)"`

	Title               string `json:"title" gorm:"type:varchar(255)"`
	Description         string `json:"description" gorm:"type:text"`
	Image               string `json:"image" gorm:"type:text"`
	Country             string `json:"country" gorm:"type:varchar(100)"`
	State               string `json:"state" gorm:"type:varchar(100)"`
	City                string `json:"city" gorm:"type:varchar(100)"`
	LocationDescription string `json:"locationDescription" gorm:"type:text"`

	Gym          bool `json:"gym"`
	Spa          bool `json:"spa"`
	Bar          bool `json:"bar"`
	Laundry      bool `json:"laundry"`
	Restaurant   bool `json:"restaurant"`
	Shopping     bool `json:"shopping"`
	FreeParking  bool `json:"freeParking"`
	BikeRental   bool `json:"bikeRental"`
	FreeWifi     bool `json:"freeWifi"`
	MovieNights  bool `json:"movieNights"`
	SwimmingPool bool `json:"swimmingPool"`
	Coffeeshop   bool `json:"coffeeshop"`

	Rooms []Room `json:"rooms" gorm:"foreignKey:HotelID"`
}
