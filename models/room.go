package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	HotelID uint `json:"hotelId" gorm:"column:hotel_id;index"`

	Title       string `json:"title" gorm:"type:varchar(255)"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image" gorm:"type:text"`

	BedCount      int `json:"bedCount" gorm:"column:bed_count"`
	GuestCount    int `json:"guestCount" gorm:"column:guest_count"`
	BathroomCount int `json:"bathroomCount" gorm:"column:bathroom_count"`
	KingBed       int `json:"kingBed" gorm:"column:king_bed"`
	QueenBed      int `json:"queenBed" gorm:"column:queen_bed"`

	// Nightly rates. BreakfastPrice is nullable: rooms without a breakfast
	// offer keep it NULL and the price calculator never adds it.
	RoomPrice      float64  `json:"roomPrice" gorm:"column:room_price"`
	BreakfastPrice *float64 `json:"breakfastPrice,omitempty" gorm:"column:breakfast_price"`

	RoomService  bool `json:"roomService"`
	TV           bool `json:"tv" gorm:"column:tv"`
	Balcony      bool `json:"balcony"`
	FreeWifi     bool `json:"freeWifi"`
	CityView     bool `json:"cityView"`
	OceanView    bool `json:"oceanView"`
	ForestView   bool `json:"forestView"`
	MountainView bool `json:"mountainView"`
	AirCondition bool `json:"airCondition"`
	Soundproofed bool `json:"soundproofed"`

	Hotel Hotel `json:"-" gorm:"foreignKey:HotelID;references:ID"`
}

// RateCard is the slice of a Room the price calculator consumes. It is copied
// out of the row once per computation and never refetched mid-calculation.
type RateCard struct {
	RoomPrice      float64
	BreakfastPrice *float64
}

func (r Room) RateCard() RateCard {
	return RateCard{RoomPrice: r.RoomPrice, BreakfastPrice: r.BreakfastPrice}
}
