package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_booking_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase drops in a demo hotel with two rooms when the table is empty,
// so a fresh environment has something bookable.
func SeedDatabase() {
	var hotelCount int64
	DB.Model(&models.Hotel{}).Count(&hotelCount)
	if hotelCount > 0 {
		log.Println("Hotels already seeded")
		return
	}

	hotel := models.Hotel{
		UserID:              "seed-owner",
		Title:               "Seaside Grand",
		Description:         "Demo property created by the seeder",
		Country:             "PT",
		City:                "Lisbon",
		LocationDescription: "Five minutes from the waterfront",
		FreeWifi:            true,
		SwimmingPool:        true,
		Restaurant:          true,
	}
	if err := DB.Create(&hotel).Error; err != nil {
		log.Printf("warning: failed to seed hotel: %v", err)
		return
	}

	rooms := []models.Room{
		{
			HotelID:        hotel.ID,
			Title:          "Standard Double",
			Description:    "Cozy double room",
			BedCount:       1,
			GuestCount:     2,
			BathroomCount:  1,
			RoomPrice:      100,
			BreakfastPrice: utils.PtrFloat(20),
			FreeWifi:       true,
		},
		{
			HotelID:       hotel.ID,
			Title:         "Ocean Suite",
			Description:   "Suite with an ocean view",
			BedCount:      2,
			GuestCount:    4,
			BathroomCount: 2,
			KingBed:       1,
			RoomPrice:     250,
			OceanView:     true,
			FreeWifi:      true,
		},
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}
	log.Println("Demo hotel and rooms seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
