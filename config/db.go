package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-pms/models"

	"github.com/shopspring/decimal"
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
		q.Set("loc", "UTC")
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
	dbName := envOrDefault("DB_NAME", "pms_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, applies migrations in
// parent->child order and seeds baseline channel/room data. Connection
// attempts are retried a few times with backoff before giving up, since
// the database may still be starting.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	var db *gorm.DB
	for attempt := 1; attempt <= 3; attempt++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
		if err == nil {
			break
		}
		log.Printf("database connect attempt %d failed: %v", attempt, err)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// Migrate applies the schema in parent->child order: rooms and channels
// first, then rates and reservations, then charges and payments.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Room{},
		&models.Channel{},
		&models.Guest{},
		&models.Rate{},
		&models.Reservation{},
		&models.FolioCharge{},
		&models.Payment{},
	)
}

// SeedDatabase ensures the baseline channels and a starter room block
// exist. Idempotent: existing rows are left alone.
func SeedDatabase(db *gorm.DB) {
	var channelCount int64
	db.Model(&models.Channel{}).Count(&channelCount)
	if channelCount == 0 {
		bookingCom := decimal.NewFromInt(15)
		expedia := decimal.NewFromInt(18)
		channels := []models.Channel{
			{ChannelName: "Direct Booking", ChannelCode: "DIRECT", IsActive: true,
				Description: "Walk-in, phone and website bookings"},
			{ChannelName: "Booking.com", ChannelCode: "BCM", CommissionRate: &bookingCom, IsActive: true,
				Description: "Booking.com - Leading OTA"},
			{ChannelName: "Expedia", ChannelCode: "EXP", CommissionRate: &expedia, IsActive: true,
				Description: "Expedia Group"},
		}
		if err := db.Create(&channels).Error; err != nil {
			log.Printf("warning: failed to seed channels: %v", err)
		} else {
			log.Println("Channels seeded")
		}
	}

	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", RoomType: models.RoomTypeSingle, Capacity: 1, BaseRate: decimal.NewFromInt(80), Status: models.RoomStatusAvailable, IsActive: true},
			{RoomNumber: "102", RoomType: models.RoomTypeDouble, Capacity: 2, BaseRate: decimal.NewFromInt(120), Status: models.RoomStatusAvailable, IsActive: true},
			{RoomNumber: "103", RoomType: models.RoomTypeTwin, Capacity: 2, BaseRate: decimal.NewFromInt(110), Status: models.RoomStatusAvailable, IsActive: true},
			{RoomNumber: "201", RoomType: models.RoomTypeSuite, Capacity: 4, BaseRate: decimal.NewFromInt(250), Status: models.RoomStatusAvailable, IsActive: true},
			{RoomNumber: "202", RoomType: models.RoomTypeDeluxe, Capacity: 3, BaseRate: decimal.NewFromInt(180), Status: models.RoomStatusAvailable, IsActive: true},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}
}
