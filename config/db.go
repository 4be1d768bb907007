package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"pgstay-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
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
	dbName := envOrDefault("DB_NAME", "pgstay_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func mustJSON(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Error marshalling seed data: %v", err)
	}
	return datatypes.JSON(raw)
}

// SeedDatabase ensures a default admin and a couple of starter properties so
// a fresh install has something to browse. All inserts are idempotent.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_SEED_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: envOrDefault("ADMIN_SEED_USERNAME", "admin@pgstay.local"),
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var propertyCount int64
	DB.Model(&models.Property{}).Count(&propertyCount)
	if propertyCount > 0 {
		log.Println("Properties already seeded")
		return
	}

	properties := []models.Property{
		{
			Name:        "Sunrise Residency",
			Slug:        "sunrise-residency",
			Area:        "Sector 15",
			City:        "Chandigarh",
			Address:     "House 201, Sector 15-B, Chandigarh",
			Description: "Fully furnished PG near Panjab University with mess facility.",
			Gender:      "boys",
			Featured:    true,
			Amenities:   mustJSON([]string{"WiFi", "AC", "Mess", "Laundry", "Power Backup"}),
			Images:      mustJSON([]string{}),
			RoomTypes: []models.RoomType{
				{Type: "Single", Price: 12000, Deposit: 6000, Beds: 6, OccupiedSlots: 2, AvailableSlots: 4, Images: mustJSON([]string{})},
				{Type: "Double", Price: 8000, Deposit: 6000, Beds: 12, OccupiedSlots: 5, AvailableSlots: 7, Images: mustJSON([]string{})},
				{Type: "Triple", Price: 6500, Deposit: 5000, Beds: 12, OccupiedSlots: 6, AvailableSlots: 6, Images: mustJSON([]string{})},
			},
		},
		{
			Name:        "Green Valley Girls PG",
			Slug:        "green-valley-girls-pg",
			Area:        "Sector 22",
			City:        "Chandigarh",
			Address:     "SCO 45, Sector 22-C, Chandigarh",
			Description: "Secure girls PG with CCTV, warden and home-style food.",
			Gender:      "girls",
			Amenities:   mustJSON([]string{"WiFi", "CCTV", "Mess", "RO Water"}),
			Images:      mustJSON([]string{}),
			RoomTypes: []models.RoomType{
				{Type: "Double", Price: 9000, Deposit: 6000, Beds: 10, OccupiedSlots: 4, AvailableSlots: 6, Images: mustJSON([]string{})},
				{Type: "Quad", Price: 5500, Deposit: 4000, Beds: 16, OccupiedSlots: 10, AvailableSlots: 6, Images: mustJSON([]string{})},
			},
		},
	}

	if err := DB.Create(&properties).Error; err != nil {
		log.Printf("warning: failed to seed properties: %v", err)
		return
	}
	log.Println("Properties seeded")
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

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.Property{},
		&models.RoomType{},
		&models.Booking{},
		&models.MonthlyPayment{},
		&models.VisitRequest{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
