package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBSource    string
	AdminAPIKey string

	// Intake geolocation policy. When RequireGeolocation is false a missing
	// coordinate pair falls back to a randomized point near the city centre.
	RequireGeolocation bool
	CityCenterLat      float64
	CityCenterLng      float64

	DefaultPhoneRegion string
	MaxRecording       time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		Port:               getEnv("PORT", "8000"),
		DBSource:           getEnv("DB_SOURCE", "reports.db"),
		AdminAPIKey:        getEnv("ADMIN_API_KEY", "changeme"),
		RequireGeolocation: getEnvBool("REQUIRE_GEOLOCATION", false),
		CityCenterLat:      getEnvFloat("CITY_CENTER_LAT", 9.0765), // Abuja
		CityCenterLng:      getEnvFloat("CITY_CENTER_LNG", 7.3986),
		DefaultPhoneRegion: getEnv("DEFAULT_PHONE_REGION", "NG"),
		MaxRecording:       time.Duration(getEnvInt("MAX_RECORDING_SECONDS", 300)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
