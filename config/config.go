package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES          string
	APP_PORT             string
	APP_ENV              string
	LOG_LEVEL            string
	JWTSecret            string
	JWTExpiration        int
	JWTRefreshExpiration int
	DBDriver             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBConnectRetries     int
	CookieSecure         bool
	CookieHTTPOnly       bool
	CookieSameSite       string
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPPassword         string
	SMTPSender           string
	SeedPassword         string
	allowedOrigins       map[string]bool
)

func init() {
	setDefaults()
}

// LoadConfig membaca file .env dan menginisialisasi variabel konfigurasi
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	setDefaults()
}

func setDefaults() {
	// Server Configuration
	MAIN_ROUTES = getEnv("MAIN_ROUTES", "/api/v1")
	APP_PORT = getEnv("APP_PORT", "9000")
	APP_ENV = getEnv("APP_ENV", "development")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")

	// JWT Configuration
	JWTSecret = getEnv("JWT_SECRET", "perikanan_tangkap_secret")
	JWTExpiration = getEnvAsInt("JWT_EXPIRATION", 86400)
	JWTRefreshExpiration = getEnvAsInt("JWT_REFRESH_EXPIRATION", 7*86400)

	// Database Configuration
	DBDriver = getEnv("DB_DRIVER", "postgres")
	DBHost = getEnv("DB_HOST", "localhost")
	DBPort = getEnv("DB_PORT", "5432")
	DBUser = getEnv("DB_USER", "postgres")
	DBPassword = getEnv("DB_PASSWORD", "password")
	DBName = getEnv("DB_NAME", "perikanan_tangkap")
	DBConnectRetries = getEnvAsInt("DB_CONNECT_RETRIES", 5)

	// Cookie Configuration
	CookieSecure = getEnvAsBool("COOKIE_SECURE", true)
	CookieHTTPOnly = getEnvAsBool("COOKIE_HTTPONLY", true)
	CookieSameSite = getEnv("COOKIE_SAMESITE", "None")

	// SMTP, kosongkan SMTP_HOST untuk menonaktifkan notifikasi email
	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnvAsInt("SMTP_PORT", 465)
	SMTPUser = getEnv("SMTP_USER", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	SMTPSender = getEnv("SMTP_SENDER", "noreply@dkp.sumselprov.go.id")

	SeedPassword = getEnv("SEED_PASSWORD", "Perikanan123")

	loadAllowedOrigins()
}

// getEnv membaca environment variable dengan nilai default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt membaca environment variable sebagai integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool membaca environment variable sebagai boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// loadAllowedOrigins memuat daftar origin yang diizinkan dari environment variable
func loadAllowedOrigins() {
	allowedOrigins = make(map[string]bool)
	originsStr := getEnv("ALLOWED_ORIGINS", "")

	if originsStr == "" {
		allowedOrigins = map[string]bool{
			"http://127.0.0.1:3000": true,
			"http://localhost:3000": true,
		}
		return
	}

	for _, origin := range strings.Split(originsStr, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
}

func AccessTokenTTL() time.Duration {
	return time.Duration(JWTExpiration) * time.Second
}

func RefreshTokenTTL() time.Duration {
	return time.Duration(JWTRefreshExpiration) * time.Second
}

func SetupCORS(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
			c.Set("Access-Control-Expose-Headers", "Content-Disposition")
		}

		// Handle preflight request
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}

func GetTokenCookie(token string) *fiber.Cookie {
	expires := time.Now().Add(RefreshTokenTTL())
	if token == "" {
		expires = time.Now().Add(-time.Hour)
	}
	return &fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  expires,
		HTTPOnly: CookieHTTPOnly,
		SameSite: CookieSameSite,
		Path:     "/",
		Secure:   CookieSecure,
	}
}
