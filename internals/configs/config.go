package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at boot. It is built once
// in main and passed down; nothing past bootstrap reads os.Getenv directly so
// tests can construct a Config with fake credentials.
type Config struct {
	Port string

	JWTSecret    string
	CookieSecure bool

	PaystackSecretKey    string
	FlutterwaveSecretKey string

	AppBaseURL string
	MailFrom   string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system ENV")
		}
	}

	cfg := Config{
		Port:                 GetEnv("PORT", "3000"),
		JWTSecret:            GetEnv("JWT_SECRET"),
		CookieSecure:         GetEnvBool("COOKIE_SECURE", false),
		PaystackSecretKey:    GetEnv("PAYSTACK_SECRET_KEY"),
		FlutterwaveSecretKey: GetEnv("FLUTTERWAVE_SECRET_KEY"),
		AppBaseURL:           GetEnv("APP_BASE_URL", "http://localhost:3000"),
		MailFrom:             GetEnv("MAIL_FROM", "no-reply@atapolyskills.edu.ng"),
	}

	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set")
	}
	if cfg.PaystackSecretKey == "" {
		log.Println("[WARN] PAYSTACK_SECRET_KEY is not set, paystack verification will fail")
	}
	if cfg.FlutterwaveSecretKey == "" {
		log.Println("[WARN] FLUTTERWAVE_SECRET_KEY is not set, flutterwave verification will fail")
	}

	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
