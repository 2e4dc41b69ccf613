package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// Public base URLs used when constructing upload/download/certificate links
	UploadBaseURL      string
	DownloadBaseURL    string
	CertificateBaseURL string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "thinkhub"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		UploadBaseURL:      getEnv("UPLOAD_BASE_URL", "https://uploads.thinkhub.dev"),
		DownloadBaseURL:    getEnv("DOWNLOAD_BASE_URL", "https://downloads.thinkhub.dev"),
		CertificateBaseURL: getEnv("CERTIFICATE_BASE_URL", "https://certificates.thinkhub.dev"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
