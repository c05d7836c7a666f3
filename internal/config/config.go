package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Mongo struct {
	URI    string
	DbNAME string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Image struct {
	MaxWidth int
	Quality  int
	Format   string
}

type Admin struct {
	Email    string
	Password string
}

type Config struct {
	ServerPort        int
	Mongo             Mongo
	MinIO             MinIO
	Image             Image
	Admin             Admin
	JWTSecretKey      string
	TokenDuration     time.Duration
	MaxUploadSize     int64
	UploadsDir        string
	StorageDriver     string
	CORSOrigin        string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	LogLevel          string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadMongo() Mongo {
	return Mongo{
		URI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DbNAME: getEnv("MONGO_DB", "jalapeno"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadImage() Image {
	return Image{
		MaxWidth: getEnvAsInt("IMAGE_MAX_WIDTH", 1200),
		Quality:  getEnvAsInt("IMAGE_QUALITY", 80),
		Format:   getEnv("IMAGE_FORMAT", "jpeg"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 5000),
		Mongo:      LoadMongo(),
		MinIO:      LoadMinIO(),
		Image:      LoadImage(),
		Admin: Admin{
			Email:    getEnv("ADMIN_EMAIL", "admin@jalapenobusiness.com"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		JWTSecretKey:      getEnv("JWT_SECRET_KEY", ""),
		TokenDuration:     parseDuration(getEnv("TOKEN_DURATION", "24h"), 24*time.Hour),
		MaxUploadSize:     getEnvAsInt64("MAX_UPLOAD_SIZE", 50*1024*1024),
		UploadsDir:        getEnv("UPLOADS_DIR", "uploads"),
		StorageDriver:     getEnv("STORAGE_DRIVER", "disk"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "http://localhost:3000"),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   parseDuration(getEnv("RATE_LIMIT_WINDOW", "10m"), 10*time.Minute),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}
