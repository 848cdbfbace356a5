package configs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Config menampung semua setting yang dibaca saat start.
type Config struct {
	Port        string
	Environment string

	DatabaseURL   string
	DBAutoMigrate bool

	JWTSecret       string
	AdminSessionTTL time.Duration
	CookieSecure    bool

	AdminEmail string

	MailDriver   string // smtp | resend | log
	MailFrom     string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	ResendAPIKey string
	ResendURL    string

	StorageDriver       string // cloudinary | oss | local | memory
	StorageFolder       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	OSSEndpoint         string
	OSSAccessKey        string
	OSSSecretKey        string
	OSSBucket           string
	OSSPublicBase       string
	UploadDir           string
	PublicBaseURL       string

	UploadMaxFileBytes  int64
	UploadMaxTotalBytes int64
	ImageCompress       bool

	CorsAllowOrigins string
	// IP/CIDR reverse proxy yang boleh mengisi X-Forwarded-For; kosong = header diabaikan
	TrustedProxies []string
}

var (
	JWTSecret  string
	AdminEmail string
	Current    *Config
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env tidak ditemukan, memakai ENV dari sistem")
		} else {
			log.Println("[INFO] .env berhasil dimuat")
		}
	} else {
		log.Println("[INFO] Running in Railway, memakai ENV dari sistem")
	}
}

// Load membaca ENV ke Config lalu memvalidasi prasyarat start.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        GetEnv("PORT", "3000"),
		Environment: GetEnv("APP_ENV", "development"),

		DatabaseURL:   strings.TrimSpace(GetEnv("DATABASE_URL")),
		DBAutoMigrate: getBool("DB_AUTO_MIGRATE", false),

		JWTSecret:       GetEnv("JWT_SECRET"),
		AdminSessionTTL: getDuration("ADMIN_SESSION_TTL", 12*time.Hour),
		CookieSecure:    getBool("COOKIE_SECURE", true),

		AdminEmail: strings.ToLower(strings.TrimSpace(GetEnv("ADMIN_EMAIL"))),

		MailDriver:   strings.ToLower(GetEnv("MAIL_DRIVER", "log")),
		MailFrom:     GetEnv("MAIL_FROM", "no-reply@vagsocietyserbia.com"),
		SMTPHost:     GetEnv("SMTP_HOST"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     GetEnv("SMTP_USER"),
		SMTPPassword: GetEnv("SMTP_PASSWORD"),
		ResendAPIKey: GetEnv("RESEND_API_KEY"),
		ResendURL:    GetEnv("RESEND_API_URL", "https://api.resend.com/"),

		StorageDriver:       strings.ToLower(GetEnv("STORAGE_DRIVER", "local")),
		StorageFolder:       strings.Trim(GetEnv("STORAGE_FOLDER", "vagsocietyserbia/events"), "/"),
		CloudinaryCloudName: GetEnv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    GetEnv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: GetEnv("CLOUDINARY_API_SECRET"),
		OSSEndpoint:         GetEnv("ALI_OSS_ENDPOINT"),
		OSSAccessKey:        GetEnv("ALI_OSS_ACCESS_KEY"),
		OSSSecretKey:        GetEnv("ALI_OSS_SECRET_KEY"),
		OSSBucket:           GetEnv("ALI_OSS_BUCKET"),
		OSSPublicBase:       GetEnv("ALI_OSS_PUBLIC_BASE"),
		UploadDir:           GetEnv("UPLOAD_DIR", "./public/uploads"),
		PublicBaseURL:       strings.TrimRight(GetEnv("PUBLIC_BASE_URL"), "/"),

		UploadMaxFileBytes:  getInt64("UPLOAD_MAX_FILE_BYTES", 10<<20),
		UploadMaxTotalBytes: getInt64("UPLOAD_MAX_TOTAL_BYTES", 40<<20),
		ImageCompress:       getBool("IMAGE_COMPRESS", true),

		CorsAllowOrigins: GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
		TrustedProxies:   getList("TRUSTED_PROXIES"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = dsnFromParts()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	JWTSecret = cfg.JWTSecret
	AdminEmail = cfg.AdminEmail
	Current = cfg
	return cfg, nil
}

// Validate memastikan prasyarat load-time lengkap.
func (c *Config) Validate() error {
	var problems []string

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET belum diset")
	}
	if c.AdminEmail == "" {
		problems = append(problems, "ADMIN_EMAIL belum diset")
	}
	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL atau DB_HOST/DB_NAME belum diset")
	}

	switch c.MailDriver {
	case "smtp":
		if c.SMTPHost == "" {
			problems = append(problems, "SMTP_HOST wajib untuk MAIL_DRIVER=smtp")
		}
	case "resend":
		if c.ResendAPIKey == "" {
			problems = append(problems, "RESEND_API_KEY wajib untuk MAIL_DRIVER=resend")
		}
	case "log":
	default:
		problems = append(problems, fmt.Sprintf("MAIL_DRIVER tidak dikenal: %q", c.MailDriver))
	}

	switch c.StorageDriver {
	case "cloudinary":
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			problems = append(problems, "CLOUDINARY_CLOUD_NAME/API_KEY/API_SECRET wajib untuk STORAGE_DRIVER=cloudinary")
		}
	case "oss":
		if c.OSSEndpoint == "" || c.OSSAccessKey == "" || c.OSSSecretKey == "" || c.OSSBucket == "" {
			problems = append(problems, "ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET wajib untuk STORAGE_DRIVER=oss")
		}
	case "local", "memory":
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_DRIVER tidak dikenal: %q", c.StorageDriver))
	}

	for _, p := range c.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				problems = append(problems, fmt.Sprintf("TRUSTED_PROXIES berisi entri tidak valid: %q", p))
			}
		}
	}

	if c.UploadMaxFileBytes <= 0 || c.UploadMaxTotalBytes < c.UploadMaxFileBytes {
		problems = append(problems, "UPLOAD_MAX_TOTAL_BYTES harus >= UPLOAD_MAX_FILE_BYTES > 0")
	}

	if len(problems) > 0 {
		return errors.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("[WARN] %s bukan boolean (%q), pakai default %v", key, v, def)
	}
	return def
}

func getInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// getList membaca nilai dipisah koma; entri kosong dibuang.
func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func dsnFromParts() string {
	host := GetEnv("DB_HOST")
	name := GetEnv("DB_NAME")
	if host == "" || name == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=vagsociety",
		GetEnv("DB_USER"),
		GetEnv("DB_PASSWORD"),
		host,
		GetEnv("DB_PORT", "5432"),
		name,
		GetEnv("DB_SSLMODE", "require"),
	)
}

// =======================
// DATABASE CONNECTOR
// =======================
func InitSeederDB() *gorm.DB {
	dsn := strings.TrimSpace(GetEnv("DATABASE_URL"))
	if dsn == "" {
		dsn = dsnFromParts()
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[ERROR] Gagal koneksi ke database (Seeder): %v", err)
	}
	log.Println("[INFO] Database (Seeder) terkoneksi.")
	return db
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return &GormLogger{SlowThreshold: l.SlowThreshold, LogLevel: level}
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
