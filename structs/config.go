package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Admin     *AdminConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Upload    *UploadConfig
	Email     *EmailConfig
}

type ServerConfig struct {
	AppName        string        // Kubwa Closet
	Environment    string        // development, production
	Port           string        // :8080
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSL          bool
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
}

// AdminConfig holds the bootstrap credentials for the single shop
// administrator, materialized at startup if the username is absent.
type AdminConfig struct {
	Username string
	Password string
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GalleryTTL   time.Duration // public gallery cache lifetime
}

type RateLimitConfig struct {
	Enabled       bool
	AuthLimit     int
	AuthWindow    time.Duration
	AdminLimit    int
	AdminWindow   time.Duration
	GeneralLimit  int
	GeneralWindow time.Duration
}

type UploadConfig struct {
	Dir          string // root of uploads/original and uploads/web
	MaxBytes     int64
	WebMaxWidth  int
	WebMaxHeight int
	JpegQuality  int
}

type EmailConfig struct {
	ApiKey            string
	From              string
	OwnerAddress      string // where low-stock alerts go
	LowStockThreshold int    // alert when quantity drops to or below this
}
