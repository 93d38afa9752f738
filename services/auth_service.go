package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"kubwa_closet_server/database"
	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
	"kubwa_closet_server/structs/tables"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// AdminRole is the only role the system issues; there is a single shop
// and every authenticated user administers it.
const AdminRole = "admin"

type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}
}

// EnsureAdminUser creates the bootstrap admin account from configuration
// if it does not exist yet. Safe to call on every startup.
func (as *AuthService) EnsureAdminUser(ctx context.Context) error {
	username := as.cfg.Admin.Username

	existing, err := database.Query[tables.AdminUser](as.db).Where("username", username).First(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", lib.MapPgError(err))
	}
	if existing != nil {
		as.logger.Debug("Admin user already present", gecho.Field("username", username))
		return nil
	}

	passwordHash, err := as.HashPassword(as.cfg.Admin.Password, DefaultParams)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &tables.AdminUser{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	if _, err := database.Query[tables.AdminUser](as.db).Insert(ctx, admin); err != nil {
		mappedErr := lib.MapPgError(err)
		// A concurrent boot may have won the race; that is fine
		if lib.IsConflict(mappedErr) {
			as.logger.Debug("Admin user created concurrently", gecho.Field("username", username))
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", mappedErr)
	}

	as.logger.Info("Bootstrap admin user created", gecho.Field("username", username))
	return nil
}

func (as *AuthService) Login(ctx context.Context, loginRequest *structs.LoginRequest) (*tables.AdminUser, error) {
	startTime := time.Now()

	user, err := database.Query[tables.AdminUser](as.db).Where("username", loginRequest.Username).First(ctx)
	if err != nil {
		mappedErr := lib.MapPgError(err)

		if !lib.IsNotFound(mappedErr) {
			as.logger.Error("Unexpected database error during login",
				gecho.Field("error", mappedErr),
			)
		}

		// Always return invalid credentials (don't leak user existence)
		return nil, lib.ErrInvalidCredentials
	}

	// First() can return nil, nil for no results
	if user == nil {
		as.logger.Debug("Unknown username during login attempt", gecho.Field("username", loginRequest.Username))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := as.VerifyPassword(loginRequest.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.ID),
		)
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("username", loginRequest.Username),
			gecho.Field("user_id", user.ID),
		)
		return nil, lib.ErrInvalidCredentials
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("Admin logged in successfully",
		gecho.Field("user_id", user.ID),
		gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()),
	)

	// Remove password hash before returning user
	user.PasswordHash = ""

	return user, nil
}

// HashPassword hashes a plain-text password and returns a string and possible error
func (as *AuthService) HashPassword(password string, p *structs.ArgonParams) (string, error) {
	salt, err := generateSalt(p.SaltLen)
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	params := fmt.Sprintf("m=%d,t=%d,p=%d", p.Memory, p.Time, p.Threads)
	encoded := fmt.Sprintf("$argon2id$v=19$%s$%s$%s", params, b64Salt, b64Hash)
	return encoded, nil
}

func generateSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// VerifyPassword verifies a plain-text password against a hashed password
func (as *AuthService) VerifyPassword(password, hashedPassword string) (bool, error) {
	parts, err := lib.DecodeArgon2Hash(hashedPassword)
	if err != nil {
		return false, err
	}

	// Hash the input password with the same parameters
	hash := argon2.IDKey([]byte(password), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)

	return lib.SecureCompare(hash, parts.Hash), nil
}

// GenerateAccessToken generates a JWT access token for the given admin
func (as *AuthService) GenerateAccessToken(user *tables.AdminUser) (string, error) {
	secret := as.cfg.Auth.AccessTokenSecret

	now := time.Now()
	exp := as.GetAccessTokenExpiration()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"role":     AdminRole,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
		"jti":      uuid.NewString(),
	})
	return token.SignedString([]byte(secret))
}

// GetAccessTokenExpiration returns the expiration time for access tokens
func (as *AuthService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}
