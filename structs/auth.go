package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// AuthClaims is the request-scoped identity handed to handlers once the
// access token has been verified. Services never see cookies or tokens,
// only these values.
type AuthClaims struct {
	Sub      int64     `json:"sub"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Iat      time.Time `json:"iat"`
	Exp      time.Time `json:"exp"`
	Jti      uuid.UUID `json:"jti"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=2,max=80"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}
