package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered user. PasswordHash and Salt are never serialized.
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	OriginWorld  *string   `json:"origin_world,omitempty"`
	Alive        bool      `json:"alive"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(email, passwordHash, salt, displayName string, avatarURL, originWorld *string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		DisplayName:  displayName,
		AvatarURL:    avatarURL,
		OriginWorld:  originWorld,
		Alive:        true,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// UserUpdate carries the optional profile fields for an update. Nil fields are unchanged.
type UserUpdate struct {
	DisplayName *string
	AvatarURL   *string
	OriginWorld *string
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed bearer tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email, displayName string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token's signature and expiry and returns the subject user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// Authenticator resolves a bearer token into the caller's identity.
// Verification alone is not enough: the subject must still exist.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*User, error)
}

// RegisterInput is the input for AuthService.Register.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	AvatarURL   *string
	OriginWorld *string
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}

// AuthService defines registration, login, and token resolution.
type AuthService interface {
	Authenticator
	Register(ctx context.Context, input RegisterInput) (token string, user *User, err error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

// UserService defines the business logic for the caller's own profile.
// There is no lookup by arbitrary id at this layer: profile always means self.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, id int64, upd UserUpdate) (*User, error)
	Delete(ctx context.Context, id int64) error
}
