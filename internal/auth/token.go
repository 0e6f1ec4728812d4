package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
)

var ErrInvalidToken = errors.New("invalid access token")

type Claims struct {
	EntityID string `json:"entity_id,omitempty"`
	Role     string `json:"role"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Parse validates the signature and expiry and maps claims onto the
// request principal.
func (p *Parser) Parse(raw string) (model.Principal, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}

	principal := model.Principal{
		UserID: userID,
		Role:   model.ParticipantRole(claims.Role),
		Name:   claims.Name,
	}
	if claims.EntityID != "" {
		entityID, err := uuid.Parse(claims.EntityID)
		if err != nil {
			return model.Principal{}, fmt.Errorf("%w: entity_id is not a uuid", ErrInvalidToken)
		}
		principal.EntityID = entityID
	}
	return principal, nil
}

// Issue signs an access token for the principal, used by the demo login
// endpoint and by tests.
func (p *Parser) Issue(principal model.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		EntityID: emptyIfNil(principal.EntityID),
		Role:     string(principal.Role),
		Name:     principal.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func emptyIfNil(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
