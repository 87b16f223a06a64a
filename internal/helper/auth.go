package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/Sorawitt/account-svc/internal/domain"
	"github.com/Sorawitt/account-svc/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Auth struct {
	Secret string
	TTL    time.Duration
}

func SetupAuth(secret string, ttl time.Duration) Auth {
	return Auth{
		Secret: secret,
		TTL:    ttl,
	}
}

func (a Auth) GenerateToken(accountID uuid.UUID, role domain.Role) (string, error) {
	if accountID == uuid.Nil || role == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID.String(),
		"role":       string(role),
		"iat":        now.Unix(),
		"exp":        now.Add(a.TTL).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}

	return tokenStr, nil
}

func (a Auth) VerifyToken(tokenString string) (dto.AuthClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthClaims{}, errors.New("missing token")
	}

	// support both:
	// - "Bearer <token>"
	// - "<token>"
	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.AuthClaims{}, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		return dto.AuthClaims{}, errors.New("token parse error")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.AuthClaims{}, errors.New("invalid token claims")
	}

	expAny, ok := claims["exp"]
	if !ok {
		return dto.AuthClaims{}, errors.New("missing expiry")
	}
	expFloat, ok := expAny.(float64)
	if !ok {
		return dto.AuthClaims{}, errors.New("invalid expiry type")
	}
	if float64(time.Now().Unix()) > expFloat {
		return dto.AuthClaims{}, errors.New("token expired")
	}

	rawID, ok := claims["account_id"].(string)
	if !ok {
		return dto.AuthClaims{}, errors.New("missing account_id claim")
	}
	accountID, err := uuid.Parse(rawID)
	if err != nil {
		return dto.AuthClaims{}, errors.New("invalid account_id claim")
	}

	role, _ := claims["role"].(string)
	iat, _ := claims["iat"].(float64)

	return dto.AuthClaims{
		AccountID: accountID,
		Role:      role,
		Expiry:    expFloat,
		Iat:       iat,
	}, nil
}

func (a Auth) GetCurrentClaims(ctx *fiber.Ctx) (dto.AuthClaims, error) {
	u := ctx.Locals("claims")
	claims, ok := u.(dto.AuthClaims)
	if !ok {
		return dto.AuthClaims{}, errors.New("missing auth claims in context")
	}
	return claims, nil
}

func (a Auth) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(plain),
	); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}
