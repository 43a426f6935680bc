package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type UserToken struct {
	UserID int64 `json:"userID"`
	jwt.RegisteredClaims
}

var jwtSecret []byte
var tokenLifetime time.Duration

func Setup(key string, lifetime time.Duration) {
	jwtSecret = []byte(key)
	tokenLifetime = lifetime
}

func CreateToken(userID int64) (string, error) {
	currentTime := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, UserToken{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(tokenLifetime)),
		},
	})

	return token.SignedString(jwtSecret)
}

func VerifyToken(tokenString string) (UserToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserToken{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		return UserToken{}, err
	} else if claims, ok := token.Claims.(*UserToken); ok {
		return *claims, nil
	} else {
		return UserToken{}, errors.New("invalid token")
	}
}
