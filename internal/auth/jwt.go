package auth

import (
	"errors"
	"time"

	"alternus-gallery-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenExpirationTime = time.Minute * 15

// AdminClaim is the payload of a gallery staff access token.
type AdminClaim struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateJWT mints an access token for a staff login. Returns the signed
// token and its expiry as a unix timestamp.
func GenerateJWT(id, email, name string) (string, int64, error) {
	expirationTime := time.Now().Local().Add(AccessTokenExpirationTime)
	jwtKey := util.LoadEnvFor("SECRET")

	claims := AdminClaim{
		Id:    id,
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtKey))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expirationTime.Unix(), nil
}

// ValidateToken checks the signature and expiry of a staff access token.
func ValidateToken(signedToken string) (AdminClaim, error) {
	jwtKey := util.LoadEnvFor("SECRET")
	token, err := jwt.ParseWithClaims(
		signedToken,
		&AdminClaim{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtKey), nil
		},
	)
	if err != nil {
		return AdminClaim{}, err
	}

	claim, ok := token.Claims.(*AdminClaim)
	if !ok {
		return AdminClaim{}, errors.New("couldn't parse claims")
	}
	exp, _ := claim.GetExpirationTime()
	if exp == nil || exp.Local().Unix() < time.Now().Local().Unix() {
		return AdminClaim{}, errors.New("token expired")
	}

	return *claim, nil
}

// ExtractToken pulls the raw authorization token from the request header.
func ExtractToken(c *gin.Context) string {
	return c.GetHeader("Authorization")
}
