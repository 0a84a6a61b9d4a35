// app/echoServer/jwtx/claims.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// FromToken pulls the subject and role out of the verified token in the
// echo context and stores them under typed context keys.
func FromToken(c echo.Context) error {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid jwt claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return errors.New("sub missing in claims")
	}
	uid, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return errors.New("sub is not a valid id")
	}
	role, _ := claims["role"].(string)

	c.Set(userIDKey, uid)
	c.Set(roleKey, role)
	return nil
}

func UserID(c echo.Context) (primitive.ObjectID, bool) {
	uid, ok := c.Get(userIDKey).(primitive.ObjectID)
	return uid, ok
}

func Role(c echo.Context) string {
	role, _ := c.Get(roleKey).(string)
	return role
}
