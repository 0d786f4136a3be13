package handlers

import (
	"encoding/json"
	"fmt"

	"conference-central/database"
	"conference-central/errors"
	"conference-central/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var svc *service.Service
var store database.Store

// Init wires the handler package before routes are registered.
func Init(s *service.Service, st database.Store) {
	svc = s
	store = st
}

func currentUserId(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("identity").(*jwt.Token)
	if !ok {
		return "", errors.Unauthorized("authorization required")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.Unauthorized("authorization required")
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", errors.Unauthorized("authorization required")
	}
	return username, nil
}

func sendJson(c *fiber.Ctx, payload interface{}) error {
	payloadJson, jsonErr := json.MarshalIndent(payload, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}
	return c.SendString(string(payloadJson))
}
