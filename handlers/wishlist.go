package handlers

import (
	"fmt"

	"conference-central/errors"

	"github.com/gofiber/fiber/v2"
)

func AddSessionToWishlist(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	type wishlistRequest struct {
		SessionKey string `json:"session_key"`
	}
	req := new(wishlistRequest)
	if jsonErr := c.BodyParser(req); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable wishlist parameters: %v", jsonErr))
	}

	sess, err := svc.AddSessionToWishlist(c.Context(), userId, req.SessionKey)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, sess)
}

func GetWishlist(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	sessions, err := svc.ListWishlist(c.Context(), userId)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, sessions)
}
