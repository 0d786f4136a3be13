package handlers

import (
	"fmt"

	"conference-central/errors"

	"github.com/gofiber/fiber/v2"
)

func GetProfile(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	prof, err := svc.GetProfile(c.Context(), userId)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, prof)
}

func SaveProfile(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	type profileRequest struct {
		DisplayName  string `json:"display_name"`
		TeeShirtSize string `json:"tee_shirt_size"`
	}
	req := new(profileRequest)
	if jsonErr := c.BodyParser(req); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable profile parameters: %v", jsonErr))
	}

	prof, err := svc.SaveProfile(c.Context(), userId, req.DisplayName, req.TeeShirtSize)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, prof)
}
