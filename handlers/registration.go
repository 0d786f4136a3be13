package handlers

import (
	"conference-central/errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterForConference(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	registered, err := svc.RegisterForConference(c.Context(), userId, c.Params("confKey"))
	if err != nil {
		return errors.Raise(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "registration processed", "data": registered})
}

func UnregisterFromConference(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	unregistered, err := svc.UnregisterFromConference(c.Context(), userId, c.Params("confKey"))
	if err != nil {
		return errors.Raise(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "unregistration processed", "data": unregistered})
}
