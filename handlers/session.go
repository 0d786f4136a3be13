package handlers

import (
	"fmt"

	"conference-central/errors"
	"conference-central/service"

	"github.com/gofiber/fiber/v2"
)

func CreateSession(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	input := new(service.SessionInput)
	if jsonErr := c.BodyParser(input); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable session parameters: %v", jsonErr))
	}

	sess, err := svc.CreateSession(c.Context(), userId, c.Params("confKey"), *input)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, sess)
}

func GetConferenceSessions(c *fiber.Ctx) error {
	sessions, err := svc.ConferenceSessions(c.Context(), c.Params("confKey"))
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, sessions)
}

func GetConferenceSessionsByType(c *fiber.Ctx) error {
	sessions, err := svc.ConferenceSessionsByType(c.Context(), c.Params("confKey"), c.Params("sessionType"))
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, sessions)
}

func GetSessionsBySpeaker(c *fiber.Ctx) error {
	sessions, err := svc.SessionsBySpeaker(c.Context(), c.Params("speaker"))
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, sessions)
}

func GetSessionsByName(c *fiber.Ctx) error {
	sessions, err := svc.SessionsByName(c.Context(), c.Query("name"))
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, sessions)
}

func GetSessionsStartingFrom(c *fiber.Ctx) error {
	sessions, err := svc.SessionsStartingFrom(c.Context(), c.Params("date"))
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, sessions)
}

func GetEarlyNonWorkshopSessions(c *fiber.Ctx) error {
	sessions, err := svc.EarlyNonWorkshopSessions(c.Context())
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, sessions)
}
