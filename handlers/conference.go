package handlers

import (
	"fmt"

	"conference-central/errors"
	"conference-central/service"

	"github.com/gofiber/fiber/v2"
)

func CreateConference(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	input := new(service.ConferenceInput)
	if jsonErr := c.BodyParser(input); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable conference parameters: %v", jsonErr))
	}

	conf, err := svc.CreateConference(c.Context(), userId, *input)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, conf)
}

func UpdateConference(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	input := new(service.ConferenceInput)
	if jsonErr := c.BodyParser(input); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable conference parameters: %v", jsonErr))
	}

	conf, err := svc.UpdateConference(c.Context(), userId, c.Params("confKey"), *input)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, conf)
}

func GetConference(c *fiber.Ctx) error {
	conf, err := svc.GetConference(c.Context(), c.Params("confKey"))
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, conf)
}

func QueryConferences(c *fiber.Ctx) error {
	type queryRequest struct {
		Filters []service.FilterSpec `json:"filters"`
	}

	req := new(queryRequest)
	if jsonErr := c.BodyParser(req); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable query parameters: %v", jsonErr))
	}

	confs, err := svc.QueryConferences(c.Context(), req.Filters)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, confs)
}

func GetConferencesCreated(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	confs, err := svc.ConferencesCreated(c.Context(), userId)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, confs)
}

func GetConferencesToAttend(c *fiber.Ctx) error {
	userId, authErr := currentUserId(c)
	if authErr != nil {
		return errors.Raise(c, authErr)
	}

	confs, err := svc.ConferencesToAttend(c.Context(), userId)
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, confs)
}

func FilterPlayground(c *fiber.Ctx) error {
	confs, err := svc.FilterPlayground(c.Context())
	if err != nil {
		return errors.Raise(c, err)
	}
	return sendJson(c, confs)
}
