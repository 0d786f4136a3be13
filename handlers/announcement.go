package handlers

import (
	"conference-central/errors"

	"github.com/gofiber/fiber/v2"
)

func GetAnnouncement(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success", "message": "announcement", "data": svc.Announcement()})
}

func GetFeaturedSpeaker(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success", "message": "featured speaker", "data": svc.FeaturedSpeaker()})
}

// RebuildAnnouncement recomputes the nearly-sold-out banner on demand; cron
// can hit this route on a schedule.
func RebuildAnnouncement(c *fiber.Ctx) error {
	announcement, err := svc.RebuildNearSoldOutAnnouncement(c.Context())
	if err != nil {
		return errors.Raise(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "announcement rebuilt", "data": announcement})
}
