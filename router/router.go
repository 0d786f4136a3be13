package router

import (
	"conference-central/handlers"
	"conference-central/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/", logger.New())

	//Login
	login := api.Group("/login")
	login.Post("/", handlers.Login)

	//Announcements, readable without a token
	api.Get("/announcement", handlers.GetAnnouncement)
	api.Get("/featured-speaker", handlers.GetFeaturedSpeaker)
	api.Post("/announcement/rebuild", handlers.RebuildAnnouncement)

	authed := api.Group("/", middleware.Authorize())

	//Profile
	profile := authed.Group("/profile")
	profile.Get("/", handlers.GetProfile)
	profile.Post("/", handlers.SaveProfile)

	//Conference
	conference := authed.Group("/conference")
	conference.Post("/", handlers.CreateConference)
	conference.Post("/query", handlers.QueryConferences)
	conference.Get("/created", handlers.GetConferencesCreated)
	conference.Get("/attending", handlers.GetConferencesToAttend)
	conference.Get("/playground", handlers.FilterPlayground)
	conference.Get("/:confKey", handlers.GetConference)
	conference.Put("/:confKey", handlers.UpdateConference)

	//Registration
	conference.Post("/:confKey/registration", handlers.RegisterForConference)
	conference.Delete("/:confKey/registration", handlers.UnregisterFromConference)

	//Sessions
	conference.Post("/:confKey/session", handlers.CreateSession)
	conference.Get("/:confKey/session", handlers.GetConferenceSessions)
	conference.Get("/:confKey/session/type/:sessionType", handlers.GetConferenceSessionsByType)

	session := authed.Group("/session")
	session.Get("/speaker/:speaker", handlers.GetSessionsBySpeaker)
	session.Get("/name", handlers.GetSessionsByName)
	session.Get("/upcoming/:date", handlers.GetSessionsStartingFrom)
	session.Get("/early-non-workshops", handlers.GetEarlyNonWorkshopSessions)

	//Wishlist
	wishlist := authed.Group("/wishlist")
	wishlist.Post("/", handlers.AddSessionToWishlist)
	wishlist.Get("/", handlers.GetWishlist)
}
