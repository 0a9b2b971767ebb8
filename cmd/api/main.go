package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/okovalen/freelance-platform-api/internal/cache"
	"github.com/okovalen/freelance-platform-api/internal/config"
	"github.com/okovalen/freelance-platform-api/internal/db"
	"github.com/okovalen/freelance-platform-api/internal/handlers"
	"github.com/okovalen/freelance-platform-api/internal/middleware"
	"github.com/okovalen/freelance-platform-api/internal/models"
	"github.com/okovalen/freelance-platform-api/internal/queue"
	"github.com/okovalen/freelance-platform-api/internal/services/analytics"
	"github.com/okovalen/freelance-platform-api/internal/services/listing"
	"github.com/okovalen/freelance-platform-api/internal/services/rating"
	"github.com/okovalen/freelance-platform-api/internal/services/schema"
	"github.com/okovalen/freelance-platform-api/internal/services/seeder"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Bid{},
		&models.Review{},
	); err != nil {
		log.Fatal(err)
	}

	rdb := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis not reachable, report caching disabled: %v", err)
		rdb = nil
	}
	reports := cache.New(rdb, cfg.CacheTTL)

	listingSvc := listing.NewService(gdb)
	ratingSvc := rating.NewService(gdb)
	analyticsSvc := analytics.NewService(gdb)
	schemaSvc := schema.NewService(gdb)
	seederSvc := seeder.NewService(gdb)

	pub, err := queue.NewPublisher(cfg.AMQPURL)
	if err != nil {
		log.Printf("rabbitmq not reachable, rating recompute runs inline: %v", err)
		pub = nil
	} else {
		defer pub.Close()
		go queue.StartReviewConsumer(cfg.AMQPURL, ratingSvc)
	}

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	userH := handlers.NewUserHandler(gdb, listingSvc, ratingSvc)
	analyticsH := handlers.NewAnalyticsHandler(analyticsSvc, reports)
	projectH := handlers.NewProjectHandler(gdb, schemaSvc)
	bidH := handlers.NewBidHandler(gdb)
	reviewH := handlers.NewReviewHandler(gdb, ratingSvc, pub)
	adminH := handlers.NewAdminHandler(gdb, schemaSvc, analyticsSvc, seederSvc, reports)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://127.0.0.1:3000, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)

	// protected (JWT from cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", func(c *fiber.Ctx) error {
		uid := c.Locals("userId")

		var user models.User
		if err := gdb.First(&user, "id = ?", uid).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return c.JSON(fiber.Map{"success": true, "data": user})
	})

	// users
	protected.Get("/users", userH.List)
	protected.Post("/users", userH.Create)
	protected.Get("/users/:id", userH.GetOne)
	protected.Put("/users/:id", userH.Update)
	protected.Delete("/users/:id", middleware.RequireRoles("admin"), userH.Delete)
	protected.Post("/users/:id/recompute-rating", userH.RecomputeRating)

	// aggregate reports
	protected.Get("/users/stats/roles", analyticsH.RoleStats)
	protected.Get("/users/stats/cities", analyticsH.TopCities)
	protected.Get("/users/stats/registration-trend", analyticsH.RegistrationTrend)
	protected.Get("/users/stats/rating-distribution", analyticsH.RatingDistribution)

	// subquery reports
	protected.Get("/users/analytics/above-average-producers", analyticsH.AboveAverageProducers)
	protected.Get("/users/analytics/city-best-freelancers", analyticsH.CityBestFreelancers)
	protected.Get("/users/analytics/high-budget-clients", analyticsH.HighBudgetClients)
	protected.Get("/users/analytics/bidders-for-client/:id", analyticsH.FreelancersWhoBidForClient)

	// join reports
	protected.Get("/users/analytics/active-projects", analyticsH.UsersWithActiveProjects)
	protected.Get("/users/analytics/review-ratings", analyticsH.FreelancersWithReviewRatings)
	protected.Get("/users/analytics/client-project-stats", analyticsH.ClientsWithProjectStats)
	protected.Get("/users/analytics/bid-stats", analyticsH.FreelancersWithBidStats)

	// view readers
	protected.Get("/views/active-projects", analyticsH.ActiveProjectsView)
	protected.Get("/views/top-freelancers", analyticsH.TopFreelancersView)
	protected.Get("/views/client-stats", analyticsH.ClientStatsView)

	// projects
	protected.Post("/projects", projectH.Create)
	protected.Get("/projects/:id", projectH.GetOne)
	protected.Patch("/projects/:id/status", projectH.UpdateStatus)
	protected.Get("/projects/:id/statistics", projectH.Statistics)

	// bids
	protected.Post("/bids", bidH.Create)
	protected.Patch("/bids/:id/status", bidH.UpdateStatus)

	// reviews
	protected.Post("/reviews", reviewH.Create)
	protected.Get("/users/:id/reviews", reviewH.ForUser)

	// admin
	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Post("/database/setup", adminH.DatabaseSetup)
	admin.Get("/performance/compare", adminH.PerformanceCompare)
	admin.Post("/seed", adminH.Seed)
	admin.Get("/audit/projects", adminH.ProjectAuditLog)
	admin.Get("/audit/bids", adminH.BidAuditLog)
	admin.Post("/routines/recompute-rating/:id", adminH.RecomputeRatingRoutine)
	admin.Get("/routines/client-avg-budget/:id", adminH.ClientAvgBudget)
	admin.Get("/routines/freelancer-success-rate/:id", adminH.FreelancerSuccessRate)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
