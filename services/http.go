package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	_ "github.com/Talynk/talynk-backend-sub002/docs"
	"github.com/Talynk/talynk-backend-sub002/services/handlers"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	rateLimitSvc  *RateLimitService
	categorySvc   *CategoryService
	searchSvc     *SearchService
	moderationSvc *ModerationService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.categorySvc = svc.Service(CATEGORY_SVC).(*CategoryService)
	svc.searchSvc = svc.Service(SEARCH_SVC).(*SearchService)
	svc.moderationSvc = svc.Service(MODERATION_SVC).(*ModerationService)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	categoryHandler := handlers.NewCategoryHandler(svc.categorySvc)
	adminHandler := handlers.NewAdminHandler(svc.searchSvc, svc.moderationSvc)

	api := app.Group("/api", svc.rateLimitSvc.IPRateLimit())

	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.GetCategories)
	categories.Get("/popular", categoryHandler.GetPopularCategories)
	categories.Get("/:parentId/subcategories", categoryHandler.GetSubcategories)
	categories.Get("/:id", categoryHandler.GetCategory)

	admin := api.Group("/admin",
		svc.authSvc.RequiredAuth(),
		svc.authSvc.RequireRole(shared.RoleAdmin))
	admin.Get("/posts/search",
		svc.rateLimitSvc.UserBasedRateLimit(RateClassSearch),
		adminHandler.SearchPosts)
	admin.Get("/posts", adminHandler.GetPosts)
	admin.Get("/posts/review-queue", adminHandler.GetReviewQueue)
	admin.Put("/posts/:postId/review", adminHandler.ReviewPost)
	admin.Post("/reports", adminHandler.GenerateReport)
	admin.Post("/categories", categoryHandler.UpsertCategory)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app

	log.Printf("HTTP server listening on port %d", svc.port)
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

// handleError maps service errors onto the uniform envelope. Internal
// store errors are never exposed verbatim.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseAppError(c, appErr)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ResponseNotFound(c)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseJSON(c, fiber.StatusServiceUnavailable, "Service temporarily unavailable", nil)
}
