package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/ascii-chess-go/internal/config"
	"github.com/lgbarn/ascii-chess-go/internal/errors"
	"github.com/lgbarn/ascii-chess-go/internal/storage"
)

// New builds the HTTP application. store may be nil, in which case the
// archive routes answer 503.
func New(cfg *config.Config, store *storage.Storage) *fiber.App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	srv := cfg.Server
	if srv == nil {
		srv = config.NewServerConfig()
	}

	app := fiber.New(fiber.Config{
		AppName:               "ascii-chess",
		ReadTimeout:           srv.ReadTimeout,
		DisableStartupMessage: cfg.Verbosity < config.Normal,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	if srv.LogRequests && cfg.LogFile != nil {
		app.Use(logger.New(logger.Config{Output: cfg.LogFile}))
	}
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	h := &handlers{manager: NewManager(cfg, srv.MaxGames, store)}

	api := app.Group("/api")
	games := api.Group("/games")
	games.Post("/", h.createGame)
	games.Get("/:id", h.getGame)
	games.Post("/:id/moves", h.playMove)
	games.Post("/:id/archive", h.archiveGame)
	games.Delete("/:id", h.deleteGame)
	games.Get("/:id/ws", requireUpgrade, websocket.New(h.watchGame))

	api.Get("/archive", h.listArchive)
	api.Delete("/archive/:id", h.deleteArchived)

	return app
}

// statusFor maps an error to the HTTP status it is reported with.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, storage.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNoArchive), errors.Is(err, ErrTooManyGames):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, errors.ErrParseFailure), errors.Is(err, errors.ErrInvalidFEN):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrInvalidMove), errors.Is(err, errors.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func errorHandler(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
