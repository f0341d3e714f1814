package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"rook-game/internal/database"
)

// ResultStore is the read side of the statistics store.
type ResultStore interface {
	GetAll() ([]database.MatchResult, error)
	GetByPlayer(name string) ([]database.MatchResult, error)
	GetStats(name string) (database.PlayerStats, error)
}

// NewRouter builds the HTTP surface: the websocket endpoint plus the read-only results API.
func NewRouter(hub *Hub, store ResultStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			hub.log.Debugf("%s %s -> %d", c.Request().Method, v.URI, v.Status)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/ws", func(c echo.Context) error {
		ServeWs(hub, c.Response(), c.Request())
		return nil
	})

	api := e.Group("/api")
	api.GET("/results", GetResultsHandler(store))
	api.GET("/results/player/:name", GetResultsByPlayerHandler(store))
	api.GET("/stats/:name", GetStatsHandler(store))

	for _, r := range e.Routes() {
		hub.log.Infof("Registered route: %s %s", r.Method, r.Path)
	}
	return e
}

func GetResultsHandler(store ResultStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		results, err := store.GetAll()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch results")
		}
		if results == nil {
			results = []database.MatchResult{}
		}
		return c.JSON(http.StatusOK, results)
	}
}

func GetResultsByPlayerHandler(store ResultStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		player := c.Param("name")
		if player == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Player name is required")
		}
		results, err := store.GetByPlayer(player)
		if errors.Is(err, database.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No results found for player")
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch results")
		}
		return c.JSON(http.StatusOK, results)
	}
}

func GetStatsHandler(store ResultStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := store.GetStats(c.Param("name"))
		if errors.Is(err, database.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No statistics for player")
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch statistics")
		}
		return c.JSON(http.StatusOK, stats)
	}
}
