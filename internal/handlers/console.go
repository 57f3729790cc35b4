package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/task-report-api/internal/constants"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
	"github.com/yukikurage/task-report-api/internal/middleware"
	"github.com/yukikurage/task-report-api/internal/services"
)

// ConsoleHandler serves the session-authenticated admin console.
type ConsoleHandler struct {
	authService   *services.AuthService
	userService   *services.UserService
	taskService   *services.TaskService
	reportService *services.ReportService
}

// NewConsoleHandler creates a new ConsoleHandler
func NewConsoleHandler(
	authService *services.AuthService,
	userService *services.UserService,
	taskService *services.TaskService,
	reportService *services.ReportService,
) *ConsoleHandler {
	return &ConsoleHandler{
		authService:   authService,
		userService:   userService,
		taskService:   taskService,
		reportService: reportService,
	}
}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string
	Message string
}

var flashLevels = []string{constants.FlashError, constants.FlashWarning, constants.FlashSuccess}

func addFlash(c *gin.Context, level, message string) {
	sessions.Default(c).AddFlash(message, level)
}

func popFlashes(session sessions.Session) []Flash {
	var flashes []Flash
	for _, level := range flashLevels {
		for _, msg := range session.Flashes(level) {
			if s, ok := msg.(string); ok {
				flashes = append(flashes, Flash{Level: level, Message: s})
			}
		}
	}
	return flashes
}

// redirect saves the session so queued flashes survive, then redirects.
func redirect(c *gin.Context, location string) {
	if err := sessions.Default(c).Save(); err != nil {
		log.Error().Err(err).Msg("failed to save session")
	}
	c.Redirect(http.StatusFound, location)
}

// fail reports err as an error flash and goes back to location. The
// operation that produced err has not changed anything.
func fail(c *gin.Context, err error, location string) {
	if apierrors.KindOf(err) == apierrors.KindUnexpected {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("console operation failed")
	}
	addFlash(c, constants.FlashError, apierrors.PublicMessage(err))
	redirect(c, location)
}

func succeed(c *gin.Context, message, location string) {
	addFlash(c, constants.FlashSuccess, message)
	redirect(c, location)
}

// render draws a console page with the caller and pending flashes.
func render(c *gin.Context, name, title string, data gin.H) {
	session := sessions.Default(c)
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Principal"] = middleware.GetPrincipal(c)
	data["Flashes"] = popFlashes(session)
	if err := session.Save(); err != nil {
		log.Error().Err(err).Msg("failed to save session")
	}
	c.HTML(http.StatusOK, name, data)
}

// pageError answers a failed page load.
func pageError(c *gin.Context, err error) {
	if apierrors.KindOf(err) == apierrors.KindUnexpected {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("console page failed")
	}
	c.String(apierrors.StatusCode(apierrors.KindOf(err)), apierrors.PublicMessage(err))
}
