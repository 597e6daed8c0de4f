package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/minsu-han/warehouse-inbound/internal/handler"    // import the handlers that implement business logic
	"github.com/minsu-han/warehouse-inbound/internal/middleware" // import middleware for JWT authentication
)

// Handlers bundles every handler the API exposes so registration stays
// in one place.
type Handlers struct {
	Auth       *handler.AuthHandler
	Schedule   *handler.ScheduleHandler
	Assignment *handler.AssignmentHandler
	Location   *handler.LocationHandler
	Dock       *handler.DockHandler
	Import     *handler.ImportHandler
	Timesheet  *handler.TimesheetHandler
	Outbound   *handler.OutboundHandler
	VAS        *handler.VASHandler
	Settings   *handler.SettingsHandler
}

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check and the token exchange.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/healthz", handler.Health)
	e.POST("/v1/auth/token", h.Auth.Token)
}

// RegisterAPI registers the protected endpoints under /v1.  Every route
// in this group runs the JWTAuth middleware before its handler.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string, extra ...echo.MiddlewareFunc) {
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	for _, m := range extra {
		v1.Use(m)
	}

	// Inbound schedule board.
	v1.GET("/schedules", h.Schedule.List)
	v1.POST("/schedules", h.Schedule.CreateBulk)
	v1.DELETE("/schedules", h.Schedule.DeleteByDate)
	v1.GET("/schedules/export", h.Import.Export)
	v1.GET("/schedules/:id", h.Schedule.Get)
	v1.PUT("/schedules/:id", h.Schedule.Update)
	v1.DELETE("/schedules/:id", h.Schedule.Delete)

	// Reconciler transitions. These are the only routes that touch
	// check-in, dock and location fields.
	v1.POST("/schedules/:id/check-in", h.Assignment.CheckIn)
	v1.DELETE("/schedules/:id/check-in", h.Assignment.CancelCheckIn)
	v1.POST("/schedules/:id/dock", h.Assignment.AssignDock)
	v1.POST("/schedules/:id/location", h.Assignment.ChangeLocation)

	// Storage slot ledger.
	v1.GET("/locations", h.Location.List)
	v1.GET("/locations/available", h.Location.Available)
	v1.POST("/locations/reset", h.Location.Reset)
	v1.POST("/locations/:id/toggle", h.Location.Toggle)
	v1.PUT("/locations/:id", h.Location.SetStatus)

	// Dock door roster.
	v1.GET("/docks", h.Dock.List)
	v1.PUT("/docks/:num", h.Dock.SetStatus)

	// Spreadsheet import.
	v1.POST("/imports/schedules", h.Import.Import)

	// Timesheet correction form.
	v1.GET("/timesheets", h.Timesheet.List)
	v1.POST("/timesheets", h.Timesheet.Create)
	v1.PUT("/timesheets/:id", h.Timesheet.Update)
	v1.DELETE("/timesheets/:id", h.Timesheet.Delete)

	// Outbound pickup schedule.
	v1.GET("/outbound", h.Outbound.List)
	v1.POST("/outbound", h.Outbound.CreateBulk)
	v1.PUT("/outbound/:id", h.Outbound.Update)
	v1.DELETE("/outbound/:id", h.Outbound.Delete)

	// Value-added-service jobs.
	v1.GET("/vas", h.VAS.List)
	v1.POST("/vas", h.VAS.CreateBulk)
	v1.PUT("/vas/:id", h.VAS.Update)
	v1.DELETE("/vas/:id", h.VAS.Delete)

	// Application settings singleton.
	v1.GET("/settings", h.Settings.Get)
	v1.PUT("/settings", h.Settings.Update)
}
