package handlers

import (
	"github.com/labstack/echo/v4"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Dequeue one registration (GET, any path).
	FetchRegistration(ctx echo.Context) error
	// Queue one registration (POST, any path).
	RegisterClient(ctx echo.Context) error
}

// RegisterHandlers adds each server route to the router. The request path is not
// significant, so both the root and every other path are routed.
func RegisterHandlers(router *echo.Echo, si ServerInterface) {
	for _, path := range []string{"/", "/*"} {
		router.GET(path, si.FetchRegistration)
		router.POST(path, si.RegisterClient)
	}
}
