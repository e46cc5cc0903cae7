package controller

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRouterRegistersAllRoutes(t *testing.T) {
	c := &Controller{validate: validator.New(), logger: zap.NewNop()}
	router := c.Router()

	registered := make(map[string]bool)
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			registered[path] = true
			return nil
		}
		for _, m := range methods {
			registered[m+" "+path] = true
		}
		return nil
	})
	require.NoError(t, err)

	expected := []string{
		"GET /health",
		"GET /metrics",
		"GET /api/club",
		"POST /api/clubs",
		"GET /api/teams",
		"POST /api/teams",
		"PUT /api/teams/{id}",
		"DELETE /api/teams/{id}",
		"GET /api/teams/{id}/activities",
		"GET /api/players",
		"POST /api/players",
		"PUT /api/players/{id}",
		"POST /api/players/{id}/deactivate",
		"GET /api/players/{id}/payments",
		"POST /api/activities",
		"PUT /api/activities/{id}",
		"DELETE /api/activities/{id}",
		"GET /api/schedule/calendar",
		"GET /api/schedule/calendar.png",
		"GET /api/attendance",
		"POST /api/attendance",
		"DELETE /api/attendance/{id}",
		"POST /api/payments",
		"GET /api/reports/attendance",
		"GET /api/reports/payments",
		"GET /api/reports/analytics",
	}
	for _, route := range expected {
		require.True(t, registered[route], "route not registered: %s", route)
	}
}
