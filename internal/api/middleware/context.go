package middleware

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"djstore/internal/store"
)

const dataContextKey = "dataContext"

// WithDataContext scopes one unit of work to each request. Handlers and the
// services they build share the same instance for the request's lifetime.
func WithDataContext(db *sqlx.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(dataContextKey, store.NewDataContext(db))
			return next(c)
		}
	}
}

func DataContext(c echo.Context) *store.DataContext {
	dc, _ := c.Get(dataContextKey).(*store.DataContext)
	return dc
}
