package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"djstore/internal/repository"
)

type HealthHandler struct {
	db *repository.Database
}

func NewHealthHandler(db *repository.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthDetail struct {
	Service     string `json:"Service"`
	Status      string `json:"Status"`
	Description string `json:"Description,omitempty"`
}

type healthReport struct {
	Status  string         `json:"Status"`
	Details []healthDetail `json:"Details"`
}

// Live answers as long as the process runs.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Status is the readiness probe: it opens a round trip to the store.
func (h *HealthHandler) Status(c echo.Context) error {
	report := healthReport{Status: "Healthy"}
	code := http.StatusOK

	detail := healthDetail{Service: "sql", Status: "Healthy"}
	if err := h.db.Health(c.Request().Context()); err != nil {
		detail.Status = "Unhealthy"
		detail.Description = err.Error()
		report.Status = "Unhealthy"
		code = http.StatusServiceUnavailable
	}
	report.Details = append(report.Details, detail)

	return c.JSON(code, report)
}
