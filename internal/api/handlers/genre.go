package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"djstore/internal/api/dto"
	"djstore/internal/api/middleware"
	"djstore/internal/api/services"
)

type GenreHandler struct{}

func NewGenreHandler() *GenreHandler {
	return &GenreHandler{}
}

func (h *GenreHandler) List(c echo.Context) error {
	var page dto.PageQuery
	if err := c.Bind(&page); err != nil {
		return ErrBadRequest(c, "invalid query")
	}
	page.Normalize()

	svc := services.NewGenreService(middleware.DataContext(c))
	result, err := svc.List(c.Request().Context(), page.Page, page.Size)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.GenreListFromDomain(result))
}

func (h *GenreHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	svc := services.NewGenreService(middleware.DataContext(c))
	genre, err := svc.Get(c.Request().Context(), id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.GenreFromDomain(genre))
}

func (h *GenreHandler) Create(c echo.Context) error {
	var req dto.SaveGenreRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	svc := services.NewGenreService(middleware.DataContext(c))
	genre, err := svc.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.GenreFromDomain(genre))
}

func (h *GenreHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	var req dto.SaveGenreRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	svc := services.NewGenreService(middleware.DataContext(c))
	genre, err := svc.Update(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.GenreFromDomain(genre))
}

func (h *GenreHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	svc := services.NewGenreService(middleware.DataContext(c))
	if err := svc.Delete(c.Request().Context(), id); err != nil {
		return RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
