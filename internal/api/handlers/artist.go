package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"djstore/internal/api/dto"
	"djstore/internal/api/middleware"
	"djstore/internal/api/services"
)

type ArtistHandler struct{}

func NewArtistHandler() *ArtistHandler {
	return &ArtistHandler{}
}

func (h *ArtistHandler) List(c echo.Context) error {
	var page dto.PageQuery
	if err := c.Bind(&page); err != nil {
		return ErrBadRequest(c, "invalid query")
	}
	page.Normalize()

	svc := services.NewArtistService(middleware.DataContext(c))
	result, err := svc.List(c.Request().Context(), page.Page, page.Size)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ArtistListFromDomain(result))
}

func (h *ArtistHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	svc := services.NewArtistService(middleware.DataContext(c))
	artist, err := svc.Get(c.Request().Context(), id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ArtistFromDomain(artist))
}

func (h *ArtistHandler) Create(c echo.Context) error {
	var req dto.SaveArtistRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	svc := services.NewArtistService(middleware.DataContext(c))
	artist, err := svc.Create(c.Request().Context(), req.Name, req.Country)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ArtistFromDomain(artist))
}

func (h *ArtistHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	var req dto.SaveArtistRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	svc := services.NewArtistService(middleware.DataContext(c))
	artist, err := svc.Update(c.Request().Context(), id, req.Name, req.Country)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ArtistFromDomain(artist))
}

func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	svc := services.NewArtistService(middleware.DataContext(c))
	if err := svc.Delete(c.Request().Context(), id); err != nil {
		return RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
