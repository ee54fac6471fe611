package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"djstore/internal/api/dto"
	"djstore/internal/api/middleware"
	"djstore/internal/api/services"
)

type RecordHandler struct{}

func NewRecordHandler() *RecordHandler {
	return &RecordHandler{}
}

func (h *RecordHandler) List(c echo.Context) error {
	var query dto.RecordQuery
	if err := c.Bind(&query); err != nil {
		return ErrBadRequest(c, "invalid query")
	}
	query.Normalize()

	filter := services.RecordFilter{Search: query.Search}
	if query.GenreID != "" {
		genreID, err := uuid.Parse(query.GenreID)
		if err != nil {
			return ErrBadRequest(c, "invalid genre_id")
		}
		filter.GenreID = genreID
	}

	svc := services.NewRecordService(middleware.DataContext(c))
	result, err := svc.List(c.Request().Context(), filter, query.Page, query.Size)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RecordListFromDomain(result))
}

func (h *RecordHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	svc := services.NewRecordService(middleware.DataContext(c))
	record, err := svc.Get(c.Request().Context(), id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RecordFromDomain(record))
}

func (h *RecordHandler) Create(c echo.Context) error {
	in, err := h.bindSaveRequest(c)
	if err != nil {
		return err
	}

	svc := services.NewRecordService(middleware.DataContext(c))
	record, err := svc.Create(c.Request().Context(), *in)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.RecordFromDomain(record))
}

func (h *RecordHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	in, err := h.bindSaveRequest(c)
	if err != nil {
		return err
	}

	svc := services.NewRecordService(middleware.DataContext(c))
	record, err := svc.Update(c.Request().Context(), id, *in)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RecordFromDomain(record))
}

func (h *RecordHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	svc := services.NewRecordService(middleware.DataContext(c))
	if err := svc.Delete(c.Request().Context(), id); err != nil {
		return RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RecordHandler) bindSaveRequest(c echo.Context) (*services.SaveRecord, error) {
	var req dto.SaveRecordRequest
	if err := c.Bind(&req); err != nil {
		return nil, ErrBadRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	genreID, err := uuid.Parse(req.GenreID)
	if err != nil {
		return nil, ErrBadRequest(c, "invalid genreId")
	}
	artistID, err := uuid.Parse(req.ArtistID)
	if err != nil {
		return nil, ErrBadRequest(c, "invalid artistId")
	}

	return &services.SaveRecord{
		Title:    req.Title,
		Label:    req.Label,
		Year:     req.Year,
		Price:    req.Price,
		Stock:    req.Stock,
		GenreID:  genreID,
		ArtistID: artistID,
	}, nil
}
