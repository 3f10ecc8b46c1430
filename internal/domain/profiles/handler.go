package profiles

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/profiles", h.List)
	api.GET("/feedback", h.ListFeedback)
	api.POST("/feedback", h.AddFeedback)
	api.DELETE("/feedback/:index", h.DeleteFeedback)
}

func (h *Handler) List(c echo.Context) error {
	f := Filter{
		Query:    c.QueryParam("q"),
		Name:     c.QueryParam("name"),
		Mobile:   c.QueryParam("mobile"),
		District: c.QueryParam("district"),
	}
	profiles, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profiles)
}

func (h *Handler) ListFeedback(c echo.Context) error {
	entries, err := h.svc.ListFeedback(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

type feedbackRequest struct {
	User string `json:"user" form:"user"`
	Text string `json:"text" form:"text"`
}

func (h *Handler) AddFeedback(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	added, err := h.svc.AddFeedback(c.Request().Context(), req.User, req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !added {
		return c.NoContent(http.StatusNoContent)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) DeleteFeedback(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return c.NoContent(http.StatusNoContent)
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid index")
	}
	if err := h.svc.DeleteFeedback(c.Request().Context(), index); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
