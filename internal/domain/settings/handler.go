package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/settings", h.Get)
	api.PUT("/settings", h.Save)
}

func (h *Handler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Get(c.Request().Context()))
}

type saveResponse struct {
	Saved   bool   `json:"saved"`
	Message string `json:"message"`
}

func (h *Handler) Save(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	_, saved, err := h.svc.Save(c.Request().Context(), in)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !saved {
		return c.JSON(http.StatusOK, saveResponse{Saved: false, Message: "both name and currency are required"})
	}
	return c.JSON(http.StatusOK, saveResponse{Saved: true, Message: "Saved"})
}
