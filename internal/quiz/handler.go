package quiz

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	bank *Bank
	size int
}

func NewHandler(bank *Bank) *Handler {
	return &Handler{bank: bank, size: DefaultSampleSize}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Register mounts the quiz routes under /api/questions.
func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/api/questions")
	g.GET("", h.Categories)
	g.GET("/:category", h.Questions)
}

// Questions handles GET /api/questions/:category.
//
// @Summary      Random quiz round
// @Tags         quiz
// @Produce      json
// @Param        category  path      string  true  "Category (case-insensitive)"
// @Success      200       {array}   Question
// @Failure      404       {object}  errorResponse
// @Router       /questions/{category} [get]
func (h *Handler) Questions(c echo.Context) error {
	qs, err := h.bank.Sample(c.Param("category"), h.size)
	if errors.Is(err, ErrCategoryNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Category not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, qs)
}

// Categories handles GET /api/questions.
func (h *Handler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"categories": h.bank.Categories()})
}
