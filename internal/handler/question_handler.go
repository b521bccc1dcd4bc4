package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"askstack/internal/auth"
	"askstack/internal/errors"
	"askstack/internal/model"
	"askstack/internal/service"
)

// QuestionHandler handles question endpoints.
type QuestionHandler struct {
	questionService service.QuestionService
}

// NewQuestionHandler creates a new question handler.
func NewQuestionHandler(questionService service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// Create godoc
// @Summary Post a new question
// @Tags questions
// @Accept json
// @Produce json
// @Param request body model.CreateQuestionRequest true "Question data"
// @Success 201 {object} model.Question
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) Create(c echo.Context) error {
	var req model.CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	question, err := h.questionService.Create(c.Request().Context(), auth.UserID(c), &req)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, question)
}

// List godoc
// @Summary List all questions, newest first
// @Tags questions
// @Produce json
// @Success 200 {array} model.Question
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) List(c echo.Context) error {
	questions, err := h.questionService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, questions)
}

// Get godoc
// @Summary Get a question with its answers
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} model.QuestionDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.questionService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, detail)
}

// Update godoc
// @Summary Update a question's title, description or tags
// @Tags questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param request body model.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} model.Question
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions/{id} [put]
func (h *QuestionHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req model.UpdateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	question, err := h.questionService.Update(c.Request().Context(), auth.UserID(c), id, &req)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, question)
}
