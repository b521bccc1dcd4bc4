package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"askstack/internal/auth"
	"askstack/internal/errors"
	"askstack/internal/model"
	"askstack/internal/service"
	"askstack/internal/upload"
)

// maxImageBytes caps how much of an uploaded image is read into memory.
const maxImageBytes = 10 << 20

// AnswerHandler handles answer, vote and acceptance endpoints.
type AnswerHandler struct {
	answerService service.AnswerService
	voteService   service.VoteService
}

// NewAnswerHandler creates a new answer handler.
func NewAnswerHandler(answerService service.AnswerService, voteService service.VoteService) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
		voteService:   voteService,
	}
}

// bindCreateRequest accepts either a JSON body or a multipart form with an
// optional image part. In the multipart case tags arrive as a JSON array in
// the "tags" field.
func bindCreateRequest(c echo.Context) (*model.CreateAnswerRequest, *upload.Image, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		var req model.CreateAnswerRequest
		if err := c.Bind(&req); err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		return &req, nil, nil
	}

	req := &model.CreateAnswerRequest{
		Description: c.FormValue("description"),
	}
	if raw := c.FormValue("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Tags); err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "tags must be a JSON array")
		}
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image part is fine.
		return req, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image")
	}

	return req, &upload.Image{Data: data, Filename: fileHeader.Filename}, nil
}

// Create godoc
// @Summary Post an answer to a question
// @Tags answers
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path int true "Question ID"
// @Param request body model.CreateAnswerRequest true "Answer data"
// @Success 201 {object} model.Answer
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions/{id}/answers [post]
func (h *AnswerHandler) Create(c echo.Context) error {
	questionID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	req, image, err := bindCreateRequest(c)
	if err != nil {
		return err
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	answer, err := h.answerService.Create(c.Request().Context(), auth.UserID(c), questionID, req, image)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, answer)
}

// Vote godoc
// @Summary Vote an answer up or down
// @Tags answers
// @Accept json
// @Produce json
// @Param id path int true "Answer ID"
// @Param request body model.VoteRequest true "Vote direction"
// @Success 200 {object} model.Answer
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /answers/{id}/vote [post]
func (h *AnswerHandler) Vote(c echo.Context) error {
	answerID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req model.VoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	answer, err := h.voteService.Vote(c.Request().Context(), auth.UserID(c), answerID, req.VoteType)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, answer)
}

// Accept godoc
// @Summary Accept an answer as the question's solution
// @Tags answers
// @Produce json
// @Param id path int true "Question ID"
// @Param answerId path int true "Answer ID"
// @Success 200 {object} model.Answer
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /questions/{id}/answers/{answerId}/accept [post]
func (h *AnswerHandler) Accept(c echo.Context) error {
	questionID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	answerID, err := parseID(c, "answerId")
	if err != nil {
		return err
	}

	answer, err := h.voteService.AcceptAnswer(c.Request().Context(), auth.UserID(c), questionID, answerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, answer)
}
