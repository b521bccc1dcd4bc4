package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"askstack/internal/auth"
	"askstack/internal/errors"
	"askstack/internal/model"
	"askstack/internal/service"
)

// NotificationHandler handles the notification inbox and the manual fan-out
// triggers.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Success 200 {array} model.Notification
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	notifications, err := h.notificationService.List(c.Request().Context(), auth.UserID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, notifications)
}

// UnreadCount godoc
// @Summary Count the caller's unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	count, err := h.notificationService.UnreadCount(c.Request().Context(), auth.UserID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]int64{"unread": count})
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), auth.UserID(c), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "notification marked as read",
	})
}

// MarkAllRead godoc
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.notificationService.MarkAllRead(c.Request().Context(), auth.UserID(c)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "all notifications marked as read",
	})
}

// NotifyAnswer godoc
// @Summary Trigger the answer notification for an existing answer
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body model.NotifyRequest true "Answer reference"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notifications/answer [post]
func (h *NotificationHandler) NotifyAnswer(c echo.Context) error {
	var req model.NotifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.notificationService.AnswerCreated(c.Request().Context(), req.AnswerID, auth.UserID(c)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "notification dispatched",
	})
}

// NotifyMention godoc
// @Summary Trigger mention notifications for an existing answer
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body model.NotifyRequest true "Answer reference"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notifications/mention [post]
func (h *NotificationHandler) NotifyMention(c echo.Context) error {
	var req model.NotifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.notificationService.Mentions(c.Request().Context(), req.AnswerID, auth.UserID(c)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "mention notifications dispatched",
	})
}
