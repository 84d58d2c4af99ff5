package handler

import (
	"brewhouse/internal/delivery/api/response"
	"brewhouse/internal/domain/entity"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the in-app inbox.
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
}

// NewNotificationHandler is the constructor for NotificationHandler.
func NewNotificationHandler(notificationUC usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUC: notificationUC}
}

type notificationListResponse struct {
	Notifications []*entity.Notification `json:"notifications"`
	Unread        int64                  `json:"unread"`
}

// List returns the notifications, newest first, with the unread count.
func (h *NotificationHandler) List(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	list, err := h.notificationUC.List(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	resp := notificationListResponse{Notifications: list.Notifications, Unread: list.Unread}
	if resp.Notifications == nil {
		resp.Notifications = []*entity.Notification{}
	}

	return response.OK(c, resp)
}

// MarkRead marks one notification read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	notificationID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "notification ID")
	}

	if err := h.notificationUC.MarkRead(c.Request().Context(), sessionID, notificationID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Notification marked as read")
}

// MarkAllRead marks every notification read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.notificationUC.MarkAllRead(c.Request().Context(), sessionID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "All notifications marked as read")
}
