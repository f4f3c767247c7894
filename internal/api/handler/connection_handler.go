package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// ConnectionHandler serves user search, the connection graph and the admin
// block toggle.
type ConnectionHandler struct {
	connections ports.ConnectionService
}

func NewConnectionHandler(connections ports.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

type searchResponse struct {
	Success bool                 `json:"success"`
	Users   []domain.UserSummary `json:"users"`
}

type connectionResponse struct {
	messageResponse
	Connection *domain.Connection `json:"connection,omitempty"`
}

type notificationItem struct {
	ID        string                  `json:"id"`
	Status    domain.ConnectionStatus `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
	Requester domain.UserSummary      `json:"requester"`
}

type notificationsResponse struct {
	Success       bool               `json:"success"`
	Notifications []notificationItem `json:"notifications"`
}

type connectionCountResponse struct {
	Success          bool  `json:"success"`
	ConnectionsCount int64 `json:"connectionsCount"`
}

type blockStatusRequest struct {
	IsBlocked *bool `json:"isBlocked" validate:"required"`
}

// Search finds users whose username contains the given text.
//
// @Summary      Search users
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Param        username  path      string  true  "Username fragment"
// @Success      200       {object}  searchResponse
// @Router       /api/user/search/{username} [get]
func (h *ConnectionHandler) Search(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	users, err := h.connections.Search(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.UserSummary{}
	}
	return c.JSON(http.StatusOK, searchResponse{Success: true, Users: users})
}

// Request sends a connection request to another user.
//
// @Summary      Send connection request
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Param        userID  path      string  true  "Receiver id"
// @Success      200     {object}  connectionResponse
// @Failure      400     {object}  messageResponse
// @Failure      404     {object}  messageResponse
// @Failure      409     {object}  messageResponse
// @Router       /api/user/connection/{userID} [post]
func (h *ConnectionHandler) Request(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	conn, err := h.connections.Request(c.Request().Context(), userID, c.Param("userID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, connectionResponse{messageResponse: ok("Connection request sent."), Connection: conn})
}

// Accept accepts a pending request addressed to the caller.
//
// @Summary      Accept connection request
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Param        connectionId  path      string  true  "Connection id"
// @Success      200           {object}  messageResponse
// @Failure      403           {object}  messageResponse
// @Failure      404           {object}  messageResponse
// @Router       /api/user/connection/accept/{connectionId} [post]
func (h *ConnectionHandler) Accept(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.connections.Accept(c.Request().Context(), userID, c.Param("connectionId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Connection request accepted."))
}

// Decline deletes a pending request addressed to the caller.
//
// @Summary      Decline connection request
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Param        connectionId  path      string  true  "Connection id"
// @Success      200           {object}  messageResponse
// @Failure      403           {object}  messageResponse
// @Failure      404           {object}  messageResponse
// @Router       /api/user/connection/decline/{connectionId} [post]
func (h *ConnectionHandler) Decline(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.connections.Decline(c.Request().Context(), userID, c.Param("connectionId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Connection request declined."))
}

// Notifications lists pending requests addressed to the caller.
//
// @Summary      Pending connection requests
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  notificationsResponse
// @Router       /api/user/notifications [get]
func (h *ConnectionHandler) Notifications(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	list, err := h.connections.Notifications(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]notificationItem, 0, len(list))
	for _, n := range list {
		items = append(items, notificationItem{
			ID:        n.Connection.ID,
			Status:    n.Connection.Status,
			CreatedAt: n.Connection.CreatedAt,
			Requester: n.Requester,
		})
	}
	return c.JSON(http.StatusOK, notificationsResponse{Success: true, Notifications: items})
}

// Count returns the number of accepted connections of the caller.
//
// @Summary      Connection count
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  connectionCountResponse
// @Router       /api/user/connection/count [get]
func (h *ConnectionHandler) Count(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	n, err := h.connections.Count(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, connectionCountResponse{Success: true, ConnectionsCount: n})
}

// SetBlockStatus blocks or unblocks a user. Admins only.
//
// @Summary      Block or unblock a user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string              true  "Target user id"
// @Param        body  body      blockStatusRequest  true  "Block flag"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/user/{id}/block-status [put]
func (h *ConnectionHandler) SetBlockStatus(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req blockStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.connections.SetBlocked(c.Request().Context(), userID, c.Param("id"), *req.IsBlocked); err != nil {
		return err
	}
	msg := "User unblocked successfully."
	if *req.IsBlocked {
		msg = "User blocked successfully."
	}
	return c.JSON(http.StatusOK, ok(msg))
}
