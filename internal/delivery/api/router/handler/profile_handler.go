package handler

import (
	"io"
	"log/slog"
	"net/http"

	"brewhouse/internal/delivery/api/response"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC  usecase.ProfileUsecase
	IdentityUC usecase.IdentityUsecase
	Avatars    service.AvatarStorage
	Logger     *slog.Logger
}

// ProfileHandler manages the logged-in user's profile, addresses and cards.
type ProfileHandler struct {
	profileUC  usecase.ProfileUsecase
	identityUC usecase.IdentityUsecase
	avatars    service.AvatarStorage
	logger     *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC:  params.ProfileUC,
		identityUC: params.IdentityUC,
		avatars:    params.Avatars,
		logger:     params.Logger,
	}
}

// UpdateProfileRequest changes the fields that are present.
type UpdateProfileRequest struct {
	Name           *string `json:"name" validate:"omitnil,min=1,max=80"`
	PreferredDrink *string `json:"preferred_drink" validate:"omitnil,max=80"`
}

// AddressRequest is a saved address as entered on the profile page.
type AddressRequest struct {
	Label     string `json:"label"`
	FullName  string `json:"full_name"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default"`
}

// CardRequestBody is a card as entered on the profile page.
type CardRequestBody struct {
	Number     string `json:"number" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
	HolderName string `json:"holder_name"`
	IsDefault  bool   `json:"is_default"`
}

// Get returns the current user.
func (h *ProfileHandler) Get(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.identityUC.CurrentUser(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toUserResponse(user))
}

// Update changes the display name or preferred drink.
func (h *ProfileHandler) Update(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), sessionID, usecase.UpdateProfileInput(req))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toUserResponse(user))
}

// UploadAvatar accepts a multipart "avatar" file.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return response.BindingError(c, "Missing avatar file")
	}
	src, err := file.Open()
	if err != nil {
		return errors.Wrap(err, "open avatar upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return errors.Wrap(err, "read avatar upload")
	}

	contentType := file.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data)
	}

	user, err := h.profileUC.UploadAvatar(c.Request().Context(), sessionID, contentType, data)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toUserResponse(user))
}

// ServeAvatar streams a stored avatar image.
func (h *ProfileHandler) ServeAvatar(c echo.Context) error {
	reader, contentType, err := h.avatars.Open(c.Request().Context(), c.Param("*"))
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer reader.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	return c.Stream(http.StatusOK, contentType, reader)
}

// AddAddress saves a delivery address. The first one becomes the default.
func (h *ProfileHandler) AddAddress(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid address input")
	}

	addr, err := h.profileUC.AddAddress(c.Request().Context(), sessionID, usecase.AddressInput(req))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, toAddressResponse(addr))
}

// UpdateAddress replaces a saved address.
func (h *ProfileHandler) UpdateAddress(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	addressID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "address ID")
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid address input")
	}

	addr, err := h.profileUC.UpdateAddress(c.Request().Context(), sessionID, addressID, usecase.AddressInput(req))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toAddressResponse(addr))
}

// RemoveAddress deletes a saved address.
func (h *ProfileHandler) RemoveAddress(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	addressID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "address ID")
	}

	if err := h.profileUC.RemoveAddress(c.Request().Context(), sessionID, addressID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Address removed")
}

// SetDefaultAddress marks one address as the default.
func (h *ProfileHandler) SetDefaultAddress(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	addressID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "address ID")
	}

	if err := h.profileUC.SetDefaultAddress(c.Request().Context(), sessionID, addressID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Default address updated")
}

// AddCard saves a card. Only the last four digits are kept.
func (h *ProfileHandler) AddCard(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CardRequestBody
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid card input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	card, err := h.profileUC.AddCard(c.Request().Context(), sessionID, usecase.CardInput(req))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, toCardResponse(card))
}

// RemoveCard deletes a saved card.
func (h *ProfileHandler) RemoveCard(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	cardID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "card ID")
	}

	if err := h.profileUC.RemoveCard(c.Request().Context(), sessionID, cardID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Card removed")
}

// SetDefaultCard marks one card as the default.
func (h *ProfileHandler) SetDefaultCard(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	cardID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "card ID")
	}

	if err := h.profileUC.SetDefaultCard(c.Request().Context(), sessionID, cardID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Default card updated")
}
