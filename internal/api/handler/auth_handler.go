package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
	"github.com/Mostofa-Abedin/trello/internal/core/ports"
)

const (
	msgInvalidPayload   = "invalid payload"
	msgEmailNotUnique   = "Email address must be unique"
	msgPasswordTooLong  = "Password must be at most 72 bytes"
	msgColumnRequiredFm = "The column %s is required"
)

type AuthHandler struct {
	userService ports.UserService
}

func NewAuthHandler(userService ports.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// registerRequest keeps every field optional: presence is enforced by storage.
type registerRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.UserView
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidPayload})
	}

	view, err := h.userService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if msg, ok := registrationRejection(err); ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
		}
		return err
	}

	return c.JSON(http.StatusCreated, view)
}

// registrationRejection maps expected registration failures to the message
// shown to the client. ok is false for anything the caller should escalate.
func registrationRejection(err error) (msg string, ok bool) {
	var violation *domain.ConstraintViolation
	if errors.As(err, &violation) {
		switch violation.Kind {
		case domain.ViolationNotNull:
			return fmt.Sprintf(msgColumnRequiredFm, violation.Field), true
		case domain.ViolationUnique:
			return msgEmailNotUnique, true
		}
	}
	if errors.Is(err, domain.ErrPasswordTooLong) {
		return msgPasswordTooLong, true
	}
	return "", false
}
