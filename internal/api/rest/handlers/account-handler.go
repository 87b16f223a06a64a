package handlers

import (
	"errors"
	"log"

	"github.com/Sorawitt/account-svc/internal/api/rest/middleware"
	"github.com/Sorawitt/account-svc/internal/domain"
	"github.com/Sorawitt/account-svc/internal/dto"
	"github.com/Sorawitt/account-svc/internal/helper"
	"github.com/Sorawitt/account-svc/internal/helper/utils"
	"github.com/Sorawitt/account-svc/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	svc  services.AccountService
	auth helper.Auth
}

func NewAccountHandler(svc services.AccountService, auth helper.Auth) *AccountHandler {
	return &AccountHandler{svc: svc, auth: auth}
}

func (h *AccountHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	accounts := api.Group("/accounts")

	// public
	accounts.Post("/", h.Register)
	accounts.Post("/verify", h.Verify)
	accounts.Post("/login", h.Login)

	// authenticated
	authed := middleware.AuthMiddleware(h.auth)
	accounts.Get("/", authed, h.List)
	accounts.Patch("/", authed, h.Update)
	accounts.Delete("/", authed, h.Delete)
}

func (h *AccountHandler) List(ctx *fiber.Ctx) error {
	accounts, err := h.svc.List()
	if err != nil {
		log.Printf("list accounts error: %v", err)
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Something went wrong")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Accounts retrieved successfully", accounts)
}

func (h *AccountHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	msg, err := h.svc.Register(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, registerStatus(err), publicMessage(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, msg, nil)
}

func (h *AccountHandler) Verify(ctx *fiber.Ctx) error {
	var requestBody dto.VerifyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.Verify(requestBody); err != nil {
		return utils.ResponseError(ctx, verifyStatus(err), publicMessage(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Account verified successfully", nil)
}

func (h *AccountHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	acc, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, loginStatus(err), publicMessage(err))
	}

	token, err := h.auth.GenerateToken(acc.ID, acc.Role)
	if err != nil {
		log.Printf("generate token error: %v", err)
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Login successful", dto.LoginResponse{
		Token:   token,
		Account: dto.NewAccountResponse(acc),
	})
}

func (h *AccountHandler) Update(ctx *fiber.Ctx) error {
	var requestBody dto.UpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	msg, err := h.svc.Update(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, updateStatus(err), publicMessage(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, msg, nil)
}

func (h *AccountHandler) Delete(ctx *fiber.Ctx) error {
	var requestBody dto.DeleteRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	msg, err := h.svc.Delete(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, deleteStatus(err), publicMessage(err))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, msg, nil)
}

func registerStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrNotImplemented),
		errors.Is(err, domain.ErrInvalidAccountData):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func verifyStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyVerified):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidOTP):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func loginStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotVerified):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func updateStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrNotImplemented),
		errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrNotVerified):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateEmail):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func deleteStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingID):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// publicMessage keeps store-layer detail out of responses.
func publicMessage(err error) string {
	for _, known := range []error{
		domain.ErrMissingFields,
		domain.ErrInvalidRole,
		domain.ErrNotImplemented,
		domain.ErrAlreadyRegistered,
		domain.ErrInvalidAccountData,
		domain.ErrNotFound,
		domain.ErrNotVerified,
		domain.ErrDuplicateEmail,
		domain.ErrMissingID,
		domain.ErrInvalidCredentials,
		domain.ErrInvalidOTP,
		domain.ErrAlreadyVerified,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	log.Printf("internal error: %v", err)
	return "Something went wrong"
}
