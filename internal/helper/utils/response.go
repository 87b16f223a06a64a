package utils

import "github.com/gofiber/fiber/v2"

// Every response uses the same envelope: {success, message, data?}.

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, msg string, data interface{}) error {
	body := fiber.Map{
		"success": true,
		"message": msg,
	}
	if data != nil {
		body["data"] = data
	}
	return ctx.Status(status).JSON(body)
}
