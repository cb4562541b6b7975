package middleware

import (
	"errors"

	"studyaid/internal/domain"
	"studyaid/internal/dto"
	"studyaid/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler converts any error that escapes a handler into the uniform
// FAIL envelope. The transport code stays 200; clients read the status field.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		if validationErrs, ok := err.(domain.ValidationErrors); ok {
			log.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.JSON(dto.NewFailResponse(validationErrs.Error()))
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.String("path", c.Path()),
				zap.Error(domainErr.Cause),
			)
			return c.JSON(dto.NewFailResponse(domainErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.JSON(dto.NewFailResponse(fiberErr.Message))
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.JSON(dto.NewFailResponse("Internal server error"))
	}
}
