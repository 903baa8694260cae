package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"educme-api/internal/service"
)

// ListPrograms returns all degree programs.
func ListPrograms(svc service.ProgramService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		programs, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(programs)
	}
}

// GetProgram returns a single program by ID.
func GetProgram(svc service.ProgramService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		program, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(program)
	}
}
