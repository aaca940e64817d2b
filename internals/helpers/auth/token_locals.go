package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Kunci Locals yang dihydrate oleh middleware AuthJWT.
const (
	LocUserID    = "user_id"    // string | uuid
	LocRole      = "role"       // "admin" | "teacher" | "student"
	LocTeacherID = "teacher_id" // diisi kalau role teacher
)

// GetUserIDFromToken mengambil user_id dari Locals (hasil parse JWT).
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return parseUUIDFromLocals(c, LocUserID,
		fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id tidak ditemukan di token"))
}

// GetTeacherIDFromToken mengambil teacher_id dari Locals. Error kalau token
// bukan milik teacher.
func GetTeacherIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return parseUUIDFromLocals(c, LocTeacherID,
		fiber.NewError(fiber.StatusForbidden, "Token tidak memiliki teacher_id"))
}

// GetRole mengambil role dari Locals; "" kalau tidak ada.
func GetRole(c *fiber.Ctx) string {
	if v := c.Locals(LocRole); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func IsTeacher(c *fiber.Ctx) bool { return GetRole(c) == "teacher" }
func IsAdmin(c *fiber.Ctx) bool   { return GetRole(c) == "admin" }

func parseUUIDFromLocals(c *fiber.Ctx, key string, notFound error) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, notFound
	}
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(t))
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+key+" tidak valid")
		}
		return id, nil
	}
	return uuid.Nil, notFound
}
