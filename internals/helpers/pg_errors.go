package helper

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// pgSQLErr dicocokkan tanpa import pgx/pgconn langsung biar portable
// (driver postgres GORM memakai pgconn.PgError yang punya SQLState()).
type pgSQLErr interface {
	SQLState() string
	Error() string
}

// SQLSTATE yang dipetakan ke error domain. Constraint di DB adalah backstop
// terakhir untuk race check-then-act (double booking, double enrolment,
// duplikat absensi) — lihat skema unique/exclusion di migrations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
)

// MapPGError menerjemahkan error Postgres ke (status, pesan) untuk caller.
func MapPGError(err error) (int, string) {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case pgExclusionViolation:
			return http.StatusConflict, "Bentrok jadwal: rentang waktu overlap."
		case pgForeignKeyViolation:
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		case pgUniqueViolation:
			return http.StatusConflict, "Data duplikat (unique violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

// IsDuplicateKey: cek pelanggaran unique Postgres (SQLSTATE 23505).
func IsDuplicateKey(err error) bool {
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == pgUniqueViolation
}

// WritePGError membungkus MapPGError ke response envelope.
func WritePGError(c *fiber.Ctx, err error) error {
	code, msg := MapPGError(err)
	return Error(c, code, msg)
}
