package postgres

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/encurtador/shortener/internal/apperrors"
)

// Postgres error codes of the constraints the schema declares.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

var (
	uniqueDetailRe   = regexp.MustCompile(`Key \((.+?)\)=`)
	relationDetailRe = regexp.MustCompile(`Key \((.+?)\)=\((.+?)\) is not present in table "(.+?)"`)
)

// translateError classifies a driver failure into the domain taxonomy.
// Rules are ordered; the first match wins. Nothing below the store layer is
// allowed to see a pgconn error.
func translateError(err error, entity string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			field := "field"
			if m := uniqueDetailRe.FindStringSubmatch(pgErr.Detail); m != nil {
				field = m[1]
			}
			return apperrors.NewDuplicate(entity, field)
		case codeForeignKeyViolation:
			if m := relationDetailRe.FindStringSubmatch(pgErr.Detail); m != nil {
				field, value, table := m[1], m[2], m[3]
				if field == "user_id" && table == "users" {
					return apperrors.NewInvalidRelation(entity, field,
						fmt.Sprintf("the user with ID %s does not exist; create the user before associating it with a URL", value))
				}
				return apperrors.NewInvalidRelation(entity, field,
					fmt.Sprintf("the reference to %s with value %q does not exist in %s", field, value, table))
			}
			detail := pgErr.Detail
			if detail == "" {
				detail = "invalid reference"
			}
			return apperrors.NewInvalidRelation(entity, "", detail)
		default:
			return apperrors.NewStorageUnavailable(
				fmt.Sprintf("failed operation: %s", pgErr.Message), err)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(entity, "requested")
	}

	return apperrors.NewStorageUnavailable(err.Error(), err)
}
