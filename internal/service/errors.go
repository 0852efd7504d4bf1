package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/spec-kit/portfolio-backend/pkg/util/errorutil"
)

// notFound turns a missing row into a NOT_FOUND error naming the resource.
func notFound(err error, resource, key string, value any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{key: value})
	}
	return err
}
