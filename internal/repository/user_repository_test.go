package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func TestTranslateUserCreateErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_unique"}

	err := translateUserCreateError(fmt.Errorf("insert: %w", pgErr), "a@x.com")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "DUPLICATE_EMAIL", domainErr.Code)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestTranslateUserCreateErrorPassesThroughOthers(t *testing.T) {
	assert.NoError(t, translateUserCreateError(nil, "a@x.com"))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateUserCreateError(plain, "a@x.com"))

	otherPg := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, otherPg, translateUserCreateError(otherPg, "a@x.com").(*pgconn.PgError))
}
