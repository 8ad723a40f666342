// Package pgerr classifies PostgreSQL errors returned through gorm.
package pgerr

import (
	"errors"
	"fmt"

	"ordersync/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a duplicate key error, either
// translated by gorm or raw from the driver.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Translate maps a duplicate key error to ports.ErrUniqueViolation and returns
// any other error unchanged.
func Translate(err error) error {
	if err == nil || !IsUniqueViolation(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ports.ErrUniqueViolation, err)
}
