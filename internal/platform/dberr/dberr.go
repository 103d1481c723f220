// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates pgx errors into [apperr.AppError] values.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/blenda/internal/platform/apperr"
)

// uniqueViolation is the SQLSTATE Postgres raises for duplicate keys.
const uniqueViolation = "23505"

// Wrap inspects a database error and classifies it.
//
//   - pgx.ErrNoRows becomes NotFound(resource).
//   - A unique violation becomes a Conflict.
//   - Anything else becomes Internal, with action recorded in the cause.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict(resource + " already exists").WithCause(err)
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
