package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/m-mizutani/gt"

	"github.com/travault/crm-service/internal/repository"
)

func TestMapNoRows(t *testing.T) {
	gt.Bool(t, errors.Is(mapNoRows(pgx.ErrNoRows), repository.ErrNotFound)).True()

	// Wrapped no-rows errors map too.
	wrapped := fmt.Errorf("scan ticket: %w", pgx.ErrNoRows)
	gt.Bool(t, errors.Is(mapNoRows(wrapped), repository.ErrNotFound)).True()

	boom := errors.New("boom")
	gt.Bool(t, errors.Is(mapNoRows(boom), repository.ErrNotFound)).False()
	gt.Value(t, mapNoRows(boom)).Equal(boom)
}
