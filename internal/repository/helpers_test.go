package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	apperr "rentx/internal/errors"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, apperr.KindConflict},
		{"exclusion violation", &pq.Error{Code: "23P01"}, apperr.KindConflict},
		{"unique violation", &pq.Error{Code: "23505"}, apperr.KindConflict},
		{"foreign key violation", &pq.Error{Code: "23503"}, apperr.KindNotFound},
		{"no rows", sql.ErrNoRows, apperr.KindNotFound},
		{"wrapped driver error", fmt.Errorf("committing booking: %w", &pq.Error{Code: "40001"}), apperr.KindConflict},
		{"unclassified", errors.New("connection reset"), apperr.KindStorage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateError(tc.err, "dates unavailable")
			assert.Equal(t, tc.want, apperr.KindOf(got))
		})
	}

	assert.NoError(t, translateError(nil, "dates unavailable"))
}

// The losing side of two concurrent identical creates gets the same conflict
// whether the isolation level or the exclusion constraint rejected it, and it
// reads the same as the pre-check rejection.
func TestTranslateError_ConcurrentLoserMessage(t *testing.T) {
	for _, code := range []pq.ErrorCode{"40001", "23P01"} {
		err := translateError(&pq.Error{Code: code}, "dates unavailable")
		assert.EqualError(t, err, "dates unavailable", "code %s", code)
	}
}
