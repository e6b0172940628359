package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveRequestDates(t *testing.T) {
	t.Run("returns the parsed dates", func(t *testing.T) {
		req := CreateLeaveRequest{StartDate: "2026-03-02", ResumptionDate: "2026-03-06"}

		start, resumption, err := req.Dates()
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), resumption)
	})

	t.Run("rejects a malformed start date", func(t *testing.T) {
		req := CreateLeaveRequest{StartDate: "02/03/2026", ResumptionDate: "2026-03-06"}

		_, _, err := req.Dates()
		assert.Error(t, err)
	})

	t.Run("rejects a malformed resumption date", func(t *testing.T) {
		req := CreateLeaveRequest{StartDate: "2026-03-02", ResumptionDate: "next week"}

		_, _, err := req.Dates()
		assert.Error(t, err)
	})
}
