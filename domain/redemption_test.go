package domain

import (
	"Coin-Loyalty-Backend/entities"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResolution(t *testing.T) {
	r, err := ParseResolution("APPROVE", "staff-1")
	require.NoError(t, err)
	assert.Equal(t, Approve{ResolverID: "staff-1"}, r)
	assert.Equal(t, "APPROVED", r.Status())

	r, err = ParseResolution(" reject ", "staff-2")
	require.NoError(t, err)
	assert.Equal(t, Reject{ResolverID: "staff-2"}, r)
	assert.Equal(t, "REJECTED", r.Status())
	assert.Equal(t, "staff-2", r.Resolver())

	_, err = ParseResolution("MAYBE", "staff-1")
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseResolution("APPROVE", "  ")
	assert.ErrorIs(t, err, ErrMissingResolver)
}

func TestResolutionStatusesMatchStoredStatuses(t *testing.T) {
	assert.Equal(t, entities.RedemptionStatusApproved, Approve{}.Status())
	assert.Equal(t, entities.RedemptionStatusRejected, Reject{}.Status())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.EqualValues(t, 3, p.TotalPages)

	p = NewPagination(1, 10, 0)
	assert.EqualValues(t, 0, p.TotalPages)
}
