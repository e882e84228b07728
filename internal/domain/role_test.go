package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" organizer ")
	require.NoError(t, err)
	assert.Equal(t, RoleOrganizer, r)
	assert.Equal(t, "ROLE_ORGANIZER", r.Authority())

	_, err = ParseRole("ADMIN")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestAllRolesValid(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("USER").Valid())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("technology")
	require.NoError(t, err)
	assert.Equal(t, CategoryTechnology, c)

	_, err = ParseCategory("cooking")
	assert.Error(t, err)
}

func TestEventHasStarted(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, (&Event{StartTime: now}).HasStarted(now))
	assert.True(t, (&Event{StartTime: now.Add(-time.Hour)}).HasStarted(now))
	assert.False(t, (&Event{StartTime: now.Add(time.Minute)}).HasStarted(now))
}

func TestErrorClasses(t *testing.T) {
	assert.True(t, errors.Is(ErrEventNotFound, ErrNotFound))
	assert.Equal(t, "event not found", ErrEventNotFound.Error())
	assert.Equal(t, "event not found in wishlist", ErrWishlistEntryNotFound.Error())

	v := NewValidationError("cannot review future events")
	assert.True(t, errors.Is(v, ErrValidation))
	assert.Equal(t, "cannot review future events", v.Error())

	c := NewConflictError("username %q already exists", "ana")
	assert.True(t, errors.Is(c, ErrConflict))
}
