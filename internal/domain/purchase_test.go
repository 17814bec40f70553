package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestCanModify(t *testing.T) {
	staff := &User{ID: 1, Username: "staff"}
	hod := &User{ID: 2, Username: "boss", IsHOD: true}

	pending := &PurchaseRequest{Status: StatusPending}
	approved := &PurchaseRequest{Status: StatusApproved}

	assert.True(t, pending.CanModify(staff))
	assert.True(t, pending.CanModify(hod))
	assert.False(t, approved.CanModify(staff))
	assert.True(t, approved.CanModify(hod))

	// nil user behaves like a non-privileged one
	assert.True(t, pending.CanModify(nil))
	assert.False(t, approved.CanModify(nil))
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Abel Tesfaye", (&User{FirstName: "Abel", LastName: "Tesfaye"}).FullName())
	assert.Equal(t, "Abel", (&User{FirstName: "Abel"}).FullName())
	assert.Equal(t, "abel01", (&User{Username: "abel01"}).FullName())
}
