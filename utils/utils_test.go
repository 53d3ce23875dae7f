package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"jane@college.edu", "a.b+c@dept.college.ac.in"}
	invalid := []string{"", "jane", "jane@college", "jane@@college.edu", "jane doe@college.edu", "@college.edu", "jane@.edu."}

	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "9876543210", DigitsOnly("987-654-3210"))
	assert.Equal(t, "919876543210", DigitsOnly("+91 (98765) 43210"))
	assert.Equal(t, "", DigitsOnly("phone"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@college.edu", NormalizeEmail("  Jane@College.EDU "))
}

func TestFileSafeName(t *testing.T) {
	assert.Equal(t, "Inter_College_Cricket_Cup", FileSafeName("Inter College \t Cricket  Cup"))
	assert.Equal(t, "Chess", FileSafeName(" Chess "))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("bvric-sports", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("bvric-sports", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
