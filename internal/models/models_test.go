package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateMobile(t *testing.T) {
	assert.NoError(t, ValidateMobile("9876543210"))
	assert.ErrorIs(t, ValidateMobile("987654321"), ErrInvalidMobile)
	assert.ErrorIs(t, ValidateMobile("98765432100"), ErrInvalidMobile)
	assert.ErrorIs(t, ValidateMobile("98765abc10"), ErrInvalidMobile)
	assert.ErrorIs(t, ValidateMobile(""), ErrInvalidMobile)
}

func TestValidatePAN(t *testing.T) {
	assert.NoError(t, ValidatePAN("ABCDE1234F"))
	assert.NoError(t, ValidatePAN("1234567890"))
	assert.ErrorIs(t, ValidatePAN("abcde1234f"), ErrInvalidPAN)
	assert.ErrorIs(t, ValidatePAN("ABCDE1234"), ErrInvalidPAN)
	assert.ErrorIs(t, ValidatePAN("ABCDE1234F!"), ErrInvalidPAN)
}

func TestEmploymentTypeIsValid(t *testing.T) {
	assert.True(t, EmploymentSalaried.IsValid())
	assert.True(t, EmploymentSelfEmployed.IsValid())
	assert.False(t, EmploymentType("freelance").IsValid())
	assert.False(t, EmploymentType("").IsValid())
}

func TestUserProfileVerifiedAndFirstName(t *testing.T) {
	u := UserProfile{}
	assert.False(t, u.Verified())
	assert.Equal(t, "", u.FirstName())

	u = UserProfile{Name: "Rahul Sharma", CibilScore: 680}
	assert.True(t, u.Verified())
	assert.Equal(t, "Rahul", u.FirstName())
}

func TestLoanCanSwitch(t *testing.T) {
	l := Loan{}
	assert.False(t, l.CanSwitch())
	l.SwitchOffer = &SwitchOffer{NewRate: 10.4}
	assert.True(t, l.CanSwitch())
}

func TestNewApplicationID(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, `^LN-\d{4}$`, NewApplicationID())
	}
}

func TestApplicationDate(t *testing.T) {
	assert.Equal(t, "15/06/2024", ApplicationDate(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "01/01/2025", ApplicationDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
