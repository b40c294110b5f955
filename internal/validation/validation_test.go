package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Sup3rsecret"))

	assert.Error(t, ValidatePassword("Sh0rt"), "too short")
	assert.Error(t, ValidatePassword("alllowercase1"), "no uppercase")
	assert.Error(t, ValidatePassword("ALLUPPERCASE1"), "no lowercase")
	assert.Error(t, ValidatePassword("NoDigitsHere"), "no digit")
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Jo"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(" J "), "trimmed length below minimum")
}

func TestValidateJobTitle(t *testing.T) {
	assert.NoError(t, ValidateJobTitle("Software Engineer"))
	assert.Error(t, ValidateJobTitle(""))
	assert.Error(t, ValidateJobTitle("ab"), "below minimum length")
	assert.Error(t, ValidateJobTitle("  a  "), "whitespace does not count")
}
