package executor

import (
	"strings"
	"testing"

	"github.com/aretw0/webterm/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateCommand(t *testing.T) {
	assert.NoError(t, ValidateCommand(strings.Repeat("é", domain.MaxCommandLength)))

	err := ValidateCommand(strings.Repeat("a", domain.MaxCommandLength+1))
	assert.True(t, domain.IsValidation(err))
	assert.EqualError(t, err, "Command too long (501 characters, maximum 500)")
}

func TestValidateHost(t *testing.T) {
	assert.NoError(t, validateHost("example.com"))
	assert.NoError(t, validateHost("10.0.0.1"))
	assert.Error(t, validateHost("example.com&&id"))
	assert.Error(t, validateHost(strings.Repeat("a", 254)))
}
