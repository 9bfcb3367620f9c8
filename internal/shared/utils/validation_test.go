package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldserv-inc/fieldserv/internal/shared/errors"
)

type validatedConfig struct {
	Port   int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	Driver string `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Secret string `json:"secret" validate:"required,min=8"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(&validatedConfig{
		Port:   8080,
		Driver: "mysql",
		Secret: "long-enough-secret",
	})
	assert.NoError(t, err)
}

func TestValidateStruct_ReportsTagNames(t *testing.T) {
	err := ValidateStruct(&validatedConfig{
		Port:   0,
		Driver: "postgres",
		Secret: "short",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Contains(t, appErr.Details, "port must be greater than or equal to 1")
	assert.Contains(t, appErr.Details, "driver must be one of [mysql sqlite]")
	assert.Contains(t, appErr.Details, "secret must be at least 8 characters long")
}
