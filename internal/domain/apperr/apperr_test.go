package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
)

func TestParamError_Messages(t *testing.T) {
	require.Equal(t, "email param is missing", apperr.MissingParam("email").Error())
	require.Equal(t, "password param is invalid.", apperr.InvalidParam("password").Error())
}

func TestParamError_KindMatching(t *testing.T) {
	err := fmt.Errorf("validate: %w", apperr.MissingParam("name"))

	require.ErrorIs(t, err, apperr.ErrMissingParam)
	require.NotErrorIs(t, err, apperr.ErrInvalidParam)
	require.True(t, apperr.IsParamError(err))

	var pe *apperr.ParamError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "name", pe.Param)
}

func TestIsParamError_PlainError(t *testing.T) {
	require.False(t, apperr.IsParamError(apperr.ErrUniversityNotFound))
}
