package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"productstore/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestE_NilError(t *testing.T) {
	assert.NoError(t, apperror.E(apperror.InvalidID, "update product", nil))
}

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want apperror.Kind
	}{
		{"untyped", cause, apperror.Backend},
		{"invalid input", apperror.E(apperror.InvalidInput, "create product", cause), apperror.InvalidInput},
		{"invalid id", apperror.E(apperror.InvalidID, "update product", cause), apperror.InvalidID},
		{"wrapped", fmt.Errorf("outer: %w", apperror.E(apperror.InvalidID, "delete product", cause)), apperror.InvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperror.KindOf(tt.err))
		})
	}
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := apperror.E(apperror.Backend, "list products", cause)

	assert.Equal(t, "list products: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "backend", apperror.KindOf(err).String())
}
