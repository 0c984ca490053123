package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrNotFound, CodeOf(NotFound("product")))
	assert.Equal(t, ErrIndexOutOfRange, CodeOf(IndexOutOfRange(5, 2)))
	assert.Equal(t, ErrZeroBaseRescale, CodeOf(ZeroBaseRescale(0)))

	// Wrapped errors still resolve.
	wrapped := fmt.Errorf("while editing: %w", InvalidWeight("gross_weight", -1))
	assert.Equal(t, ErrInvalidInput, CodeOf(wrapped))

	assert.Equal(t, ErrInternal, CodeOf(errors.New("plain")))
}

func TestErrorStatuses(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("x").HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, IndexOutOfRange(1, 1).HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, InvalidWeight("net_weight", -1).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, ZeroBaseRescale(2).HTTPStatus)
	assert.Equal(t, http.StatusConflict, AlreadyExists("product").HTTPStatus)
}

func TestErrorMessage(t *testing.T) {
	err := IndexOutOfRange(5, 3)
	assert.Equal(t, "INDEX_OUT_OF_RANGE: ingredient index 5 out of range [0,3)", err.Error())
}
