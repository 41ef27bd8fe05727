package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrInvalidAmount, http.StatusBadRequest},
		{fmt.Errorf("module 3: %w", ErrInvalidModule), http.StatusBadRequest},
		{ErrInvalidSubmission, http.StatusBadRequest},
		{ErrCourseNotFound, http.StatusNotFound},
		{fmt.Errorf("challenge 9: %w", ErrChallengeNotFound), http.StatusNotFound},
		{ErrPermissionDenied, http.StatusForbidden},
		{ErrChallengeClosed, http.StatusConflict},
		{ErrAlreadySubmitted, http.StatusConflict},
		{ErrStorageConflict, http.StatusConflict},
		{errors.New("disk on fire"), 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ErrorStatus(tc.err), tc.err.Error())
	}
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleError(c, fmt.Errorf("challenge 4: %w", ErrNotJoined))

	assert.Equal(t, http.StatusConflict, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Contains(t, body.Message, ErrNotJoined.Error())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	HandleError(c, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Message)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"abc", "-1", "0", "", "99999999999"} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseModuleIndex(t *testing.T) {
	index, err := ParseModuleIndex("0")
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	_, err = ParseModuleIndex("-2")
	assert.Error(t, err)
	_, err = ParseModuleIndex("x")
	assert.Error(t, err)
}
