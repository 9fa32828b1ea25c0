package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmit(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env.contactH.Submit, http.MethodPost, "/api/contact",
		map[string]string{"name": "Dana", "email": "dana@example.com", "message": "When is the next event?"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotZero(t, body["id"])
}

func TestContactSubmitValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []map[string]string{
		{"email": "dana@example.com", "message": "hi"},
		{"name": "Dana", "message": "hi"},
		{"name": "Dana", "email": "dana@example.com", "message": "   "},
	} {
		rec := doJSON(t, env.contactH.Submit, http.MethodPost, "/api/contact", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %v", body)
	}
}
