package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeRequiresEmailAndUID(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	rr := doRequest(t, router, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/auth/me?email=a@b.c", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/api/auth/me?uid=u1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMeEchoesProfile(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	rr := doRequest(t, router, http.MethodGet, "/api/auth/me?email=alice@example.com&uid=u1&name=Alice", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "u1", body["uid"])
}

func TestMeDefaultsNameToLocalPart(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	rr := doRequest(t, router, http.MethodGet, "/api/auth/me?email=alice@example.com&uid=u1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice", decodeBody(t, rr)["name"])
}
