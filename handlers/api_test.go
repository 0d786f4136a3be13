package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authToken(t *testing.T, login string) string {
	t.Helper()
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = login
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	claims["role"] = "user"

	signed, err := token.SignedString([]byte("test-signing-secret"))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body []byte) (int, map[string]interface{}) {
	t.Helper()
	req, _ := http.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	parsed := map[string]interface{}{}
	json.Unmarshal(resBody, &parsed)
	return res.StatusCode, parsed
}

func TestConferenceLifecycleOverHTTP(t *testing.T) {
	app, _ := setupApp(t)
	orgaToken := authToken(t, "orga")
	aliceToken := authToken(t, "alice")

	// no token means no conference creation
	code, _ := doRequest(t, app, "POST", "/conference", "", []byte(`{"name":"NoAuth"}`))
	assert.Equal(t, 400, code) // missing JWT

	// organizer creates a conference
	code, conf := doRequest(t, app, "POST", "/conference", orgaToken, []byte(`{
		"name": "GopherCon",
		"city": "Denver",
		"start_date": "2026-07-01",
		"end_date": "2026-07-03",
		"max_attendees": 2
	}`))
	require.Equal(t, 200, code)
	confKey, ok := conf["_id"].(string)
	require.True(t, ok, "conference response must carry its key")

	// readable by an attendee
	code, got := doRequest(t, app, "GET", "/conference/"+confKey, aliceToken, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, "GopherCon", got["name"])

	// register, then conflict on the second attempt
	code, reg := doRequest(t, app, "POST", "/conference/"+confKey+"/registration", aliceToken, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, true, reg["data"])

	code, _ = doRequest(t, app, "POST", "/conference/"+confKey+"/registration", aliceToken, nil)
	assert.Equal(t, 409, code)

	// attendance list reflects the registration
	req, _ := http.NewRequest("GET", "/conference/attending", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	listing, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(listing), "GopherCon")

	// unregister is idempotent
	code, unreg := doRequest(t, app, "DELETE", "/conference/"+confKey+"/registration", aliceToken, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, true, unreg["data"])
	code, unreg = doRequest(t, app, "DELETE", "/conference/"+confKey+"/registration", aliceToken, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, false, unreg["data"])
}

func TestSessionAndWishlistOverHTTP(t *testing.T) {
	app, _ := setupApp(t)
	orgaToken := authToken(t, "orga")
	aliceToken := authToken(t, "alice")

	code, conf := doRequest(t, app, "POST", "/conference", orgaToken, []byte(`{
		"name": "GopherCon",
		"start_date": "2026-07-01",
		"end_date": "2026-07-03",
		"max_attendees": 10
	}`))
	require.Equal(t, 200, code)
	confKey := conf["_id"].(string)

	// only the organizer may add sessions
	sessionBody := []byte(`{
		"name": "Generics Deep Dive",
		"speaker": "Ann",
		"type_of_session": "Talk",
		"date": "2026-07-02",
		"start_time": "10:00:00"
	}`)
	code, _ = doRequest(t, app, "POST", "/conference/"+confKey+"/session", aliceToken, sessionBody)
	assert.Equal(t, 401, code)

	code, sess := doRequest(t, app, "POST", "/conference/"+confKey+"/session", orgaToken, sessionBody)
	require.Equal(t, 200, code)
	sessKey := sess["_id"].(string)

	// a session date outside the conference range is rejected
	code, _ = doRequest(t, app, "POST", "/conference/"+confKey+"/session", orgaToken, []byte(`{
		"name": "Too Late",
		"date": "2026-07-10",
		"start_time": "10:00:00"
	}`))
	assert.Equal(t, 400, code)

	// wishlist add, duplicate rejected
	wishBody := []byte(`{"session_key":"` + sessKey + `"}`)
	code, wished := doRequest(t, app, "POST", "/wishlist", aliceToken, wishBody)
	require.Equal(t, 200, code)
	assert.Equal(t, "Generics Deep Dive", wished["name"])

	code, _ = doRequest(t, app, "POST", "/wishlist", aliceToken, wishBody)
	assert.Equal(t, 400, code)

	// announcements are public
	code, ann := doRequest(t, app, "GET", "/announcement", "", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, "", ann["data"])

	// rebuild picks up the nearly sold out conference after registrations
	for _, user := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		code, _ = doRequest(t, app, "POST", "/conference/"+confKey+"/registration", authToken(t, user), nil)
		require.Equal(t, 200, code)
	}
	code, rebuilt := doRequest(t, app, "POST", "/announcement/rebuild", "", nil)
	require.Equal(t, 200, code)
	assert.Contains(t, rebuilt["data"], "GopherCon")
}
