package handlers_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"conference-central/cache"
	"conference-central/service"
)

func TestZZDebugAttending(t *testing.T) {
	app, store := setupApp(t)
	orgaToken := authToken(t, "orga")
	aliceToken := authToken(t, "alice")

	code, conf := doRequest(t, app, "POST", "/conference", orgaToken, []byte(`{
		"name": "GopherCon",
		"city": "Denver",
		"start_date": "2026-07-01",
		"end_date": "2026-07-03",
		"max_attendees": 2
	}`))
	t.Logf("create code=%d conf=%v", code, conf)
	confKey, _ := conf["_id"].(string)

	code, reg := doRequest(t, app, "POST", "/conference/"+confKey+"/registration", aliceToken, nil)
	t.Logf("register code=%d reg=%v", code, reg)

	prof, err := store.GetProfile(context.Background(), "alice")
	t.Logf("profile=%v err=%v", prof, err)

	resolved, err := store.GetConferencesByKeys(context.Background(), []string{confKey})
	t.Logf("resolved=%v err=%v", resolved, err)

	req, _ := http.NewRequest("GET", "/conference/attending", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(res.Body)
	t.Logf("attending code=%d raw=%q", res.StatusCode, string(raw))

	svc2 := service.New(store, cache.NewSlots(), dropQueue{}, service.DefaultConfig())
	views, err := svc2.ConferencesToAttend(context.Background(), "alice")
	t.Logf("direct svc views=%v err=%v", views, err)
}
