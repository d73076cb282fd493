package server

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/installd/switchboard/pkg/events"
	"github.com/installd/switchboard/pkg/logging"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server, *events.Hub) {
	t.Helper()
	hub := events.NewHub(&logging.Nop)
	t.Cleanup(hub.Close)

	s := New(hub, DefaultConfig(), &logging.Nop)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts, hub
}

func TestStatus(t *testing.T) {
	_, ts, hub := newTestServer(t)

	sub := hub.Subscribe()
	defer sub.Close()

	resp, err := http.Get(ts.URL + "/v1/status")
	if err != nil {
		t.Fatalf("GET /v1/status: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["subscribers"] != float64(1) {
		t.Errorf("subscribers = %v, want 1", body["subscribers"])
	}
}

func TestPublishEndpoints(t *testing.T) {
	_, ts, hub := newTestServer(t)

	sub := hub.Subscribe()
	defer sub.Close()

	posts := []struct {
		path string
		body string
		want string
	}{
		{"/v1/locale", `{"locale":"de-DE"}`, events.TypeLocaleChanged},
		{"/v1/product", `{"id":"leap"}`, events.TypeProductChanged},
		{"/v1/progress", `{"current_step":1,"max_steps":3,"current_title":"Probing"}`, events.TypeProgress},
		{"/v1/patterns", `{"base":"selected"}`, events.TypePatternsChanged},
	}

	for _, p := range posts {
		resp, err := http.Post(ts.URL+p.path, "application/json", strings.NewReader(p.body))
		if err != nil {
			t.Fatalf("POST %s: %v", p.path, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("POST %s status = %d", p.path, resp.StatusCode)
		}
	}

	ctx := t.Context()
	for _, p := range posts {
		e, err := sub.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if e.Type() != p.want {
			t.Errorf("event = %s, want %s", e.Type(), p.want)
		}
	}

	// Locale is normalized before publication.
	hub2sub := hub.Subscribe()
	defer hub2sub.Close()
	resp, err := http.Post(ts.URL+"/v1/locale", "application/json", strings.NewReader(`{"locale":"cs-CZ"}`))
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	e, err := hub2sub.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.(events.LocaleChanged).Locale; got != "cs_CZ" {
		t.Errorf("locale = %q, want cs_CZ", got)
	}
}

func TestPublishValidation(t *testing.T) {
	_, ts, _ := newTestServer(t)

	cases := []struct {
		path string
		body string
		want int
	}{
		{"/v1/locale", `{"locale":"!!"}`, http.StatusUnprocessableEntity},
		{"/v1/locale", `not json`, http.StatusBadRequest},
		{"/v1/product", `{"id":""}`, http.StatusUnprocessableEntity},
		{"/v1/patterns", `{"base":"banana"}`, http.StatusUnprocessableEntity},
	}

	for _, c := range cases {
		resp, err := http.Post(ts.URL+c.path, "application/json", strings.NewReader(c.body))
		if err != nil {
			t.Fatalf("POST %s: %v", c.path, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != c.want {
			t.Errorf("POST %s %s: status = %d, want %d", c.path, c.body, resp.StatusCode, c.want)
		}
	}
}

func TestEventStream(t *testing.T) {
	_, ts, hub := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/events")
	if err != nil {
		t.Fatalf("GET /v1/events: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("Content-Type = %q", got)
	}

	// Wait for the stream's subscription to register before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish(events.LocaleChanged{Locale: "de_DE"})
	hub.Publish(events.ProductChanged{ID: "leap"})

	scanner := bufio.NewScanner(resp.Body)
	var dataLines []string
	for scanner.Scan() && len(dataLines) < 2 {
		line := scanner.Text()
		if strings.HasPrefix(line, "data: ") {
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		}
	}

	if len(dataLines) != 2 {
		t.Fatalf("got %d data frames, want 2", len(dataLines))
	}
	if !strings.Contains(dataLines[0], `"type":"LocaleChanged"`) {
		t.Errorf("first frame = %s", dataLines[0])
	}
	if !strings.Contains(dataLines[1], `"type":"ProductChanged"`) {
		t.Errorf("second frame = %s", dataLines[1])
	}
}
