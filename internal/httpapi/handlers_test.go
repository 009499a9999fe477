package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mwhitten/castle-siege-backend/internal/hub"
	"github.com/mwhitten/castle-siege-backend/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := hub.NewHub(context.Background(), session.Config{}, nil)
	srv := httptest.NewServer(SetupRoutes(h, nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestCreateRoomThenList(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/rooms", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if len(created.Code) != 6 {
		t.Fatalf("expected 6-char room code, got %q", created.Code)
	}

	listResp, err := http.Get(srv.URL + "/rooms")
	if err != nil {
		t.Fatal(err)
	}
	defer listResp.Body.Close()

	var rooms []hub.RoomInfo
	if err := json.NewDecoder(listResp.Body).Decode(&rooms); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, r := range rooms {
		if r.Code == created.Code {
			found = true
			if r.Players != 0 {
				t.Fatalf("fresh room should be empty, got %d players", r.Players)
			}
		}
	}
	if !found {
		t.Fatalf("created room %q missing from list %+v", created.Code, rooms)
	}
}

func TestGenerateCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q length = %d, want 6", code, len(code))
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("codes look constant: %v", seen)
	}
}
