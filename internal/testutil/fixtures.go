package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/repository/fixture"
)

// SeedRanking writes a ranking plus n items into the fixture store and
// returns them. Item positions are 1..n.
func SeedRanking(t *testing.T, store *fixture.Store, rankingID string, n int) (*domain.Ranking, []*domain.RankingItem) {
	t.Helper()

	now := time.Now()
	ranking := &domain.Ranking{
		ID:          rankingID,
		Title:       fmt.Sprintf("Ranking %s", rankingID),
		Description: "seeded test ranking",
		Category:    "test",
		Status:      domain.RankingStatusPublished,
		Slug:        fmt.Sprintf("ranking-%s", rankingID),
		CreatedAt:   now,
	}

	items := make([]*domain.RankingItem, n)
	for i := range items {
		items[i] = &domain.RankingItem{
			ID:          fmt.Sprintf("%s-item-%d", rankingID, i+1),
			RankingID:   rankingID,
			Title:       fmt.Sprintf("Item %d", i+1),
			Description: fmt.Sprintf("Description %d", i+1),
			Position:    i + 1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	store.Seed([]*domain.Ranking{ranking}, items)
	return ranking, items
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		IsAdmin     bool   `json:"isAdmin"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterUser creates a user through the API and returns the access token.
func RegisterUser(t *testing.T, ts *TestServer) (string, string) {
	t.Helper()

	displayName := fmt.Sprintf("testuser_%s", uuid.New().String()[:8])
	body, _ := json.Marshal(map[string]string{
		"displayName": displayName,
		"password":    "testpassword123",
	})

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register returned status %d", resp.StatusCode)
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		t.Fatalf("failed to decode auth response: %v", err)
	}
	return displayName, auth.AccessToken
}

// AuthedRequest issues an HTTP request with a bearer token and JSON body.
func AuthedRequest(t *testing.T, method, url, token string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
