package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/mart/ranking-admin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertContiguousPositions verifies that item positions are exactly 1..N.
func AssertContiguousPositions(t *testing.T, items []*domain.RankingItem) {
	t.Helper()
	require.True(t, domain.ValidPositions(items), "positions must be exactly {1..%d}", len(items))
}

// AssertOrder verifies the item ids in position order.
func AssertOrder(t *testing.T, items []*domain.RankingItem, wantIDs []string) {
	t.Helper()

	sorted := make([]*domain.RankingItem, len(items))
	copy(sorted, items)
	domain.SortItemsByPosition(sorted)

	gotIDs := make([]string, len(sorted))
	for i, item := range sorted {
		gotIDs[i] = item.ID
	}
	assert.Equal(t, wantIDs, gotIDs, "unexpected item order")
}
