// test/e2e/e2e_test.go

// End-to-end scenarios over the full in-process stack: HTTP server, router,
// matcher, extraction, handlers, and the in-memory data service.
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscope/internal/common/config"
	"fieldscope/internal/common/logger"
	"fieldscope/internal/dataservice"
	"fieldscope/internal/handlers/canvass"
	"fieldscope/internal/handlers/compare"
	"fieldscope/internal/handlers/district"
	"fieldscope/internal/handlers/precinct"
	"fieldscope/internal/models"
	"fieldscope/internal/nlu/extract"
	"fieldscope/internal/nlu/matcher"
	"fieldscope/internal/router"
	"fieldscope/internal/server"
)

func newStack(t *testing.T) *server.Server {
	t.Helper()
	log := logger.NewTestLogger(t)
	data := dataservice.NewMemoryService()

	m, err := matcher.New(matcher.DefaultDefinitions())
	require.NoError(t, err)

	r, err := router.New(m, []router.Handler{
		canvass.NewHandler(canvass.DefaultConfig(), data, log),
		compare.NewHandler(compare.DefaultConfig(), data, log),
		district.NewHandler(data, log),
		precinct.NewHandler(precinct.DefaultConfig(), data, log),
	}, 0.25, log)
	require.NoError(t, err)

	return server.New(config.ServerConfig{Host: "127.0.0.1", Port: 0}, r, nil, log)
}

func ask(t *testing.T, s *server.Server, query string) models.HandlerResult {
	t.Helper()
	payload, err := json.Marshal(server.QueryRequest{Query: query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.HandlerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestCreateCanvassUniverse(t *testing.T) {
	s := newStack(t)

	result := ask(t, s, "Create a canvassing universe")
	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "Canvass Universe")
	assert.Equal(t, string(models.IntentCanvassCreate), result.Metadata[models.MetaIntent])
}

func TestVolunteerEstimate(t *testing.T) {
	s := newStack(t)

	result := ask(t, s, "How many volunteers for 10000 doors?")
	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "10,000")
	assert.Regexp(t, regexp.MustCompile(`(?i)volunteers|hours`), result.Response)
}

func TestCompareNeedsTwoAreas(t *testing.T) {
	s := newStack(t)

	result := ask(t, s, "Compare Lansing")
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "two areas")
	assert.Equal(t, string(models.IntentCompareJurisdictions), result.Metadata[models.MetaIntent])
}

func TestBareDistrictCodeLookup(t *testing.T) {
	entities := extract.Extract("HD-74")
	assert.Equal(t, "mi-house-74", entities.StateHouse)

	s := newStack(t)
	result := ask(t, s, "HD-74")
	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "Kara Hope")
	assert.Equal(t, string(models.IntentDistrictLookup), result.Metadata[models.MetaIntent])
}

func TestListAllDistricts(t *testing.T) {
	s := newStack(t)

	result := ask(t, s, "List all districts")
	assert.True(t, result.Success)
	for _, header := range []string{"Congressional", "State Senate", "State House", "School Districts"} {
		assert.Contains(t, result.Response, header)
	}
}

func TestConversationCarryover(t *testing.T) {
	s := newStack(t)

	// first turn establishes a door count, second turn omits it
	first := ask(t, s, "Create a canvass universe with 12000 doors in Lansing")
	require.True(t, first.Success)

	doors := 12000
	payload, err := json.Marshal(server.QueryRequest{
		Query: "How many volunteers do we need?",
		Prior: &models.Entities{DoorCount: &doors},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var second models.HandlerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.True(t, second.Success)
	assert.Contains(t, second.Response, "12,000")
}
