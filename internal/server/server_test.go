package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlockin/careerlockin/internal/db"
	"github.com/careerlockin/careerlockin/internal/pipeline"
	"github.com/careerlockin/careerlockin/internal/types"
)

type fakeGenerator struct {
	result *pipeline.Result
	err    error

	gotUserID uuid.UUID
}

func (f *fakeGenerator) Generate(_ context.Context, userID uuid.UUID) (*pipeline.Result, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeReader struct {
	roadmaps  map[uuid.UUID]*db.StoredRoadmap
	summaries []db.RoadmapSummary
	listErr   error
}

func (f *fakeReader) GetRoadmap(_ context.Context, id uuid.UUID) (*db.StoredRoadmap, error) {
	rm, ok := f.roadmaps[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return rm, nil
}

func (f *fakeReader) ListRoadmaps(_ context.Context, _ uuid.UUID) ([]db.RoadmapSummary, error) {
	return f.summaries, f.listErr
}

func newTestServer(gen *fakeGenerator, reader *fakeReader) *Server {
	if reader == nil {
		reader = &fakeReader{}
	}
	return New(gen, reader, zerolog.Nop())
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateRoadmap_Success(t *testing.T) {
	roadmapID := uuid.New()
	gen := &fakeGenerator{result: &pipeline.Result{
		RoadmapID: roadmapID,
		Roadmap:   &types.Roadmap{TargetRole: "Backend Engineer"},
		ModelName: "gemini-2.5-flash",
	}}
	srv := newTestServer(gen, nil)
	userID := uuid.New()

	rec := postJSON(t, srv.Router(), "/api/roadmaps", map[string]string{"user_id": userID.String()})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID, gen.gotUserID)

	var resp struct {
		ID        uuid.UUID `json:"id"`
		ModelName string    `json:"model_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, roadmapID, resp.ID)
	assert.Equal(t, "gemini-2.5-flash", resp.ModelName)
}

func TestCreateRoadmap_BadRequests(t *testing.T) {
	srv := newTestServer(&fakeGenerator{}, nil)

	rec := postJSON(t, srv.Router(), "/api/roadmaps", map[string]string{"user_id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/roadmaps", bytes.NewReader([]byte("{broken")))
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRoadmap_ErrorMapping(t *testing.T) {
	cases := []struct {
		kind   pipeline.ErrorKind
		status int
	}{
		{pipeline.KindPolicyDenied, http.StatusPaymentRequired},
		{pipeline.KindProfileMissing, http.StatusConflict},
		{pipeline.KindProfileInvalid, http.StatusUnprocessableEntity},
		{pipeline.KindMalformedResponse, http.StatusBadGateway},
		{pipeline.KindSchemaViolation, http.StatusBadGateway},
		{pipeline.KindModelUnavailable, http.StatusServiceUnavailable},
		{pipeline.KindPersistenceFailure, http.StatusServiceUnavailable},
		{pipeline.KindUnknown, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			gen := &fakeGenerator{err: &pipeline.GenerationError{
				Kind:    tc.kind,
				Message: "safe message",
				Cause:   fmt.Errorf("internal detail"),
			}}
			srv := newTestServer(gen, nil)

			rec := postJSON(t, srv.Router(), "/api/roadmaps", map[string]string{"user_id": uuid.NewString()})

			assert.Equal(t, tc.status, rec.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, string(tc.kind), resp["error"])
			assert.Equal(t, "safe message", resp["message"])
			assert.NotContains(t, rec.Body.String(), "internal detail")
		})
	}
}

func TestGetRoadmap(t *testing.T) {
	roadmapID := uuid.New()
	reader := &fakeReader{roadmaps: map[uuid.UUID]*db.StoredRoadmap{
		roadmapID: {
			RoadmapSummary: db.RoadmapSummary{
				ID:         roadmapID,
				UserID:     uuid.New(),
				TargetRole: "Backend Engineer",
				ModelName:  "gemini-2.5-flash",
				CreatedAt:  time.Now(),
			},
		},
	}}
	srv := newTestServer(&fakeGenerator{}, reader)

	req := httptest.NewRequest(http.MethodGet, "/api/roadmaps/"+roadmapID.String(), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backend Engineer")
}

func TestGetRoadmap_NotFound(t *testing.T) {
	srv := newTestServer(&fakeGenerator{}, &fakeReader{roadmaps: map[uuid.UUID]*db.StoredRoadmap{}})

	req := httptest.NewRequest(http.MethodGet, "/api/roadmaps/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRoadmap_BadID(t *testing.T) {
	srv := newTestServer(&fakeGenerator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/roadmaps/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRoadmaps(t *testing.T) {
	userID := uuid.New()
	srv := newTestServer(&fakeGenerator{}, &fakeReader{summaries: []db.RoadmapSummary{
		{ID: uuid.New(), UserID: userID, TargetRole: "Data Engineer", ModelName: "gemini-2.5-flash"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/roadmaps?user_id="+userID.String(), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Data Engineer")
}

func TestListRoadmaps_EmptyIsArray(t *testing.T) {
	srv := newTestServer(&fakeGenerator{}, &fakeReader{})

	req := httptest.NewRequest(http.MethodGet, "/api/roadmaps?user_id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"roadmaps": []}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeGenerator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
