package tba

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchesJSON = `[
  {"key":"2025onnob_qm1","event_key":"2025onnob","comp_level":"qm","set_number":1,"match_number":1,
   "alliances":{"red":{"team_keys":["frc1334","frc2","frc3"],"score":30},"blue":{"team_keys":["frc4","frc5","frc6"],"score":20}},
   "time":1742652000,"predicted_time":1742652060,"actual_time":null},
  {"key":"2025onnob_qm2","event_key":"2025onnob","comp_level":"qm","set_number":1,"match_number":2,
   "alliances":{"red":{"team_keys":["frc7","frc8","frc9"],"score":-1},"blue":{"team_keys":["frc10","frc11","frc12"],"score":-1}},
   "time":1742652600,"predicted_time":null},
  {"key":"2025onnob_f1m1","event_key":"2025onnob","comp_level":"f","set_number":1,"match_number":1,
   "alliances":{"red":{"team_keys":["frc7","frc8","frc9"],"score":null},"blue":{"team_keys":["frc1334","frc11","frc12"],"score":null}},
   "time":null,"predicted_time":null}
]`

const eventJSON = `{"key":"2025onnob","name":"ONT District North Bay Event","timezone":"America/Toronto","year":2025}`

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveUpstream(endpoint, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, endpoint+":"+outcome)
}

func newTestServer(t *testing.T, status int) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var keys []string

	mux := http.NewServeMux()
	mux.HandleFunc("/event/2025onnob/matches", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get(AuthHeader))
		mu.Unlock()
		if status != http.StatusOK {
			http.Error(w, "boom", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(matchesJSON))
	})
	mux.HandleFunc("/event/2025onnob", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get(AuthHeader))
		mu.Unlock()
		if status != http.StatusOK {
			http.Error(w, "boom", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(eventJSON))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &keys
}

func TestFetchTeamMatches(t *testing.T) {
	srv, keys := newTestServer(t, http.StatusOK)
	observer := &recordingObserver{}
	client := NewClient(ClientConfig{BaseURL: srv.URL + "/", APIKey: "secret", Observer: observer})

	matches, err := client.FetchTeamMatches(context.Background(), "2025onnob", "frc1334")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "2025onnob_qm1", matches[0].Key)
	assert.Equal(t, "2025onnob_f1m1", matches[1].Key)
	for _, m := range matches {
		assert.True(t, m.Involves("frc1334"))
	}

	assert.Equal(t, int64(1742652060), matches[0].EffectiveTime())
	assert.Nil(t, matches[1].Alliances.Red.Score)
	assert.Equal(t, []string{"secret"}, *keys)
	assert.Equal(t, []string{"event_matches:ok"}, observer.calls)
}

func TestFetchTeamMatches_NoTeamMatches(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK)
	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "secret"})

	matches, err := client.FetchTeamMatches(context.Background(), "2025onnob", "frc9999")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFetchEventDetails(t *testing.T) {
	srv, keys := newTestServer(t, http.StatusOK)
	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "secret"})

	event, err := client.FetchEventDetails(context.Background(), "2025onnob")
	require.NoError(t, err)

	assert.Equal(t, "ONT District North Bay Event", event.Name)
	assert.Equal(t, "America/Toronto", event.Timezone)
	assert.Equal(t, []string{"secret"}, *keys)
}

func TestFetch_UpstreamStatusError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnauthorized)
	observer := &recordingObserver{}
	client := NewClient(ClientConfig{BaseURL: srv.URL, Observer: observer})

	_, err := client.FetchTeamMatches(context.Background(), "2025onnob", "frc1334")
	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusUnauthorized, upstreamErr.StatusCode)
	assert.Equal(t, endpointEventMatches, upstreamErr.Endpoint)

	_, err = client.FetchEventDetails(context.Background(), "2025onnob")
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusUnauthorized, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Error(), "401")

	assert.Equal(t, []string{"event_matches:http_error", "event:http_error"}, observer.calls)
}

func TestFetch_TransportError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK)
	srv.Close()
	client := NewClient(ClientConfig{BaseURL: srv.URL})

	_, err := client.FetchEventDetails(context.Background(), "2025onnob")
	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Zero(t, upstreamErr.StatusCode)
	assert.NotNil(t, upstreamErr.Unwrap())
}

func TestFetch_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()
	client := NewClient(ClientConfig{BaseURL: srv.URL})

	_, err := client.FetchTeamMatches(context.Background(), "2025onnob", "frc1334")
	var upstreamErr *UpstreamError
	assert.True(t, errors.As(err, &upstreamErr))
}

func TestFetch_FailureLoggedAtDebugOnly(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError)

	var infoBuf, debugBuf bytes.Buffer
	quiet := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Logger:  slog.New(slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})),
	})
	verbose := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Logger:  slog.New(slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})

	_, err := quiet.FetchTeamMatches(context.Background(), "2025onnob", "frc1334")
	require.Error(t, err)
	_, err = quiet.FetchEventDetails(context.Background(), "2025onnob")
	require.Error(t, err)
	assert.Empty(t, infoBuf.String())

	_, err = verbose.FetchEventDetails(context.Background(), "2025onnob")
	require.Error(t, err)
	assert.Contains(t, debugBuf.String(), "level=DEBUG")
	assert.Contains(t, debugBuf.String(), "event_key=2025onnob")
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(ClientConfig{})
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.logger)
}
