// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/papers-list/pkg/types"
)

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ascii", "Pfizer Inc., New York", "Pfizer Inc., New York"},
		{"mojibake accent", "UniversitÃ© de Paris", "Université de Paris"},
		{"mojibake quote", "Kingâ€™s College", "King’s College"},
		{"legitimate A-ring kept", "Århus Universitet", "Århus Universitet"},
		{"decomposed to NFC", "Universite\u0301", "Universit\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Repair(tt.in))
		})
	}
}

// libreServer fakes the detect and translate endpoints.
func libreServer(t *testing.T, lang string, translations map[string]string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)

		switch r.URL.Path {
		case "/detect":
			var req detectRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_ = json.NewEncoder(w).Encode([]detection{
				{Language: "en", Confidence: 10},
				{Language: lang, Confidence: 90},
			})
		case "/translate":
			var req translateRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, lang, req.Source)
			assert.Equal(t, "en", req.Target)
			out, ok := translations[req.Q]
			if !ok {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(apiError{Error: "unsupported text"})
				return
			}
			_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: out})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func newLibre(endpoint string) *LibreTranslator {
	return NewLibreTranslator(types.TranslationConfig{Endpoint: endpoint + "/", Timeout: time.Second}, nil)
}

func TestLibreTranslator_TranslatesForeignText(t *testing.T) {
	ts, _ := libreServer(t, "fr", map[string]string{
		"Université de Paris, Faculté de Médecine": "University of Paris, Faculty of Medicine. ",
	})

	got := newLibre(ts.URL).Translate(context.Background(), "UniversitÃ© de Paris, FacultÃ© de MÃ©decine")
	assert.Equal(t, "University of Paris, Faculty of Medicine", got)
}

func TestLibreTranslator_EnglishSkipsTranslate(t *testing.T) {
	ts, calls := libreServer(t, "en", nil)

	got := newLibre(ts.URL).Translate(context.Background(), "Acme Pharmaceuticals Inc.")
	assert.Equal(t, "Acme Pharmaceuticals Inc", got)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestLibreTranslator_TranslateErrorFallsBack(t *testing.T) {
	ts, _ := libreServer(t, "de", map[string]string{})

	got := newLibre(ts.URL).Translate(context.Background(), "Klinikum  rechts der Isar;")
	assert.Equal(t, "Klinikum rechts der Isar", got)
}

func TestLibreTranslator_UnreachableFallsBack(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close()

	got := newLibre(ts.URL).Translate(context.Background(), "Bayer AG, Leverkusen")
	assert.Equal(t, "Bayer AG, Leverkusen", got)
}

func TestLibreTranslator_EmptyInputNoCall(t *testing.T) {
	ts, calls := libreServer(t, "fr", nil)

	assert.Equal(t, "", newLibre(ts.URL).Translate(context.Background(), ""))
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

// countingTranslator tags text and counts calls.
type countingTranslator struct{ calls int }

func (c *countingTranslator) Translate(_ context.Context, text string) string {
	c.calls++
	return text + " (en)"
}

func TestCached(t *testing.T) {
	next := &countingTranslator{}
	c := NewCached(next, time.Minute)

	assert.Equal(t, "Bayer AG (en)", c.Translate(context.Background(), "Bayer AG"))
	assert.Equal(t, "Bayer AG (en)", c.Translate(context.Background(), "Bayer AG"))
	assert.Equal(t, "Roche (en)", c.Translate(context.Background(), "Roche"))

	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 2, c.Len())
}

func TestCached_SkipsResultsAfterCancel(t *testing.T) {
	next := &countingTranslator{}
	c := NewCached(next, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, "Bayer AG (en)", c.Translate(ctx, "Bayer AG"))
	assert.Equal(t, 0, c.Len())

	assert.Equal(t, "Bayer AG (en)", c.Translate(context.Background(), "Bayer AG"))
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 1, c.Len())
}
