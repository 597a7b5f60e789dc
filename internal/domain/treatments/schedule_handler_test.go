package treatments

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"livestock-health/internal/domain/dosing"
	"livestock-health/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type progressRepo struct {
	mu    sync.Mutex
	byTag map[string]dosing.Progress
}

func (r *progressRepo) Get(ctx context.Context, tag string) (dosing.Progress, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byTag[tag]
	return p.Clone(), ok, nil
}

func (r *progressRepo) Put(ctx context.Context, tag string, p dosing.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTag[tag] = p.Clone()
	return nil
}

// newScheduleServer arma un router con un tratamiento de COW-001 que
// arranca el 2024-06-01 (3 dosis/día: 08:00, 13:00, 18:00).
func newScheduleServer(t *testing.T, now time.Time) (*httptest.Server, Treatment) {
	t.Helper()

	svc := NewService(newTestRepo(), nil)
	tr, err := svc.Create(context.Background(), "u1", validInput())
	if err != nil {
		t.Fatalf("create treatment: %v", err)
	}

	sched := dosing.NewScheduler(&progressRepo{byTag: map[string]dosing.Progress{}},
		dosing.WithClock(func() time.Time { return now }),
		dosing.WithLocation(time.UTC),
		dosing.WithTick(5*time.Millisecond),
	)

	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	RegisterRoutes(r, svc, sched)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, tr
}

func doJSON(t *testing.T, method, url, userID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, url, rdr)
	req.Header.Set("X-Debug-User-ID", userID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func decodeView(t *testing.T, b []byte) dosing.DayView {
	t.Helper()
	var v dosing.DayView
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode view: %v body=%s", err, string(b))
	}
	return v
}

func TestScheduleHTTP_TakeAndAdvance(t *testing.T) {
	ts, tr := newScheduleServer(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	base := ts.URL + "/treatments/" + tr.ID + "/schedule"

	st, body := doJSON(t, "GET", base+"?date=2024-06-01", "u1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}
	v := decodeView(t, body)
	if len(v.Doses) != 3 || v.State != dosing.StateAwaitingDoses {
		t.Fatalf("unexpected day view: %+v", v)
	}

	// Avanzar sin tomar todo => 409
	st, _ = doJSON(t, "POST", base+"/advance?date=2024-06-01", "u1", map[string]any{
		"times": map[string][]string{"Ivermectin": {"07:00", "12:00", "17:00"}},
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 before all taken, got %d", st)
	}

	for _, d := range v.Doses {
		st, body = doJSON(t, "POST", base+"/doses/"+d.ID+"/taken?date=2024-06-01", "u1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 marking %s, got %d body=%s", d.ID, st, string(body))
		}
	}
	if v = decodeView(t, body); v.State != dosing.StateAdvanceAvailable {
		t.Fatalf("expected advance available, got %s", v.State)
	}

	// Cantidad incorrecta => 422 con el nombre del medicamento
	st, body = doJSON(t, "POST", base+"/advance?date=2024-06-01", "u1", map[string]any{
		"times": map[string][]string{"Ivermectin": {"07:00"}},
	})
	if st != http.StatusUnprocessableEntity || !strings.Contains(string(body), "Ivermectin") {
		t.Fatalf("expected 422 naming medicine, got %d body=%s", st, string(body))
	}

	st, body = doJSON(t, "POST", base+"/advance?date=2024-06-01", "u1", map[string]any{
		"times": map[string][]string{"Ivermectin": {"07:00", "12:00", "17:00"}},
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 advance, got %d body=%s", st, string(body))
	}
	v = decodeView(t, body)
	if v.Date != dosing.NewDate(2024, 6, 2) || v.Doses[0].Time != "07:00" {
		t.Fatalf("expected next day with custom times, got %+v", v)
	}
}

func TestScheduleHTTP_AccessAndBadDate(t *testing.T) {
	ts, tr := newScheduleServer(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	base := ts.URL + "/treatments/" + tr.ID + "/schedule"

	if st, _ := doJSON(t, "GET", base, "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}
	if st, _ := doJSON(t, "GET", base, "intruder", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 for other user, got %d", st)
	}
	if st, _ := doJSON(t, "GET", base+"?date=06/01/2024", "u1", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 bad date, got %d", st)
	}
	if st, _ := doJSON(t, "GET", ts.URL+"/treatments/missing/schedule", "u1", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown treatment, got %d", st)
	}
}

func TestScheduleHTTP_CountdownStream(t *testing.T) {
	// 10:00 => próxima dosis 13:00
	ts, tr := newScheduleServer(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, "GET", ts.URL+"/treatments/"+tr.ID+"/schedule/countdown", nil)
	req.Header.Set("X-Debug-User-ID", "u1")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	if ct := res.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event stream, got %q", ct)
	}

	var events []string
	var lastData string
	sc := bufio.NewScanner(res.Body)
	for sc.Scan() && len(events) < 3 {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			events = append(events, strings.TrimPrefix(line, "event: "))
		case strings.HasPrefix(line, "data: "):
			lastData = strings.TrimPrefix(line, "data: ")
		}
	}
	cancel()

	if len(events) < 3 || events[0] != "view" || events[1] != "tick" {
		t.Fatalf("expected view then ticks, got %v", events)
	}

	var tk dosing.Tick
	if err := json.Unmarshal([]byte(lastData), &tk); err != nil {
		t.Fatalf("decode tick: %v", err)
	}
	if tk.Label != "3h 0m" || tk.DoseID != dosing.DoseID(0, 1, dosing.NewDate(2024, 6, 1)) {
		t.Fatalf("unexpected tick: %+v", tk)
	}
}
