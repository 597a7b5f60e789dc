package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"livestock-health/internal/metrics"
	"livestock-health/internal/router"
)

// 2024-06-01 09:00 UTC: primer día del tratamiento.
var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newServer(t *testing.T, reg *metrics.Registry) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		Metrics:      reg,
		Clock:        func() time.Time { return fixedNow },
		Location:     time.UTC,
	}))
	t.Cleanup(ts.Close)
	return ts
}

type dayView struct {
	Date         string `json:"date"`
	TreatmentDay int    `json:"treatmentDay"`
	Duration     int    `json:"duration"`
	State        string `json:"state"`
	Doses        []struct {
		ID    string `json:"id"`
		Time  string `json:"time"`
		Taken bool   `json:"taken"`
	} `json:"doses"`
	Next *struct {
		ID string `json:"id"`
	} `json:"next"`
}

func TestHTTP_EndToEnd_TreatmentSchedule(t *testing.T) {
	ts := newServer(t, nil)

	farmer := "farmer-1"

	// 1) Registrar el animal
	createAnimal(t, ts.URL, farmer, map[string]any{
		"tag_number":     "COW-001",
		"livestock_type": "Cattle",
		"breed":          "Holstein",
		"gender":         "Female",
	})

	// 2) Tratamiento con tag desconocido => 422
	{
		payload := treatmentPayload("COW-999")
		st, body := doReq(t, ts.URL, "POST", "/treatments", farmer, payload)
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for unknown tag, got %d body=%s", st, string(body))
		}
	}

	// 3) Tratamiento válido: 2 días, 08:00 y 20:00
	treatmentID := createTreatment(t, ts.URL, farmer, treatmentPayload("COW-001"))
	base := "/treatments/" + treatmentID + "/schedule"

	// 4) Día 1: dos dosis pendientes, la próxima es la de las 20:00
	v := getView(t, ts.URL, "GET", base+"?date=2024-06-01", farmer, nil, http.StatusOK)
	if v.TreatmentDay != 1 || v.Duration != 2 || v.State != "awaiting-doses" || len(v.Doses) != 2 {
		t.Fatalf("unexpected day 1 view: %+v", v)
	}
	if v.Doses[0].Time != "08:00" || v.Doses[1].Time != "20:00" {
		t.Fatalf("unexpected dose times: %+v", v.Doses)
	}
	if v.Next == nil || v.Next.ID != v.Doses[1].ID {
		t.Fatalf("expected next dose %s, got %+v", v.Doses[1].ID, v.Next)
	}

	// 5) Avanzar antes de tiempo => 409
	{
		st, body := doReq(t, ts.URL, "POST", base+"/advance?date=2024-06-01", farmer, map[string]any{
			"times": map[string][]string{"Oxytetracycline": {"07:00", "19:00"}},
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 advancing with pending doses, got %d body=%s", st, string(body))
		}
	}

	// 6) Tomar las dos dosis
	for _, d := range v.Doses {
		v = getView(t, ts.URL, "POST", base+"/doses/"+d.ID+"/taken?date=2024-06-01", farmer, nil, http.StatusOK)
	}
	if v.State != "advance-available" || v.Next != nil {
		t.Fatalf("expected advance-available with no next dose, got %+v", v)
	}

	// 7) Cantidad de horas incorrecta => 422 con nombre del medicamento
	{
		st, body := doReq(t, ts.URL, "POST", base+"/advance?date=2024-06-01", farmer, map[string]any{
			"times": map[string][]string{"Oxytetracycline": {"07:00"}},
		})
		if st != http.StatusUnprocessableEntity || !strings.Contains(string(body), "Oxytetracycline") {
			t.Fatalf("expected 422 naming the medicine, got %d body=%s", st, string(body))
		}
	}

	// 8) Avanzar con horas nuevas
	v = getView(t, ts.URL, "POST", base+"/advance?date=2024-06-01", farmer, map[string]any{
		"times": map[string][]string{"Oxytetracycline": {"07:00", "19:00"}},
	}, http.StatusOK)
	if v.Date != "2024-06-02" || v.TreatmentDay != 2 || len(v.Doses) != 2 {
		t.Fatalf("unexpected day 2 view: %+v", v)
	}
	if v.Doses[0].Time != "07:00" || v.Doses[1].Time != "19:00" || v.Doses[0].Taken {
		t.Fatalf("expected fresh custom doses on day 2, got %+v", v.Doses)
	}

	// 9) Último día: tomar todo => terminado, avanzar => 409
	for _, d := range v.Doses {
		v = getView(t, ts.URL, "POST", base+"/doses/"+d.ID+"/taken?date=2024-06-02", farmer, nil, http.StatusOK)
	}
	if v.State != "treatment-finished" {
		t.Fatalf("expected treatment-finished, got %+v", v)
	}
	{
		st, _ := doReq(t, ts.URL, "POST", base+"/advance?date=2024-06-02", farmer, map[string]any{
			"times": map[string][]string{"Oxytetracycline": {"07:00", "19:00"}},
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on last day, got %d", st)
		}
	}

	// 10) Fuera de la ventana no hay dosis
	v = getView(t, ts.URL, "GET", base+"?date=2024-06-10", farmer, nil, http.StatusOK)
	if v.State != "outside-window" || len(v.Doses) != 0 {
		t.Fatalf("expected outside-window without doses, got %+v", v)
	}
}

func TestHTTP_TreatmentAccessByRole(t *testing.T) {
	ts := newServer(t, nil)

	owner := "farmer-1"
	createAnimal(t, ts.URL, owner, map[string]any{"tag_number": "GOAT-7", "livestock_type": "Goat"})
	treatmentID := createTreatment(t, ts.URL, owner, treatmentPayload("GOAT-7"))

	// Otro productor no ve el tratamiento
	if st, _ := doReq(t, ts.URL, "GET", "/treatments/"+treatmentID, "farmer-2", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 for another farmer, got %d", st)
	}

	// Un vet sí puede leerlo
	req, _ := http.NewRequest("GET", ts.URL+"/treatments/"+treatmentID+"/schedule?date=2024-06-01", nil)
	req.Header.Set("X-Debug-User-ID", "vet-1")
	req.Header.Set("X-Debug-Role", "vet")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for vet, got %d", res.StatusCode)
	}

	// Sin usuario => 401
	if st, _ := doReq(t, ts.URL, "GET", "/treatments", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}
}

func TestHTTP_SameTagDifferentOwnersKeepSeparateProgress(t *testing.T) {
	ts := newServer(t, nil)

	// el tag solo es único por dueño: los dos productores tienen su COW-001
	var treatments [2]string
	for i, owner := range []string{"farmer-1", "farmer-2"} {
		createAnimal(t, ts.URL, owner, map[string]any{"tag_number": "COW-001", "livestock_type": "Cattle"})
		treatments[i] = createTreatment(t, ts.URL, owner, treatmentPayload("COW-001"))
	}

	first := "/treatments/" + treatments[0] + "/schedule"
	v := getView(t, ts.URL, "GET", first+"?date=2024-06-01", "farmer-1", nil, http.StatusOK)
	v = getView(t, ts.URL, "POST", first+"/doses/"+v.Doses[0].ID+"/taken?date=2024-06-01", "farmer-1", nil, http.StatusOK)
	if !v.Doses[0].Taken {
		t.Fatalf("expected farmer-1 dose taken, got %+v", v.Doses)
	}

	other := getView(t, ts.URL, "GET", "/treatments/"+treatments[1]+"/schedule?date=2024-06-01", "farmer-2", nil, http.StatusOK)
	for _, d := range other.Doses {
		if d.Taken {
			t.Fatalf("farmer-2 sees a dose taken by farmer-1: %+v", other.Doses)
		}
	}
}

func TestHTTP_HealthMetricsAndDocs(t *testing.T) {
	reg := metrics.New()
	ts := newServer(t, reg)

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health response: %d %s", st, string(body))
	}

	// Una dosis tomada debe aparecer en /metrics
	owner := "farmer-1"
	createAnimal(t, ts.URL, owner, map[string]any{"tag_number": "SHEEP-1", "livestock_type": "Sheep"})
	treatmentID := createTreatment(t, ts.URL, owner, treatmentPayload("SHEEP-1"))
	v := getView(t, ts.URL, "GET", "/treatments/"+treatmentID+"/schedule?date=2024-06-01", owner, nil, http.StatusOK)
	getView(t, ts.URL, "POST", "/treatments/"+treatmentID+"/schedule/doses/"+v.Doses[0].ID+"/taken?date=2024-06-01", owner, nil, http.StatusOK)

	st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 on /metrics, got %d", st)
	}
	for _, want := range []string{
		"livestock_health_doses_taken_total 1",
		`route="/treatments/{treatmentID}/schedule/doses/{doseID}/taken"`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}

	if st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil); st != http.StatusOK || !strings.Contains(string(body), "/treatments/{treatmentID}/schedule/advance") {
		t.Fatalf("unexpected swagger doc: %d", st)
	}
}

func treatmentPayload(tag string) map[string]any {
	return map[string]any{
		"livestock_tag":  tag,
		"treatment_name": "Respiratory infection",
		"diagnosis":      "Pneumonia",
		"vet_name":       "Dr. Rao",
		"treatment_date": "2024-06-01",
		"medicines": []map[string]any{{
			"name":           "Oxytetracycline",
			"dosage":         "20ml",
			"frequency":      2,
			"duration":       2,
			"schedule_type":  "interval",
			"start_time":     "08:00",
			"interval_hours": 12,
		}},
	}
}

func createAnimal(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/livestock", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func createTreatment(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/treatments", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create treatment, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create treatment: missing id body=%s", string(body))
	}
	return resp.ID
}

func getView(t *testing.T, baseURL, method, path, userID string, body any, want int) dayView {
	t.Helper()

	st, raw := doReq(t, baseURL, method, path, userID, body)
	if st != want {
		t.Fatalf("%s %s: expected %d, got %d body=%s", method, path, want, st, string(raw))
	}
	var v dayView
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode view: %v body=%s", err, string(raw))
	}
	return v
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
