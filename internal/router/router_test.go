package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-care-assistant/internal/adapters/models/stub"
	"pet-care-assistant/internal/domain/carereport"
	"pet-care-assistant/internal/router"
)

var jpeg = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	model := stub.NewClient()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Pipeline:      carereport.NewPipeline(model, model, carereport.Options{}),
		MaxImageBytes: 1 << 20,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_PetCareReport(t *testing.T) {
	ts := newServer(t)

	// 1) Registrar mascota
	st, body := doReq(t, ts.URL, "POST", "/pets", map[string]any{
		"name":       "Milo",
		"species":    "dog",
		"breed":      "labrador",
		"birth_date": "2020-01-01",
		"diet":       []string{"chicken kibble"},
		"notes":      "scratching more than usual",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}
	var pet struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &pet)
	if pet.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}

	// 2) Reporte pre-cargado desde la mascota
	st, body = postReport(t, ts.URL+"/pets/"+pet.ID+"/care-reports", map[string]string{
		"concern": "Skin/Coat",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 care report, got %d body=%s", st, string(body))
	}

	var rep struct {
		RequestID string `json:"request_id"`
		Variant   string `json:"variant"`
		Analysis  string `json:"analysis"`
		Report    string `json:"report"`
	}
	if err := json.Unmarshal(body, &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.RequestID == "" || rep.Variant != carereport.DefaultVariantKey {
		t.Fatalf("unexpected envelope %+v", rep)
	}
	// el stub de texto hace eco del prompt: el análisis tiene que aparecer tal cual
	for _, want := range []string{rep.Analysis, "Milo", "dog (labrador)", "chicken kibble", "Skin/Coat", "scratching more than usual"} {
		if !strings.Contains(rep.Report, want) {
			t.Fatalf("expected %q in report:\n%s", want, rep.Report)
		}
	}

	// 3) Mascota inexistente
	st, _ = postReport(t, ts.URL+"/pets/missing/care-reports", map[string]string{"concern": "Dental"})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown pet, got %d", st)
	}
}

func TestHTTP_PetsCRUD(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/pets", map[string]any{"name": "Luna", "species": "parrot"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown species, got %d body=%s", st, string(body))
	}

	// fuera del rango de edad que acepta un reporte
	st, body = doReq(t, ts.URL, "POST", "/pets", map[string]any{"name": "Luna", "species": "cat", "birth_date": "1990-01-01"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for birth date beyond the age limit, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/pets", map[string]any{"name": "Luna", "species": "cat", "birth_date": "2022-02-02"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var created map[string]any
	_ = json.Unmarshal(body, &created)
	id, _ := created["id"].(string)

	st, body = doReq(t, ts.URL, "PATCH", "/pets/"+id, map[string]any{"birth_date": nil, "notes": "indoor"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
	}
	var patched map[string]any
	_ = json.Unmarshal(body, &patched)
	if _, has := patched["birth_date"]; has || patched["notes"] != "indoor" {
		t.Fatalf("unexpected patched pet %v", patched)
	}

	st, body = doReq(t, ts.URL, "GET", "/pets", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "Luna") {
		t.Fatalf("expected list with Luna, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "GET", "/pets/nope", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
}

func TestHTTP_Ambient(t *testing.T) {
	ts := newServer(t)

	for _, path := range []string{"/health", "/metrics", "/variants", "/swagger/doc.json"} {
		st, body := doReq(t, ts.URL, "GET", path, nil)
		if st != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d body=%s", path, st, string(body))
		}
	}
}

func postReport(t *testing.T, url string, fields map[string]string) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	fw, err := mw.CreateFormFile("image", "pet.jpg")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = fw.Write(jpeg)
	_ = mw.Close()

	res, err := http.Post(url, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
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

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
