package ingest_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"studykit/internal/generation"
	"studykit/internal/ingest"
)

const testMaxUpload = 1 << 20

func newTestHandler(store *fakeStore, backend *fakeBackend) *ingest.Handler {
	logger := discardLogger()
	pipeline := ingest.New(store, backend, logger)
	return ingest.NewHandler(pipeline, store, logger, testMaxUpload)
}

func multipartBody(t *testing.T, filename, contentType string, data []byte, count string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}

	if count != "" {
		if err := mw.WriteField("count", count); err != nil {
			t.Fatalf("write count field: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestGenerateFromText(t *testing.T) {
	backend := &fakeBackend{response: &generation.Response{Text: "Q: sample\nA: answer"}}
	handler := newTestHandler(newFakeStore(), backend)

	req := httptest.NewRequest("POST", "/generate-from-text",
		strings.NewReader(`{"text":"The mitochondria is the powerhouse of the cell.","count":3}`))
	rec := httptest.NewRecorder()

	handler.GenerateFromText(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if body["result"] != "Q: sample\nA: answer" {
		t.Errorf("result = %q, want backend text", body["result"])
	}
	if !strings.Contains(backend.lastRequest.Instruction, "generate 3 flashcards") {
		t.Errorf("instruction missing requested count: %q", backend.lastRequest.Instruction)
	}
}

func TestGenerateFromText_NoInput(t *testing.T) {
	handler := newTestHandler(newFakeStore(), &fakeBackend{response: &generation.Response{Text: "unused"}})

	req := httptest.NewRequest("POST", "/generate-from-text", strings.NewReader(`{"text":""}`))
	rec := httptest.NewRecorder()

	handler.GenerateFromText(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGenerateFromText_BackendFailure(t *testing.T) {
	backend := &fakeBackend{err: generation.ErrBackend}
	handler := newTestHandler(newFakeStore(), backend)

	req := httptest.NewRequest("POST", "/generate-from-text",
		strings.NewReader(`{"text":"some notes"}`))
	rec := httptest.NewRecorder()

	handler.GenerateFromText(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	body := decodeBody(t, rec)
	if body["error"] != "AI generation failed" {
		t.Errorf("error = %q, want %q", body["error"], "AI generation failed")
	}
	if body["details"] == "" {
		t.Error("backend failure should include details")
	}
}

func TestGenerateFromUpload(t *testing.T) {
	store := newFakeStore()
	backend := &fakeBackend{response: &generation.Response{Text: "cards"}}
	handler := newTestHandler(store, backend)

	buf, contentType := multipartBody(t, "notes.txt", "text/plain",
		[]byte("Water boils at 100C at sea level."), "2")

	req := httptest.NewRequest("POST", "/generate-from-upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.GenerateFromUpload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["result"] != "cards" {
		t.Errorf("result = %q, want %q", body["result"], "cards")
	}
	if !strings.Contains(backend.lastRequest.Instruction, "Water boils at 100C at sea level.") {
		t.Errorf("instruction missing file text: %q", backend.lastRequest.Instruction)
	}
	if !strings.Contains(backend.lastRequest.Instruction, "generate 2 flashcards") {
		t.Errorf("instruction missing requested count: %q", backend.lastRequest.Instruction)
	}
	if len(store.deleted) != 1 {
		t.Errorf("staged upload not released: deleted = %v", store.deleted)
	}
	if len(store.blobs) != 0 {
		t.Errorf("staged upload still present: %v", store.blobs)
	}
}

func TestGenerateFromUpload_UnsupportedType(t *testing.T) {
	store := newFakeStore()
	handler := newTestHandler(store, &fakeBackend{response: &generation.Response{Text: "unused"}})

	buf, contentType := multipartBody(t, "data.csv", "text/csv", []byte("a,b,c"), "")

	req := httptest.NewRequest("POST", "/generate-from-upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.GenerateFromUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Unsupported file type" {
		t.Errorf("error = %q, want %q", body["error"], "Unsupported file type")
	}
	if len(store.blobs) != 0 {
		t.Errorf("rejected upload still present: %v", store.blobs)
	}
}

func TestGenerateFromUpload_NoFile(t *testing.T) {
	handler := newTestHandler(newFakeStore(), &fakeBackend{response: &generation.Response{Text: "unused"}})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("count", "3"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/generate-from-upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.GenerateFromUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	body := decodeBody(t, rec)
	if body["error"] != "No file uploaded" {
		t.Errorf("error = %q, want %q", body["error"], "No file uploaded")
	}
}

func TestGenerateFromUpload_ProcessingFailure(t *testing.T) {
	store := newFakeStore()
	backend := &fakeBackend{err: generation.ErrBackend}
	handler := newTestHandler(store, backend)

	buf, contentType := multipartBody(t, "notes.txt", "text/plain", []byte("notes"), "")

	req := httptest.NewRequest("POST", "/generate-from-upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.GenerateFromUpload(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Processing failed" {
		t.Errorf("error = %q, want %q", body["error"], "Processing failed")
	}
	if len(store.blobs) != 0 {
		t.Errorf("staged upload still present after failure: %v", store.blobs)
	}
}
