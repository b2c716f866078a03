package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseFormLatin1(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader("loan_intent=%C9DUCATION&loan_grade=B"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=ISO-8859-1")

	form, err := parseForm(req)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := form.Get("loan_intent"); got != "ÉDUCATION" {
		t.Fatalf("expected decoded value, got %q", got)
	}
	if got := form.Get("loan_grade"); got != "B" {
		t.Fatalf("unexpected grade %q", got)
	}
}

func TestParseFormUTF8(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader("loan_intent=%C3%89DUCATION"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")

	form, err := parseForm(req)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := form.Get("loan_intent"); got != "ÉDUCATION" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestParseFormNonFormBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"loan_grade":"B"}`))
	req.Header.Set("Content-Type", "application/json")

	form, err := parseForm(req)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(form) != 0 {
		t.Fatalf("expected no fields, got %v", form)
	}
}

func TestPredictUnknownCharset(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(scenarioValues().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=klingon")
	rr := httptest.NewRecorder()
	newTestHandler(t, &fakeModel{label: 1}).ServeHTTP(rr, req)

	expectError(t, rr, `Error: unsupported charset "klingon"`)
}

func TestPredictMalformedContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(scenarioValues().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset")
	rr := httptest.NewRecorder()
	newTestHandler(t, &fakeModel{label: 1}).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest || !strings.HasPrefix(rr.Body.String(), "Error: content type") {
		t.Fatalf("expected 400 content type error, got %d %s", rr.Code, rr.Body.String())
	}
}
