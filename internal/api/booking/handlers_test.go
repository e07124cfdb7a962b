package booking

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/resort-booking/internal/drafts"
	"github.com/codr1/resort-booking/internal/models"
	"github.com/codr1/resort-booking/internal/testutil"
)

const testSecret = "test-secret"

func setup(t *testing.T) (*testutil.FakeResortAPI, *drafts.Store) {
	t.Helper()

	ten := 10.0
	fake := testutil.NewFakeResortAPI(t,
		testutil.Room("1", "Sea View Villa", "Villa", 1000, &ten),
		testutil.Room("2", "Garden Room", "Room", 800, nil),
	)
	store := drafts.NewStore(time.Hour, nil)

	prevService, prevStore, prevCookies, prevNow := service, draftStore, cookies, now
	service = fake
	draftStore = store
	cookies = drafts.NewCookies(testSecret, false, time.Hour)
	now = func() time.Time { return testutil.Date(t, "2024-01-01") }
	t.Cleanup(func() {
		service, draftStore, cookies, now = prevService, prevStore, prevCookies, prevNow
	})
	return fake, store
}

func confirmRequest(values url.Values, hx bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/booking/confirm", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if hx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

func validForm() url.Values {
	return url.Values{
		"room":            {"1", "2"},
		"destination":     {"Beach"},
		"checkIn":         {"2024-01-10"},
		"checkOut":        {"2024-01-12"},
		"adults":          {"2"},
		"children":        {"1"},
		"specialRequest":  {"Late check-in"},
		"contactPhone":    {"081 234 5678"},
		"submissionToken": {"token-1"},
	}
}

func TestHandleBookingPageComputesTotal(t *testing.T) {
	setup(t)

	req := httptest.NewRequest(http.MethodGet, "/booking?room=1&room=2&checkIn=2024-01-10&checkOut=2024-01-12&adults=2", nil)
	rec := httptest.NewRecorder()
	HandleBookingPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	// (900 + 800) x 2 nights
	if !strings.Contains(body, `<strong id="booking-total">3,400 บาท</strong>`) {
		t.Fatalf("expected total of 3,400 บาท in body")
	}
	if !strings.Contains(body, "2 คืน") {
		t.Fatalf("expected two nights")
	}
	if !strings.Contains(body, `name="submissionToken" value="`) {
		t.Fatalf("expected submission token field")
	}
	if !strings.Contains(body, `hx-disabled-elt="find button[type=submit]"`) {
		t.Fatalf("expected confirm button to be disabled while in flight")
	}
	if !strings.Contains(body, "/search-results?adults=2&amp;checkIn=2024-01-10&amp;checkOut=2024-01-12") {
		t.Fatalf("expected back link to the results view")
	}
}

func TestHandleBookingPageWithoutDates(t *testing.T) {
	setup(t)

	rec := httptest.NewRecorder()
	HandleBookingPage(rec, httptest.NewRequest(http.MethodGet, "/booking?room=2", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `<strong id="booking-total">0 บาท</strong>`) {
		t.Fatalf("expected zero total without dates")
	}
	if !strings.Contains(body, "Garden Room") {
		t.Fatalf("expected selected room rendered")
	}
}

func TestHandleBookingPageFetchFailure(t *testing.T) {
	fake, _ := setup(t)
	fake.ListErr = errors.New("upstream down")

	rec := httptest.NewRecorder()
	HandleBookingPage(rec, httptest.NewRequest(http.MethodGet, "/booking?room=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Sea View Villa") {
		t.Fatalf("expected no rooms after a failed fetch")
	}
}

func TestHandleConfirmCreatesDraft(t *testing.T) {
	_, store := setup(t)

	rec := httptest.NewRecorder()
	HandleConfirm(rec, confirmRequest(validForm(), true))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("HX-Redirect"); got != ConfirmationPath {
		t.Fatalf("expected HX-Redirect to %s, got %q", ConfirmationPath, got)
	}

	res := rec.Result()
	var token string
	for _, cookie := range res.Cookies() {
		if cookie.Name == drafts.CookieName {
			token = cookie.Value
		}
	}
	if token == "" {
		t.Fatalf("expected draft cookie to be set")
	}

	req := httptest.NewRequest(http.MethodGet, ConfirmationPath, nil)
	req.AddCookie(&http.Cookie{Name: drafts.CookieName, Value: token})
	draftToken, err := cookies.Token(req)
	if err != nil {
		t.Fatalf("read cookie: %v", err)
	}
	draft, err := store.Get(draftToken)
	if err != nil {
		t.Fatalf("expected stored draft: %v", err)
	}
	if draft.Nights != 2 {
		t.Fatalf("expected 2 nights, got %d", draft.Nights)
	}
	if draft.TotalPrice != 3400 {
		t.Fatalf("expected total 3400, got %v", draft.TotalPrice)
	}
	if len(draft.RoomIDs) != 2 || draft.RoomIDs[0] != "1" || draft.RoomIDs[1] != "2" {
		t.Fatalf("unexpected room ids %v", draft.RoomIDs)
	}
	if draft.ContactPhone != "+66812345678" {
		t.Fatalf("expected E.164 phone, got %q", draft.ContactPhone)
	}
	if draft.SpecialRequest != "Late check-in" {
		t.Fatalf("unexpected special request %q", draft.SpecialRequest)
	}
}

func TestHandleConfirmPlainFormRedirects(t *testing.T) {
	setup(t)

	rec := httptest.NewRecorder()
	HandleConfirm(rec, confirmRequest(validForm(), false))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != ConfirmationPath {
		t.Fatalf("expected Location %s, got %q", ConfirmationPath, got)
	}
}

func TestHandleConfirmValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(url.Values)
		message string
	}{
		{
			name:    "missing dates",
			mutate:  func(v url.Values) { v.Del("checkOut") },
			message: "กรุณาระบุวันที่เช็คอินและเช็คเอาท์",
		},
		{
			name:    "check-out before check-in",
			mutate:  func(v url.Values) { v.Set("checkOut", "2024-01-09") },
			message: "วันที่เช็คเอาท์ต้องมากกว่าวันที่เช็คอิน",
		},
		{
			name:    "same day",
			mutate:  func(v url.Values) { v.Set("checkOut", "2024-01-10") },
			message: "วันที่เช็คเอาท์ต้องมากกว่าวันที่เช็คอิน",
		},
		{
			name:    "no rooms",
			mutate:  func(v url.Values) { v.Del("room") },
			message: "ไม่พบข้อมูลห้องพัก",
		},
		{
			name:    "bad phone",
			mutate:  func(v url.Values) { v.Set("contactPhone", "12") },
			message: "กรุณากรอกเบอร์โทรศัพท์ให้ถูกต้อง",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, store := setup(t)
			values := validForm()
			tt.mutate(values)

			rec := httptest.NewRecorder()
			HandleConfirm(rec, confirmRequest(values, true))

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected status 422, got %d", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.message) {
				t.Fatalf("expected message %q in body", tt.message)
			}
			if strings.Contains(body, "<!DOCTYPE html>") {
				t.Fatalf("expected form fragment for htmx request")
			}
			if rec.Header().Get("HX-Redirect") != "" {
				t.Fatalf("expected no redirect on validation error")
			}
			if store.Len() != 0 {
				t.Fatalf("expected no draft stored")
			}
			if !strings.Contains(body, `name="submissionToken" value="token-1"`) {
				t.Fatalf("expected submission token kept for retry")
			}
		})
	}
}

func TestHandleConfirmRetryAfterFailure(t *testing.T) {
	_, store := setup(t)

	bad := validForm()
	bad.Del("checkIn")
	rec := httptest.NewRecorder()
	HandleConfirm(rec, confirmRequest(bad, true))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HandleConfirm(rec, confirmRequest(validForm(), true))
	if rec.Header().Get("HX-Redirect") != ConfirmationPath {
		t.Fatalf("expected retry with same token to succeed")
	}
	if store.Len() != 1 {
		t.Fatalf("expected one stored draft, got %d", store.Len())
	}
}

func TestHandleConfirmMissingToken(t *testing.T) {
	setup(t)
	values := validForm()
	values.Del("submissionToken")

	rec := httptest.NewRecorder()
	HandleConfirm(rec, confirmRequest(values, true))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleConfirmNotInitialized(t *testing.T) {
	prev := draftStore
	draftStore = nil
	t.Cleanup(func() { draftStore = prev })

	rec := httptest.NewRecorder()
	HandleConfirm(rec, confirmRequest(validForm(), true))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestResolveRoomsKeepsRequestedOrder(t *testing.T) {
	setup(t)

	rooms := resolveRooms(httptest.NewRequest(http.MethodGet, "/", nil).Context(), []string{"2", "missing", "1"})
	if len(rooms) != 2 {
		t.Fatalf("expected two rooms, got %d", len(rooms))
	}
	if rooms[0].ID != models.ID("2") || rooms[1].ID != models.ID("1") {
		t.Fatalf("unexpected order %v, %v", rooms[0].ID, rooms[1].ID)
	}
}
