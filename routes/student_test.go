package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"homefind-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildBookingTestApp wires just the booking endpoint behind a JWT verifier.
// The ordered form checks reject bad input before any storage access, so no
// database is needed for these cases.
func buildBookingTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	student := app.Party("/api/student", accessTokenVerifierMiddleware)
	{
		student.Post("/booking", UpsertBooking)
	}
	app.Build()
	return app
}

func signBookingTestToken() string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: "user"})
	return string(token)
}

func postBooking(t *testing.T, app *iris.Application, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/student/booking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signBookingTestToken())
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func errorMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body.Message
}

func TestUpsertBookingRequiresAuth(t *testing.T) {
	app := buildBookingTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/student/booking", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}
}

func TestUpsertBookingValidationOrder(t *testing.T) {
	app := buildBookingTestApp()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"everything missing reports move-in date first",
			`{"propertyID":1}`,
			"Please select a move-in date",
		},
		{
			"college checked after move-in date",
			`{"propertyID":1,"moveInDate":"2026-09-01"}`,
			"Please enter your college name",
		},
		{
			"degree checked after college",
			`{"propertyID":1,"moveInDate":"2026-09-01","collegeName":"RVCE"}`,
			"Please enter your degree",
		},
		{
			"branch checked last",
			`{"propertyID":1,"moveInDate":"2026-09-01","collegeName":"RVCE","degree":"B.Tech"}`,
			"Please enter your branch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postBooking(t, app, tt.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
			if got := errorMessage(t, resp); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestUpsertBookingRejectsBadMoveInDate(t *testing.T) {
	app := buildBookingTestApp()

	resp := postBooking(t, app, `{"propertyID":1,"moveInDate":"next month","collegeName":"RVCE","degree":"B.Tech","branch":"CSE"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unparseable date, got %d", resp.Code)
	}
	if got := errorMessage(t, resp); got != "Please select a move-in date" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidateBookingInputOrder(t *testing.T) {
	input := BookingInput{}
	if msg, ok := validateBookingInput(input); ok || msg != "Please select a move-in date" {
		t.Fatalf("empty input: got %q, %v", msg, ok)
	}

	input.MoveInDate = "2026-09-01"
	if msg, ok := validateBookingInput(input); ok || msg != "Please enter your college name" {
		t.Fatalf("after move-in: got %q, %v", msg, ok)
	}

	input.CollegeName = "RVCE"
	if msg, ok := validateBookingInput(input); ok || msg != "Please enter your degree" {
		t.Fatalf("after college: got %q, %v", msg, ok)
	}

	input.Degree = "B.Tech"
	if msg, ok := validateBookingInput(input); ok || msg != "Please enter your branch" {
		t.Fatalf("after degree: got %q, %v", msg, ok)
	}

	input.Branch = "CSE"
	if msg, ok := validateBookingInput(input); !ok || msg != "" {
		t.Fatalf("complete input: got %q, %v", msg, ok)
	}
}

func TestParseBookingDateFormats(t *testing.T) {
	if _, err := parseBookingDate("2026-09-01T00:00:00Z"); err != nil {
		t.Fatalf("RFC3339 should parse: %v", err)
	}
	if _, err := parseBookingDate("2026-09-01"); err != nil {
		t.Fatalf("date-only should parse: %v", err)
	}
	if _, err := parseBookingDate("September 1st"); err == nil {
		t.Fatal("expected error for free-form date")
	}
}
