package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/milkyano-media/aspire-backend/internal/config"
	"github.com/milkyano-media/aspire-backend/internal/service"
	"github.com/milkyano-media/aspire-backend/internal/wiselms"
)

type stubGateway struct {
	courses    []wiselms.Course
	coursesErr error
	assignErr  error

	coursesCalls int
	assignCalls  []assignCall
}

type assignCall struct {
	studentID string
	courseID  string
	assign    bool
}

func (g *stubGateway) GetCourses(ctx context.Context, classType string) ([]wiselms.Course, error) {
	g.coursesCalls++
	return g.courses, g.coursesErr
}

func (g *stubGateway) AssignStudentToCourse(ctx context.Context, studentID, courseID string, assign bool) error {
	g.assignCalls = append(g.assignCalls, assignCall{studentID, courseID, assign})
	return g.assignErr
}

const testSecret = "hook-secret"

func newWebhookRouter(gw *stubGateway) *gin.Engine {
	return newWebhookRouterWithSecret(gw, testSecret)
}

func newWebhookRouterWithSecret(gw *stubGateway, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.WiseLMS.WebhookSecret = secret

	enrollment := service.NewEnrollmentService(gw, zerolog.Nop())
	h := NewWebhookHandler(cfg, enrollment, zerolog.Nop())

	r := gin.New()
	r.POST("/api/wiselms/webhook", h.HandleWiseLMSEvent)
	return r
}

func postWebhook(r *gin.Engine, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/wiselms/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("Authorization", secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsMissingSecret(t *testing.T) {
	gw := &stubGateway{}
	r := newWebhookRouter(gw)

	w := postWebhook(r, "", `{"event":"StudentAddedToClassroomEvent"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Unauthorized") {
		t.Errorf("body = %s, want Unauthorized error", w.Body.String())
	}
	if gw.coursesCalls != 0 {
		t.Errorf("course lookups = %d, want none before auth", gw.coursesCalls)
	}
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	gw := &stubGateway{}
	r := newWebhookRouter(gw)

	w := postWebhook(r, "wrong", `{"event":"StudentAddedToClassroomEvent"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if gw.coursesCalls != 0 {
		t.Errorf("course lookups = %d, want none before auth", gw.coursesCalls)
	}
}

func TestWebhookUnsetSecretDisablesCheck(t *testing.T) {
	gw := &stubGateway{}
	r := newWebhookRouterWithSecret(gw, "")

	body := `{
		"event": "ClassroomRenamedEvent",
		"payload": {
			"classroom": {"_id": "c1", "name": "Year 7 Maths"},
			"student": {"_id": "s1", "name": "Amy"}
		}
	}`
	w := postWebhook(r, "", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when no secret configured", w.Code)
	}
}

func TestWebhookRejectsMalformedJSON(t *testing.T) {
	gw := &stubGateway{}
	r := newWebhookRouter(gw)

	w := postWebhook(r, testSecret, `{"event":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON payload") {
		t.Errorf("body = %s, want Invalid JSON payload", w.Body.String())
	}
	if gw.coursesCalls != 0 {
		t.Errorf("course lookups = %d, want none for rejected payload", gw.coursesCalls)
	}
}

func TestWebhookRejectsMissingEventOrPayload(t *testing.T) {
	gw := &stubGateway{}
	r := newWebhookRouter(gw)

	cases := map[string]string{
		"missing event":   `{"payload":{"classroom":{"_id":"c1","name":"Year 7 Maths"},"student":{"_id":"s1","name":"Amy"}}}`,
		"missing payload": `{"event":"StudentAddedToClassroomEvent"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := postWebhook(r, testSecret, body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), "Invalid event structure") {
				t.Errorf("body = %s, want Invalid event structure", w.Body.String())
			}
		})
	}

	if gw.coursesCalls != 0 {
		t.Errorf("course lookups = %d, want none for rejected payloads", gw.coursesCalls)
	}
}

func TestWebhookAddEventAssignsActivitiesCourse(t *testing.T) {
	gw := &stubGateway{
		courses: []wiselms.Course{
			{ID: "act-1", Name: "Activities Year 7 Maths", Published: true},
		},
	}
	r := newWebhookRouter(gw)

	body := `{
		"event": "StudentAddedToClassroomEvent",
		"payload": {
			"classroom": {"_id": "c1", "name": "Premium Package Year 7 Maths"},
			"student": {"_id": "s1", "name": "Amy"}
		}
	}`
	w := postWebhook(r, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"received":true`) {
		t.Errorf("body = %s, want received:true", w.Body.String())
	}
	if gw.coursesCalls != 1 {
		t.Errorf("course lookups = %d, want 1", gw.coursesCalls)
	}
	if len(gw.assignCalls) != 1 {
		t.Fatalf("assign calls = %d, want 1", len(gw.assignCalls))
	}
	call := gw.assignCalls[0]
	if call.studentID != "s1" || call.courseID != "act-1" || !call.assign {
		t.Errorf("assign call = %+v, want s1/act-1/assign", call)
	}
}

func TestWebhookRemoveEventUnassigns(t *testing.T) {
	gw := &stubGateway{
		courses: []wiselms.Course{
			{ID: "act-1", Name: "Activities Year 7 Maths", Published: true},
		},
	}
	r := newWebhookRouter(gw)

	body := `{
		"event": "StudentRemovedFromClassroomEvent",
		"payload": {
			"classroom": {"_id": "c1", "name": "Year 7 Maths"},
			"student": {"_id": "s1", "name": "Amy"}
		}
	}`
	w := postWebhook(r, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(gw.assignCalls) != 1 {
		t.Fatalf("assign calls = %d, want 1", len(gw.assignCalls))
	}
	if gw.assignCalls[0].assign {
		t.Error("assign = true, want unassign")
	}
}

func TestWebhookNoMatchingCourseIsNoOp(t *testing.T) {
	gw := &stubGateway{
		courses: []wiselms.Course{
			{ID: "other", Name: "Activities Year 9 Science", Published: true},
		},
	}
	r := newWebhookRouter(gw)

	body := `{
		"event": "StudentAddedToClassroomEvent",
		"payload": {
			"classroom": {"_id": "c1", "name": "Year 7 Maths"},
			"student": {"_id": "s1", "name": "Amy"}
		}
	}`
	w := postWebhook(r, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gw.coursesCalls != 1 {
		t.Errorf("course lookups = %d, want 1", gw.coursesCalls)
	}
	if len(gw.assignCalls) != 0 {
		t.Errorf("assign calls = %d, want 0", len(gw.assignCalls))
	}
	if strings.Contains(w.Body.String(), "error") {
		t.Errorf("body = %s, want no error field", w.Body.String())
	}
}

func TestWebhookUnknownEventIsAcknowledged(t *testing.T) {
	gw := &stubGateway{}
	r := newWebhookRouter(gw)

	body := `{
		"event": "ClassroomRenamedEvent",
		"payload": {
			"classroom": {"_id": "c1", "name": "Year 7 Maths"},
			"student": {"_id": "s1", "name": "Amy"}
		}
	}`
	w := postWebhook(r, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gw.coursesCalls != 0 {
		t.Errorf("course lookups = %d, want 0 for unhandled event", gw.coursesCalls)
	}
	if len(gw.assignCalls) != 0 {
		t.Errorf("assign calls = %d, want 0", len(gw.assignCalls))
	}
}

func TestWebhookSwallowsProcessingErrors(t *testing.T) {
	gw := &stubGateway{coursesErr: errors.New("upstream down")}
	r := newWebhookRouter(gw)

	body := `{
		"event": "StudentAddedToClassroomEvent",
		"payload": {
			"classroom": {"_id": "c1", "name": "Year 7 Maths"},
			"student": {"_id": "s1", "name": "Amy"}
		}
	}`
	w := postWebhook(r, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even on failure", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"received":true`) {
		t.Errorf("body = %s, want received:true", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "upstream down") {
		t.Errorf("body = %s, want error detail", w.Body.String())
	}
}

func TestWebhookSwallowsAssignErrors(t *testing.T) {
	gw := &stubGateway{
		courses: []wiselms.Course{
			{ID: "act-1", Name: "Activities Year 7 Maths", Published: true},
		},
		assignErr: errors.New("assign rejected"),
	}
	r := newWebhookRouter(gw)

	body := `{
		"event": "StudentAddedToClassroomEvent",
		"payload": {
			"classroom": {"_id": "c1", "name": "Year 7 Maths"},
			"student": {"_id": "s1", "name": "Amy"}
		}
	}`
	w := postWebhook(r, testSecret, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "assign rejected") {
		t.Errorf("body = %s, want error detail", w.Body.String())
	}
}
