package wiselms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/milkyano-media/aspire-backend/internal/config"
)

func testConfig() config.WiseLMS {
	return config.WiseLMS{
		APIHost:     "api.wiselms.test",
		Namespace:   "aspire",
		APIKey:      "test-key",
		UserID:      "user-1",
		InstituteID: "inst-1",
		UserAgent:   "AspireBackend/test",
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(testConfig(), zerolog.Nop())
	c.httpClient = server.Client()
	c.baseURL = server.URL
	return c, server
}

func TestClient_GetCourses(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if want := "/institutes/inst-1/classes"; r.URL.Path != want {
			t.Errorf("path = %s, want %s", r.URL.Path, want)
		}
		if got := r.URL.Query().Get("classType"); got != ClassTypeLive {
			t.Errorf("classType = %s, want LIVE", got)
		}
		if got := r.URL.Query().Get("showCoTeachers"); got != "true" {
			t.Errorf("showCoTeachers = %s, want true", got)
		}

		// Auth headers must be present on every request.
		username, password, ok := r.BasicAuth()
		if !ok || username != "user-1" || password != "test-key" {
			t.Errorf("basic auth = %s:%s (ok=%v), want user-1:test-key", username, password, ok)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %s, want test-key", got)
		}
		if got := r.Header.Get("x-wise-namespace"); got != "aspire" {
			t.Errorf("x-wise-namespace = %s, want aspire", got)
		}
		if got := r.Header.Get("User-Agent"); got != "AspireBackend/test" {
			t.Errorf("User-Agent = %s, want AspireBackend/test", got)
		}

		fmt.Fprint(w, `{"data":{"classes":[
			{"_id":"a","name":"Year 3","published":true,"classType":"LIVE"},
			{"_id":"b","name":"Activities Year 3","published":true,"classType":"LIVE"}
		]}}`)
	}))

	courses, err := c.GetCourses(context.Background(), ClassTypeLive)
	if err != nil {
		t.Fatalf("GetCourses returned error: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("len(courses) = %d, want 2", len(courses))
	}
	if courses[0].ID != "a" || courses[0].Name != "Year 3" || !courses[0].Published {
		t.Errorf("unexpected first course: %+v", courses[0])
	}
}

func TestClient_GetCourses_ErrorCarriesStatusAndBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"invalid api key"}`)
	}))

	_, err := c.GetCourses(context.Background(), ClassTypeLive)
	if err == nil {
		t.Fatal("expected error on 403 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", apiErr.Status)
	}
	if !strings.Contains(apiErr.Body, "invalid api key") {
		t.Errorf("body %q should carry the remote message", apiErr.Body)
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error message %q should include the HTTP status", err.Error())
	}
}

func TestClient_GetCourses_MalformedJSON(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))

	if _, err := c.GetCourses(context.Background(), ClassTypeLive); err == nil {
		t.Fatal("expected error on malformed JSON response")
	}
}

func TestClient_NotConfigured_RefusesAllCalls(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.APIKey = ""
	c := NewClient(cfg, zerolog.Nop())
	c.baseURL = server.URL

	if _, err := c.GetCourses(context.Background(), ClassTypeLive); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("GetCourses err = %v, want ErrNotConfigured", err)
	}
	if err := c.AssignStudentToCourse(context.Background(), "s1", "c1", true); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("AssignStudentToCourse err = %v, want ErrNotConfigured", err)
	}
	if _, err := c.GetStudentsWithParents(context.Background(), "class-1"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("GetStudentsWithParents err = %v, want ErrNotConfigured", err)
	}
	if hits.Load() != 0 {
		t.Errorf("unconfigured client issued %d requests, want 0", hits.Load())
	}
}

func TestClient_AssignStudentToCourse(t *testing.T) {
	var received struct {
		ClassID string `json:"classId"`
		UserID  string `json:"userId"`
		Assign  bool   `json:"assign"`
	}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if want := "/institutes/inst-1/assignClassToStudent"; r.URL.Path != want {
			t.Errorf("path = %s, want %s", r.URL.Path, want)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		fmt.Fprint(w, `{"data":{}}`)
	}))

	if err := c.AssignStudentToCourse(context.Background(), "student-9", "course-4", true); err != nil {
		t.Fatalf("AssignStudentToCourse returned error: %v", err)
	}
	if received.ClassID != "course-4" || received.UserID != "student-9" || !received.Assign {
		t.Errorf("unexpected mutation body: %+v", received)
	}
}

func TestClient_AssignStudentToCourse_Unassign(t *testing.T) {
	var assign *bool
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Assign bool `json:"assign"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		assign = &body.Assign
		fmt.Fprint(w, `{"data":{}}`)
	}))

	if err := c.AssignStudentToCourse(context.Background(), "s1", "c1", false); err != nil {
		t.Fatalf("AssignStudentToCourse returned error: %v", err)
	}
	if assign == nil || *assign {
		t.Errorf("assign flag = %v, want false", assign)
	}
}

func TestClient_GetStudentsWithParents(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/user/classes/class-1/participants"):
			fmt.Fprint(w, `{"data":{"joinedRequest":[
				{"_id":"s1","name":"Alice"},
				{"_id":"s2","name":"Bob"},
				{"_id":"s3","name":"Carol"}
			]}}`)
		case r.URL.Path == "/public/institutes/inst-1/studentReports/s1":
			fmt.Fprint(w, `{"data":{"studentReport":{"parents":[
				{"name":"Alice Sr","email":"alice.sr@example.com"},
				{"name":"Alice Jr Sr","email":"second@example.com"}
			]}}}`)
		case r.URL.Path == "/public/institutes/inst-1/studentReports/s2":
			// No linked parent: silently excluded, not an error.
			fmt.Fprint(w, `{"data":{"studentReport":{"parents":[]}}}`)
		case r.URL.Path == "/public/institutes/inst-1/studentReports/s3":
			// Report failure for one student must not sink the batch.
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	result, err := c.GetStudentsWithParents(context.Background(), "class-1")
	if err != nil {
		t.Fatalf("GetStudentsWithParents returned error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("len(result) = %d, want 1", len(result))
	}
	if result[0].Student.ID != "s1" {
		t.Errorf("student ID = %s, want s1", result[0].Student.ID)
	}
	if result[0].Parent.Email != "alice.sr@example.com" {
		t.Errorf("parent email = %s, want first linked parent", result[0].Parent.Email)
	}
}

func TestClient_GetStudentsWithParents_ParticipantsErrorIsFatal(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	if _, err := c.GetStudentsWithParents(context.Background(), "class-1"); err == nil {
		t.Fatal("expected error when the participants listing fails")
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetCourses(ctx, ClassTypeLive)
	if err == nil {
		t.Fatal("expected error with cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
