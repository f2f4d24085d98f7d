package wiselms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/milkyano-media/aspire-backend/internal/config"
)

// requestTimeout is the hard per-call timeout for every WiseLMS request.
const requestTimeout = 30 * time.Second

// ErrNotConfigured is returned by every client method when the WiseLMS
// credentials (api key, user id, institute id) are incomplete. The check
// runs before any request is issued.
var ErrNotConfigured = errors.New("wiselms: api key, user id and institute id must be configured")

// APIError is a non-2xx response from the WiseLMS API. The body is kept
// verbatim so remote diagnostic context survives into logs.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wiselms: %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client issues authenticated requests against the WiseLMS REST API.
// It never retries; every method either returns data or an error, and all
// recovery policy lives in callers.
type Client struct {
	cfg        config.WiseLMS
	httpClient *http.Client
	baseURL    string // overridable in tests
	log        zerolog.Logger
}

// NewClient creates a WiseLMS client from injected configuration.
func NewClient(cfg config.WiseLMS, log zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    "https://" + cfg.APIHost,
		log:        log.With().Str("component", "wiselms_client").Logger(),
	}
}

// GetCourses lists the institute's classes filtered by classType
// (LIVE, RECORDED or ONE_TO_ONE).
func (c *Client) GetCourses(ctx context.Context, classType string) ([]Course, error) {
	path := fmt.Sprintf("/institutes/%s/classes?classType=%s&showCoTeachers=true", c.cfg.InstituteID, classType)

	var envelope struct {
		Data struct {
			Classes []Course `json:"classes"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Classes, nil
}

// GetClassParticipants lists the students enrolled in a classroom.
func (c *Client) GetClassParticipants(ctx context.Context, classID string) ([]Student, error) {
	path := fmt.Sprintf("/user/classes/%s/participants?showCoTeachers=true", classID)

	var envelope struct {
		Data struct {
			JoinedRequest []Student `json:"joinedRequest"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.JoinedRequest, nil
}

// GetStudentReport fetches the detailed report for a single student,
// which carries their linked parent contacts.
func (c *Client) GetStudentReport(ctx context.Context, studentID string) ([]Parent, error) {
	path := fmt.Sprintf("/public/institutes/%s/studentReports/%s", c.cfg.InstituteID, studentID)

	var envelope struct {
		Data struct {
			StudentReport struct {
				Parents []Parent `json:"parents"`
			} `json:"studentReport"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.StudentReport.Parents, nil
}

// GetStudentsWithParents lists a classroom's students paired with their
// first linked parent contact. For S students this issues 1+S requests.
// Students whose report fails or carries no parent are skipped, not fatal
// to the batch.
func (c *Client) GetStudentsWithParents(ctx context.Context, classID string) ([]StudentWithParent, error) {
	students, err := c.GetClassParticipants(ctx, classID)
	if err != nil {
		return nil, err
	}

	result := make([]StudentWithParent, 0, len(students))
	for _, student := range students {
		parents, err := c.GetStudentReport(ctx, student.ID)
		if err != nil {
			c.log.Warn().Err(err).
				Str("student_id", student.ID).
				Msg("Student report fetch failed, skipping")
			continue
		}
		if len(parents) == 0 {
			c.log.Info().
				Str("student_id", student.ID).
				Msg("Student has no linked parent, skipping")
			continue
		}
		result = append(result, StudentWithParent{
			Student: student,
			Parent:  parents[0],
		})
	}
	return result, nil
}

// AssignStudentToCourse toggles a student's enrollment in a course.
// assign=true enrolls, assign=false unenrolls. Idempotency is up to the
// remote API; repeated calls are not deduplicated here.
func (c *Client) AssignStudentToCourse(ctx context.Context, studentID, courseID string, assign bool) error {
	path := fmt.Sprintf("/institutes/%s/assignClassToStudent", c.cfg.InstituteID)
	body := map[string]interface{}{
		"classId": courseID,
		"userId":  studentID,
		"assign":  assign,
	}
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// do issues one authenticated request and decodes the JSON response into
// out (skipped when out is nil).
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if !c.cfg.Valid() {
		return ErrNotConfigured
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("wiselms: encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("wiselms: build request: %w", err)
	}

	req.SetBasicAuth(c.cfg.UserID, c.cfg.APIKey)
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("x-wise-namespace", c.cfg.Namespace)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wiselms: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("wiselms: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   string(respBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("wiselms: decode response: %w", err)
	}
	return nil
}
