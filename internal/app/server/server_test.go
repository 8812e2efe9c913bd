package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal/internal/app/server"
	"hrportal/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
	Notice *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"notice"`
}

func testConfig() config.Config {
	return config.Config{
		Environment:        "test",
		LogLevel:           "error",
		JWTSecret:          "test-secret",
		SessionTTL:         time.Hour,
		SeedDemoData:       true,
		MaxBodyBytes:       1 << 20,
		LoginRatePerMinute: 400,
		RateLimitPerMinute: 0,
		MetricsEnabled:     true,
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	app, err := server.New(context.Background(), testConfig())
	require.NoError(t, err)
	srv := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	status, env := do(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)
	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := srv.Client().Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "hr@company.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_credentials", env.Error.Code)
	require.NotNil(t, env.Notice)
	assert.Equal(t, "error", env.Notice.Type)
}

func TestLoginValidatesPayload(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/v1/dashboard", "/api/v1/leave/requests", "/api/v1/auth/me"} {
		status, _ := do(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestMeReportsRole(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "admin@company.com", "admin123")

	status, env := do(t, srv, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	var me struct {
		IsAdmin bool `json:"isAdmin"`
		IsHR    bool `json:"isHR"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.True(t, me.IsAdmin)
	assert.False(t, me.IsHR)
}

func TestLogoutEndsSession(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "john@company.com", "john123")

	status, _ := do(t, srv, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, srv, http.MethodGet, "/api/v1/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLeaveApprovalJourney(t *testing.T) {
	srv := newTestServer(t)
	hrToken := login(t, srv, "hr@company.com", "hr123")
	johnToken := login(t, srv, "john@company.com", "john123")

	status, _ := do(t, srv, http.MethodPost, "/api/v1/leave/requests/l5/approve", johnToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := do(t, srv, http.MethodPost, "/api/v1/leave/requests/l1/approve", hrToken, map[string]string{"comment": "Enjoy"})
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Notice)
	assert.Equal(t, "success", env.Notice.Type)
	var approved struct {
		Status     string `json:"status"`
		ApprovedBy string `json:"approvedBy"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &approved))
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, "HR Manager", approved.ApprovedBy)

	status, env = do(t, srv, http.MethodPost, "/api/v1/leave/requests/l1/reject", hrToken, nil)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_state", env.Error.Code)

	status, env = do(t, srv, http.MethodGet, "/api/v1/notifications?unread=true", johnToken, nil)
	require.Equal(t, http.StatusOK, status)
	var inbox []struct {
		EntityID string `json:"entityId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &inbox))
	require.NotEmpty(t, inbox)
	assert.Equal(t, "l1", inbox[0].EntityID)
}

func TestEmployeeSeesOnlyOwnLeave(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "john@company.com", "john123")

	status, env := do(t, srv, http.MethodGet, "/api/v1/leave/requests", token, nil)
	require.Equal(t, http.StatusOK, status)
	var items []struct {
		EmployeeID string `json:"employeeId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.Equal(t, "3", item.EmployeeID)
	}

	status, _ = do(t, srv, http.MethodGet, "/api/v1/leave/requests/l5", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestLeaveSubmissionValidatesDates(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "john@company.com", "john123")

	status, env := do(t, srv, http.MethodPost, "/api/v1/leave/requests", token, map[string]string{
		"type":      "Annual Leave",
		"startDate": "2024-02-10",
		"endDate":   "2024-02-01",
		"reason":    "Trip",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)

	status, env = do(t, srv, http.MethodPost, "/api/v1/leave/requests", token, map[string]string{
		"type":      "Annual Leave",
		"startDate": "2024-02-01",
		"endDate":   "2024-02-03",
		"reason":    "Trip",
	})
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		EmployeeID string `json:"employeeId"`
		Status     string `json:"status"`
		TotalDays  int    `json:"totalDays"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "3", created.EmployeeID)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 3, created.TotalDays)
}

func TestAuditIsHROnly(t *testing.T) {
	srv := newTestServer(t)
	hrToken := login(t, srv, "hr@company.com", "hr123")
	johnToken := login(t, srv, "john@company.com", "john123")

	status, _ := do(t, srv, http.MethodGet, "/api/v1/audit", johnToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, srv, http.MethodPost, "/api/v1/leave/requests/l5/approve", hrToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, env := do(t, srv, http.MethodGet, "/api/v1/audit?entityId=l5", hrToken, nil)
	require.Equal(t, http.StatusOK, status)
	var events []struct {
		Action string `json:"action"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, "leave.approve", events[0].Action)
}

func TestDashboardShapesByRole(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodGet, "/api/v1/dashboard", login(t, srv, "hr@company.com", "hr123"), nil)
	require.Equal(t, http.StatusOK, status)
	var hrView map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &hrView))
	assert.Contains(t, hrView, "overview")

	status, env = do(t, srv, http.MethodGet, "/api/v1/dashboard", login(t, srv, "bob@company.com", "bob123"), nil)
	require.Equal(t, http.StatusOK, status)
	var employeeView map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &employeeView))
	assert.Contains(t, employeeView, "personal")
	assert.NotContains(t, employeeView, "overview")
}

func download(t *testing.T, srv *httptest.Server, path, token string) (int, string, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Content-Type"), body
}

func statusOf(t *testing.T, env envelope) string {
	t.Helper()
	var item struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &item))
	return item.Status
}

func TestLeaveRejectAcceptsReason(t *testing.T) {
	srv := newTestServer(t)
	hrToken := login(t, srv, "hr@company.com", "hr123")

	status, env := do(t, srv, http.MethodPost, "/api/v1/leave/requests/l5/reject", hrToken, map[string]string{"reason": "Team coverage"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "rejected", statusOf(t, env))
}

func TestMedicalVerificationJourney(t *testing.T) {
	srv := newTestServer(t)
	hrToken := login(t, srv, "hr@company.com", "hr123")
	johnToken := login(t, srv, "john@company.com", "john123")

	status, _ := do(t, srv, http.MethodPost, "/api/v1/medical/documents/md4/verify", johnToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := do(t, srv, http.MethodPost, "/api/v1/medical/documents/md4/verify", hrToken, map[string]string{"comment": "Valid"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "verified", statusOf(t, env))

	status, env = do(t, srv, http.MethodPost, "/api/v1/medical/documents/md4/verify", hrToken, nil)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_state", env.Error.Code)

	status, env = do(t, srv, http.MethodPost, "/api/v1/medical/documents/md5/reject", hrToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)

	status, env = do(t, srv, http.MethodPost, "/api/v1/medical/documents/md5/reject", hrToken, map[string]string{"reason": "Illegible scan"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "rejected", statusOf(t, env))
}

func TestWarningAcknowledgeAndFollowUp(t *testing.T) {
	srv := newTestServer(t)
	hrToken := login(t, srv, "hr@company.com", "hr123")
	bobToken := login(t, srv, "bob@company.com", "bob123")
	johnToken := login(t, srv, "john@company.com", "john123")

	status, _ := do(t, srv, http.MethodPost, "/api/v1/warnings/w3/acknowledge", johnToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := do(t, srv, http.MethodPost, "/api/v1/warnings/w3/acknowledge", bobToken, map[string]string{"comments": "Understood"})
	require.Equal(t, http.StatusOK, status)
	var acked struct {
		Acknowledgement struct {
			Acknowledged bool   `json:"acknowledged"`
			Comments     string `json:"comments"`
		} `json:"acknowledgement"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &acked))
	assert.True(t, acked.Acknowledgement.Acknowledged)
	assert.Equal(t, "Understood", acked.Acknowledgement.Comments)

	status, _ = do(t, srv, http.MethodPost, "/api/v1/warnings/w3/acknowledge", bobToken, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, env = do(t, srv, http.MethodPost, "/api/v1/warnings/w3/follow-up", hrToken, map[string]string{"date": "12/10/2023"})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)

	status, env = do(t, srv, http.MethodPost, "/api/v1/warnings/w3/follow-up", hrToken, map[string]string{
		"date":     "2023-12-10T09:00:00+05:00",
		"comments": "Check in with manager",
	})
	require.Equal(t, http.StatusOK, status)
	var followed struct {
		FollowUpDate string `json:"followUpDate"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &followed))
	assert.Equal(t, "2023-12-10", followed.FollowUpDate)
}

func TestWarningLetterIsPDF(t *testing.T) {
	srv := newTestServer(t)

	status, contentType, body := download(t, srv, "/api/v1/warnings/w2/letter.pdf", login(t, srv, "john@company.com", "john123"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	status, _, _ = download(t, srv, "/api/v1/warnings/w2/letter.pdf", login(t, srv, "jane@company.com", "jane123"))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestReviewLocksAfterAcknowledgement(t *testing.T) {
	srv := newTestServer(t)
	hrToken := login(t, srv, "hr@company.com", "hr123")
	johnToken := login(t, srv, "john@company.com", "john123")
	categories := []map[string]any{{"name": "Delivery", "rating": 4, "comments": "Solid"}}

	status, env := do(t, srv, http.MethodPost, "/api/v1/performance/reviews", hrToken, map[string]any{
		"employeeId":   "3",
		"reviewPeriod": "Q1 2024",
		"categories":   categories,
	})
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "pending_employee", created.Status)
	path := "/api/v1/performance/reviews/" + created.ID

	status, _ = do(t, srv, http.MethodPut, path+"/categories", hrToken, map[string]any{"categories": categories})
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, srv, http.MethodPost, path+"/acknowledge", johnToken, map[string]string{"comments": "Agreed"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", statusOf(t, env))

	status, env = do(t, srv, http.MethodPut, path+"/categories", hrToken, map[string]any{"categories": categories})
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_state", env.Error.Code)

	status, contentType, body := download(t, srv, path+"/report.pdf", johnToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestPerformanceSummaryIsHROnly(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodGet, "/api/v1/performance/summary", login(t, srv, "john@company.com", "john123"), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := do(t, srv, http.MethodGet, "/api/v1/performance/summary", login(t, srv, "hr@company.com", "hr123"), nil)
	require.Equal(t, http.StatusOK, status)
	var summary struct {
		ReviewsTotal int `json:"reviewsTotal"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 5, summary.ReviewsTotal)
}

func TestEmployeeContactAndNumberConflicts(t *testing.T) {
	srv := newTestServer(t)
	hrToken := login(t, srv, "hr@company.com", "hr123")
	johnToken := login(t, srv, "john@company.com", "john123")
	contact := map[string]string{"phone": "555-010-0000", "address": "1 Main St", "emergencyContact": "Mary Smith"}

	status, _ := do(t, srv, http.MethodPut, "/api/v1/employees/3/contact", johnToken, contact)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := do(t, srv, http.MethodPut, "/api/v1/employees/3/contact", hrToken, contact)
	require.Equal(t, http.StatusOK, status)
	var updated struct {
		ContactInfo struct {
			Phone string `json:"phone"`
		} `json:"contactInfo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "555-010-0000", updated.ContactInfo.Phone)

	status, env = do(t, srv, http.MethodPut, "/api/v1/employees/3", hrToken, map[string]any{
		"name":       "John Smith",
		"email":      "john@company.com",
		"department": "Engineering",
		"employeeId": "EMP002",
		"joinDate":   "2020-01-15",
	})
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "conflict", env.Error.Code)
}

func TestOwnEmployeeRecordHidesSalary(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodGet, "/api/v1/employees/3", login(t, srv, "john@company.com", "john123"), nil)
	require.Equal(t, http.StatusOK, status)
	var own map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &own))
	assert.NotContains(t, own, "salary")

	status, env = do(t, srv, http.MethodGet, "/api/v1/employees/3", login(t, srv, "hr@company.com", "hr123"), nil)
	require.Equal(t, http.StatusOK, status)
	var full map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &full))
	assert.Contains(t, full, "salary")
}
