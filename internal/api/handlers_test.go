package api_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limbo/waypoint/internal/api"
	"github.com/limbo/waypoint/internal/dashboard"
	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/internal/service"
	"github.com/limbo/waypoint/pkg/entity"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateNotFound
	stateConflict
	stateWrongOwner
	stateKindMismatch
	stateDateNotAllowed
	stateDegraded
)

var (
	userID  = uuid.New()
	goalID  = uuid.New()
	entryID = uuid.New()
)

func testGoal() *entity.Goal {
	return &entity.Goal{
		ID:          goalID,
		UserID:      userID,
		Title:       "run weekly",
		GoalType:    entity.GoalTypeHabit,
		TrackerType: entity.TrackerCheckin,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func testEntry() *entity.Entry {
	done := true
	return &entity.Entry{
		ID:        entryID,
		GoalID:    goalID,
		IsDone:    &done,
		EntryDate: time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now(),
	}
}

// authed builds a request carrying the uid the way AuthMiddleware would.
func authed(method, target string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	return r.WithContext(context.WithValue(r.Context(), "User-ID", userID))
}

// withURLParam attaches a chi route context so handlers can read {name}.
func withURLParam(r *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type userServiceMock struct {
	state mockState
}

func (m *userServiceMock) Register(ctx context.Context, req *service.RegisterRequest) (*entity.User, error) {
	switch m.state {
	case stateSuccess:
		return &entity.User{ID: userID, Name: req.Name}, nil
	case stateConflict:
		return nil, errorvalues.ErrUserExists
	default:
		return nil, errors.New("mocked error")
	}
}

func (m *userServiceMock) Login(ctx context.Context, name, password string) (*entity.User, error) {
	switch m.state {
	case stateSuccess:
		return &entity.User{ID: userID, Name: name}, nil
	case stateNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateWrongOwner:
		return nil, errorvalues.ErrWrongCredentials
	default:
		return nil, errors.New("mocked error")
	}
}

func (m *userServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	switch m.state {
	case stateSuccess:
		return &entity.User{ID: id, Name: "test_name"}, nil
	case stateNotFound:
		return nil, errorvalues.ErrUserNotFound
	default:
		return nil, errors.New("mocked error")
	}
}

func (m *userServiceMock) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	switch m.state {
	case stateSuccess:
		return nil
	case stateWrongOwner:
		return errorvalues.ErrWrongCredentials
	default:
		return errors.New("mocked error")
	}
}

type goalsServiceMock struct {
	state mockState
}

func (m *goalsServiceMock) lookupErr() error {
	switch m.state {
	case stateNotFound:
		return errorvalues.ErrGoalNotFound
	case stateWrongOwner:
		return errorvalues.ErrWrongOwner
	case stateConflict:
		return errorvalues.ErrTargetNotNumeric
	default:
		return errors.New("mocked error")
	}
}

func (m *goalsServiceMock) CreateGoal(ctx context.Context, uid uuid.UUID, req *service.CreateGoalRequest) (*entity.Goal, error) {
	switch m.state {
	case stateSuccess:
		return testGoal(), nil
	case stateConflict:
		return nil, errorvalues.ErrTargetNotNumeric
	case stateNotFound:
		return nil, errorvalues.ErrUserNotFound
	default:
		return nil, errors.New("mocked error")
	}
}

func (m *goalsServiceMock) GetGoal(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error) {
	if m.state == stateSuccess {
		return testGoal(), nil
	}
	return nil, m.lookupErr()
}

func (m *goalsServiceMock) ListGoals(ctx context.Context, uid uuid.UUID) ([]entity.Goal, error) {
	if m.state == stateSuccess {
		return []entity.Goal{*testGoal()}, nil
	}
	return nil, errors.New("mocked error")
}

func (m *goalsServiceMock) UpdateGoal(ctx context.Context, goalID, userID uuid.UUID, req *service.UpdateGoalRequest) (*entity.Goal, error) {
	if m.state == stateSuccess {
		g := testGoal()
		g.Title = req.Title
		return g, nil
	}
	return nil, m.lookupErr()
}

func (m *goalsServiceMock) SetPinned(ctx context.Context, goalID, userID uuid.UUID, pinned bool) error {
	if m.state == stateSuccess {
		return nil
	}
	return m.lookupErr()
}

func (m *goalsServiceMock) DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	if m.state == stateSuccess {
		return nil
	}
	return m.lookupErr()
}

type entriesServiceMock struct {
	state mockState
}

func (m *entriesServiceMock) LogEntry(ctx context.Context, goalID, userID uuid.UUID, req *service.LogEntryRequest) (*entity.Entry, error) {
	switch m.state {
	case stateSuccess:
		return testEntry(), nil
	case stateKindMismatch:
		return nil, errorvalues.ErrEntryKindMismatch
	case stateDateNotAllowed:
		return nil, errorvalues.ErrEntryDateNotAllowed
	case stateNotFound:
		return nil, errorvalues.ErrGoalNotFound
	default:
		return nil, errors.New("mocked error")
	}
}

func (m *entriesServiceMock) ListEntries(ctx context.Context, goalID, userID uuid.UUID) ([]entity.Entry, error) {
	switch m.state {
	case stateSuccess:
		return []entity.Entry{*testEntry()}, nil
	case stateWrongOwner:
		return nil, errorvalues.ErrWrongOwner
	default:
		return nil, errors.New("mocked error")
	}
}

func (m *entriesServiceMock) DeleteEntry(ctx context.Context, entryID, userID uuid.UUID) error {
	switch m.state {
	case stateSuccess:
		return nil
	case stateNotFound:
		return errorvalues.ErrEntryNotFound
	default:
		return errors.New("mocked error")
	}
}

type memosServiceMock struct {
	state mockState
}

func (m *memosServiceMock) SaveMemo(ctx context.Context, uid uuid.UUID, req *service.MemoRequest) error {
	switch m.state {
	case stateSuccess:
		return nil
	case stateNotFound:
		return errorvalues.ErrUserNotFound
	default:
		return errors.New("mocked error")
	}
}

func (m *memosServiceMock) GetMemo(ctx context.Context, uid uuid.UUID, topic string) (*entity.Memo, error) {
	switch m.state {
	case stateSuccess:
		return &entity.Memo{UserID: uid, Topic: topic, Body: "notes", UpdatedAt: time.Now()}, nil
	case stateNotFound:
		return nil, errorvalues.ErrMemoNotFound
	default:
		return nil, errors.New("mocked error")
	}
}

func (m *memosServiceMock) ListMemos(ctx context.Context, uid uuid.UUID) ([]entity.Memo, error) {
	if m.state == stateSuccess {
		return []entity.Memo{{UserID: uid, Topic: "reading", Body: "notes"}}, nil
	}
	return nil, errors.New("mocked error")
}

func (m *memosServiceMock) DeleteMemo(ctx context.Context, uid uuid.UUID, topic string) error {
	switch m.state {
	case stateSuccess:
		return nil
	case stateNotFound:
		return errorvalues.ErrMemoNotFound
	default:
		return errors.New("mocked error")
	}
}

type dashboardServiceMock struct {
	state mockState
}

func (m *dashboardServiceMock) BuildDashboard(ctx context.Context, uid uuid.UUID) (dashboard.ViewModel, error) {
	vm := dashboard.ViewModel{
		Pinned: []dashboard.GoalCard{{Goal: *testGoal(), Summary: "no entries yet"}},
		Other:  []dashboard.GoalCard{},
	}
	if m.state == stateDegraded {
		return dashboard.ViewModel{Pinned: []dashboard.GoalCard{}, Other: []dashboard.GoalCard{}}, errors.New("mocked read error")
	}
	return vm, nil
}

func (m *dashboardServiceMock) GoalDetail(ctx context.Context, goalID, userID uuid.UUID) (*dashboard.GoalDetail, error) {
	switch m.state {
	case stateSuccess:
		return &dashboard.GoalDetail{
			Goal:    *testGoal(),
			Summary: "no entries yet",
			History: []entity.Entry{},
		}, nil
	case stateWrongOwner:
		return nil, errorvalues.ErrWrongOwner
	default:
		return nil, errors.New("mocked error")
	}
}

type jwtServiceMock struct {
	claims *api.JWTClaims
	err    error
}

func (m *jwtServiceMock) GenerateToken(user *entity.User) (string, error) {
	return "mocked.token", nil
}

func (m *jwtServiceMock) ParseToken(tokenString string) (*api.JWTClaims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func TestRegister(t *testing.T) {
	body, err := sonic.ConfigDefault.Marshal(api.RegisterRequest{
		Name:     "test_name",
		Password: "test_password",
	})
	require.NoError(t, err)
	mock := &userServiceMock{}
	serv := api.New(&api.ServicesList{UserService: mock})

	t.Run("registered", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader(body))
		mock.state = stateSuccess
		serv.Register(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("user exists", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader(body))
		mock.state = stateConflict
		serv.Register(rr, req)
		assert.Equal(t, http.StatusConflict, rr.Result().StatusCode)
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/register", nil)
		mock.state = stateSuccess
		serv.Register(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestLogin(t *testing.T) {
	body, err := sonic.ConfigDefault.Marshal(api.LoginRequest{
		Name:     "test_name",
		Password: "test_password",
	})
	require.NoError(t, err)
	mock := &userServiceMock{}
	serv := api.New(&api.ServicesList{
		UserService: mock,
		JwtService:  &jwtServiceMock{},
	})

	testCases := []struct {
		name         string
		state        mockState
		expectedCode int
	}{
		{"logged in", stateSuccess, http.StatusOK},
		{"user not found", stateNotFound, http.StatusNotFound},
		{"wrong password", stateWrongOwner, http.StatusForbidden},
		{"service error", stateDBError, http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
			mock.state = tc.state
			serv.Login(rr, req)
			assert.Equal(t, tc.expectedCode, rr.Result().StatusCode)
		})
	}
	t.Run("token in response", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
		mock.state = stateSuccess
		serv.Login(rr, req)
		result := make(map[string]any)
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&result))
		assert.Equal(t, "mocked.token", result["token"])
	})
}

func TestDeleteAccount(t *testing.T) {
	mock := &userServiceMock{}
	serv := api.New(&api.ServicesList{UserService: mock})
	body := []byte(`{"password": "test_password"}`)

	testCases := []struct {
		name         string
		state        mockState
		expectedCode int
	}{
		{"deleted", stateSuccess, http.StatusNoContent},
		{"wrong password", stateWrongOwner, http.StatusForbidden},
		{"service error", stateDBError, http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mock.state = tc.state
			serv.DeleteAccount(rr, authed(http.MethodDelete, "/api/v1/account", bytes.NewReader(body)))
			assert.Equal(t, tc.expectedCode, rr.Result().StatusCode)
		})
	}
}

func TestCreateGoal(t *testing.T) {
	mock := &goalsServiceMock{}
	serv := api.New(&api.ServicesList{GoalsService: mock})
	target := decimal.NewFromInt(68)
	body, err := sonic.ConfigDefault.Marshal(api.GoalRequest{
		Title:       "weight",
		GoalType:    "mid_term",
		TrackerType: "numeric",
		Unit:        "kg",
		TargetValue: &target,
		TargetDate:  "2024-12-31",
	})
	require.NoError(t, err)

	testCases := []struct {
		name         string
		state        mockState
		body         io.Reader
		expectedCode int
	}{
		{"created", stateSuccess, bytes.NewReader(body), http.StatusCreated},
		{"bad tracker config", stateConflict, bytes.NewReader(body), http.StatusBadRequest},
		{"owner not found", stateNotFound, bytes.NewReader(body), http.StatusNotFound},
		{"corrupted body", stateSuccess, bytes.NewReader([]byte("corrupted")), http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mock.state = tc.state
			serv.CreateGoal(rr, authed(http.MethodPost, "/api/v1/goals", tc.body))
			assert.Equal(t, tc.expectedCode, rr.Result().StatusCode)
		})
	}
	t.Run("bad target date", func(t *testing.T) {
		badBody, err := sonic.ConfigDefault.Marshal(api.GoalRequest{
			Title:      "weight",
			GoalType:   "mid_term",
			TargetDate: "soon",
		})
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		serv.CreateGoal(rr, authed(http.MethodPost, "/api/v1/goals", bytes.NewReader(badBody)))
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", bytes.NewReader(body))
		serv.CreateGoal(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
}

func TestGetGoals(t *testing.T) {
	mock := &goalsServiceMock{}
	serv := api.New(&api.ServicesList{GoalsService: mock})

	t.Run("listed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		serv.GetGoals(rr, authed(http.MethodGet, "/api/v1/goals", nil))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		result := make(map[string][]entity.Goal)
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&result))
		assert.Len(t, result["goals"], 1)
	})
	t.Run("service error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateDBError
		serv.GetGoals(rr, authed(http.MethodGet, "/api/v1/goals", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}

func TestGetGoal(t *testing.T) {
	mock := &goalsServiceMock{}
	serv := api.New(&api.ServicesList{GoalsService: mock})

	testCases := []struct {
		name         string
		state        mockState
		expectedCode int
	}{
		{"found", stateSuccess, http.StatusOK},
		{"not found", stateNotFound, http.StatusNotFound},
		{"foreign goal hidden", stateWrongOwner, http.StatusNotFound},
		{"service error", stateDBError, http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mock.state = tc.state
			req := withURLParam(authed(http.MethodGet, "/api/v1/goals/"+goalID.String(), nil), "id", goalID.String())
			serv.GetGoal(rr, req)
			assert.Equal(t, tc.expectedCode, rr.Result().StatusCode)
		})
	}
	t.Run("invalid id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		req := withURLParam(authed(http.MethodGet, "/api/v1/goals/nonsense", nil), "id", "nonsense")
		serv.GetGoal(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestUpdateGoal(t *testing.T) {
	mock := &goalsServiceMock{}
	serv := api.New(&api.ServicesList{GoalsService: mock})
	body, err := sonic.ConfigDefault.Marshal(api.GoalRequest{
		Title:    "renamed",
		GoalType: "habit",
	})
	require.NoError(t, err)

	testCases := []struct {
		name         string
		state        mockState
		expectedCode int
	}{
		{"updated", stateSuccess, http.StatusOK},
		{"bad tracker config", stateConflict, http.StatusBadRequest},
		{"not found", stateNotFound, http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mock.state = tc.state
			req := withURLParam(authed(http.MethodPut, "/api/v1/goals/"+goalID.String(), bytes.NewReader(body)), "id", goalID.String())
			serv.UpdateGoal(rr, req)
			assert.Equal(t, tc.expectedCode, rr.Result().StatusCode)
		})
	}
}

func TestPinGoal(t *testing.T) {
	mock := &goalsServiceMock{}
	serv := api.New(&api.ServicesList{GoalsService: mock})
	body := []byte(`{"is_pinned": true}`)

	t.Run("pinned", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		req := withURLParam(authed(http.MethodPatch, "/api/v1/goals/"+goalID.String()+"/pin", bytes.NewReader(body)), "id", goalID.String())
		serv.PinGoal(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateNotFound
		req := withURLParam(authed(http.MethodPatch, "/api/v1/goals/"+goalID.String()+"/pin", bytes.NewReader(body)), "id", goalID.String())
		serv.PinGoal(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestDeleteGoal(t *testing.T) {
	mock := &goalsServiceMock{}
	serv := api.New(&api.ServicesList{GoalsService: mock})

	t.Run("deleted", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		req := withURLParam(authed(http.MethodDelete, "/api/v1/goals/"+goalID.String(), nil), "id", goalID.String())
		serv.DeleteGoal(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Result().StatusCode)
	})
	t.Run("foreign goal hidden", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateWrongOwner
		req := withURLParam(authed(http.MethodDelete, "/api/v1/goals/"+goalID.String(), nil), "id", goalID.String())
		serv.DeleteGoal(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestLogEntry(t *testing.T) {
	mock := &entriesServiceMock{}
	serv := api.New(&api.ServicesList{EntriesService: mock})
	done := true
	body, err := sonic.ConfigDefault.Marshal(api.EntryRequest{
		EntryDate: "2024-06-14",
		IsDone:    &done,
	})
	require.NoError(t, err)

	testCases := []struct {
		name         string
		state        mockState
		body         io.Reader
		expectedCode int
	}{
		{"logged", stateSuccess, bytes.NewReader(body), http.StatusCreated},
		{"kind mismatch", stateKindMismatch, bytes.NewReader(body), http.StatusBadRequest},
		{"future checkin", stateDateNotAllowed, bytes.NewReader(body), http.StatusBadRequest},
		{"goal not found", stateNotFound, bytes.NewReader(body), http.StatusNotFound},
		{"corrupted body", stateSuccess, bytes.NewReader([]byte("corrupted")), http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mock.state = tc.state
			req := withURLParam(authed(http.MethodPost, "/api/v1/goals/"+goalID.String()+"/entries", tc.body), "id", goalID.String())
			serv.LogEntry(rr, req)
			assert.Equal(t, tc.expectedCode, rr.Result().StatusCode)
		})
	}
	t.Run("bad entry date", func(t *testing.T) {
		badBody := []byte(`{"entry_date": "yesterday", "is_done": true}`)
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		req := withURLParam(authed(http.MethodPost, "/api/v1/goals/"+goalID.String()+"/entries", bytes.NewReader(badBody)), "id", goalID.String())
		serv.LogEntry(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestGetEntries(t *testing.T) {
	mock := &entriesServiceMock{}
	serv := api.New(&api.ServicesList{EntriesService: mock})

	t.Run("listed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		req := withURLParam(authed(http.MethodGet, "/api/v1/goals/"+goalID.String()+"/entries", nil), "id", goalID.String())
		serv.GetEntries(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		result := make(map[string][]entity.Entry)
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&result))
		assert.Len(t, result["entries"], 1)
	})
	t.Run("foreign goal hidden", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateWrongOwner
		req := withURLParam(authed(http.MethodGet, "/api/v1/goals/"+goalID.String()+"/entries", nil), "id", goalID.String())
		serv.GetEntries(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestDeleteEntry(t *testing.T) {
	mock := &entriesServiceMock{}
	serv := api.New(&api.ServicesList{EntriesService: mock})

	testCases := []struct {
		name         string
		state        mockState
		expectedCode int
	}{
		{"deleted", stateSuccess, http.StatusNoContent},
		{"not found", stateNotFound, http.StatusNotFound},
		{"service error", stateDBError, http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mock.state = tc.state
			req := withURLParam(authed(http.MethodDelete, "/api/v1/entries/"+entryID.String(), nil), "id", entryID.String())
			serv.DeleteEntry(rr, req)
			assert.Equal(t, tc.expectedCode, rr.Result().StatusCode)
		})
	}
}

func TestGetDashboard(t *testing.T) {
	mock := &dashboardServiceMock{}
	serv := api.New(&api.ServicesList{DashboardService: mock})

	t.Run("built", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		serv.GetDashboard(rr, authed(http.MethodGet, "/api/v1/dashboard", nil))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var vm dashboard.ViewModel
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&vm))
		assert.Len(t, vm.Pinned, 1)
	})
	t.Run("degraded read still answers", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateDegraded
		serv.GetDashboard(rr, authed(http.MethodGet, "/api/v1/dashboard", nil))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var vm dashboard.ViewModel
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&vm))
		assert.Empty(t, vm.Pinned)
		assert.Empty(t, vm.Other)
	})
}

func TestGetGoalDetail(t *testing.T) {
	mock := &dashboardServiceMock{}
	serv := api.New(&api.ServicesList{DashboardService: mock})

	t.Run("built", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		req := withURLParam(authed(http.MethodGet, "/api/v1/goals/"+goalID.String()+"/detail", nil), "id", goalID.String())
		serv.GetGoalDetail(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("foreign goal hidden", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateWrongOwner
		req := withURLParam(authed(http.MethodGet, "/api/v1/goals/"+goalID.String()+"/detail", nil), "id", goalID.String())
		serv.GetGoalDetail(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestMemoHandlers(t *testing.T) {
	mock := &memosServiceMock{}
	serv := api.New(&api.ServicesList{MemosService: mock})
	body := []byte(`{"body": "reread chapter 4"}`)

	t.Run("saved", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		req := withURLParam(authed(http.MethodPut, "/api/v1/memos/reading", bytes.NewReader(body)), "topic", "reading")
		serv.SaveMemo(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("save for missing user", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateNotFound
		req := withURLParam(authed(http.MethodPut, "/api/v1/memos/reading", bytes.NewReader(body)), "topic", "reading")
		serv.SaveMemo(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("fetched", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		req := withURLParam(authed(http.MethodGet, "/api/v1/memos/reading", nil), "topic", "reading")
		serv.GetMemo(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var memo entity.Memo
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&memo))
		assert.Equal(t, "reading", memo.Topic)
	})
	t.Run("memo not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateNotFound
		req := withURLParam(authed(http.MethodGet, "/api/v1/memos/reading", nil), "topic", "reading")
		serv.GetMemo(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("listed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		serv.GetMemos(rr, authed(http.MethodGet, "/api/v1/memos", nil))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("deleted", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mock.state = stateSuccess
		req := withURLParam(authed(http.MethodDelete, "/api/v1/memos/reading", nil), "topic", "reading")
		serv.DeleteMemo(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Result().StatusCode)
	})
}

func testUIDHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := api.GetUIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"uid": "` + uid.String() + `"}`))
}

func TestAuthMiddleware(t *testing.T) {
	users := &userServiceMock{state: stateSuccess}
	jwtMock := &jwtServiceMock{}
	serv := api.New(&api.ServicesList{
		UserService: users,
		JwtService:  jwtMock,
	})
	handler := serv.AuthMiddleware(http.HandlerFunc(testUIDHandler))

	freshClaims := func() *api.JWTClaims {
		return &api.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				NotBefore: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
			UserID:   userID.String(),
			Username: "test_name",
		}
	}

	t.Run("successful auth", func(t *testing.T) {
		jwtMock.claims = freshClaims()
		jwtMock.err = nil
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		req.Header.Set("Authorization", "Bearer token")
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("missing header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("invalid token", func(t *testing.T) {
		jwtMock.err = errorvalues.ErrInvalidToken
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		req.Header.Set("Authorization", "Bearer token")
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("expired token", func(t *testing.T) {
		claims := freshClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		jwtMock.claims = claims
		jwtMock.err = nil
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		req.Header.Set("Authorization", "Bearer token")
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("vanished user", func(t *testing.T) {
		jwtMock.claims = freshClaims()
		jwtMock.err = nil
		users.state = stateNotFound
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/endpoint", nil)
		req.Header.Set("Authorization", "Bearer token")
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}
