package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"finalproject_backend/internal/middleware"
	"finalproject_backend/internal/model"
	"finalproject_backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMemberID = "42"

func init() {
	gin.SetMode(gin.TestMode)
}

type mockQuestService struct {
	mock.Mock
}

func (m *mockQuestService) GetQuestList(ctx context.Context, userID string, day model.DayKey) ([]model.QuestView, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuestView), args.Error(1)
}

func (m *mockQuestService) IncreaseProgress(ctx context.Context, userID, questType string, day model.DayKey) error {
	args := m.Called(ctx, userID, questType, day)
	return args.Error(0)
}

func (m *mockQuestService) ClaimReward(ctx context.Context, userID, questType string, day model.DayKey) (int, error) {
	args := m.Called(ctx, userID, questType, day)
	return args.Int(0), args.Error(1)
}

type mockReviewService struct {
	mock.Mock
}

func (m *mockReviewService) CreateReview(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewService) ListReviewsByContents(ctx context.Context, contentsID int64) ([]*model.Review, error) {
	args := m.Called(ctx, contentsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *mockReviewService) GetMyReview(ctx context.Context, loginID string, contentsID int64) (*model.Review, error) {
	args := m.Called(ctx, loginID, contentsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *mockReviewService) GetReview(ctx context.Context, reviewNo int64) (*model.Review, error) {
	args := m.Called(ctx, reviewNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *mockReviewService) UpdateReview(ctx context.Context, reviewNo int64, patch model.ReviewPatch) error {
	args := m.Called(ctx, reviewNo, patch)
	return args.Error(0)
}

func (m *mockReviewService) DeleteReview(ctx context.Context, reviewNo int64) error {
	args := m.Called(ctx, reviewNo)
	return args.Error(0)
}

type mockMemberService struct {
	mock.Mock
}

func (m *mockMemberService) RegisterMember(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *mockMemberService) GetMember(ctx context.Context, memberID string) (*model.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

type testServices struct {
	quests  *mockQuestService
	reviews *mockReviewService
	members *mockMemberService
}

func newTestRouter(t *testing.T, clock DayClock) (*gin.Engine, *testServices) {
	t.Helper()

	s := &testServices{
		quests:  &mockQuestService{},
		reviews: &mockReviewService{},
		members: &mockMemberService{},
	}
	t.Cleanup(func() {
		s.quests.AssertExpectations(t)
		s.reviews.AssertExpectations(t)
		s.members.AssertExpectations(t)
	})

	a := auth.NewTelegramAuth("", true)
	authz := middleware.NewAuthorization(s.members)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewMemberRoutes(v1, s.members, a)
	NewQuestRoutes(v1, s.quests, a, authz, clock)
	NewReviewRoutes(v1, s.reviews, s.quests, a, authz, clock)

	return router, s
}

// expectMember registers the caller with the membership check.
func (s *testServices) expectMember() {
	s.members.On("GetMember", mock.Anything, testMemberID).
		Return(&model.Member{MemberID: testMemberID}, nil)
}

func authHeader() string {
	values := url.Values{
		"user":      {`{"id":42,"username":"tester"}`},
		"auth_date": {"1700000000"},
	}
	return "Telegram " + values.Encode()
}

func doRequest(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", authHeader())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
