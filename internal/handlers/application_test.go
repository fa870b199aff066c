package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matchup-service/internal/apperrors"
	"matchup-service/internal/middleware"
	"matchup-service/internal/mocks"
	"matchup-service/internal/models"
	"matchup-service/internal/services"
)

func setupApplicationRouter(handler *ApplicationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, int64(2))
		c.Next()
	})
	r.POST("/matches/:match_id/applications", handler.Submit)
	r.GET("/matches/:match_id/applications", handler.ListByMatch)
	r.POST("/applications/:application_id/accept", handler.Accept)
	r.POST("/applications/:application_id/reject", handler.Reject)
	r.DELETE("/applications/:application_id", handler.Withdraw)
	return r
}

func TestSubmitApplicationSuccess(t *testing.T) {
	matches := new(mocks.MatchRepositoryMock)
	roster := new(mocks.RosterRepositoryMock)
	lifecycle := new(LifecycleMock)
	handler := NewApplicationHandler(matches, new(mocks.ApplicationRepositoryMock), roster, lifecycle, nil)
	router := setupApplicationRouter(handler)

	matches.On("GetByID", mock.Anything, int64(5)).
		Return(models.Match{ID: 5, HostUserID: 1, SportType: models.SportBoxing, Status: models.MatchOpen}, nil).Once()
	roster.On("GetPlayer", mock.Anything, int64(30)).
		Return(models.Player{ID: 30, UserID: 2, Name: "kim"}, nil).Once()
	lifecycle.On("SubmitApplication", mock.Anything, mock.MatchedBy(func(in services.SubmitApplicationInput) bool {
		return in.MatchID == 5 && in.ApplicantUserID == 2 && in.ApplicantName == "kim" && in.SportLabel == "BOXING"
	})).Return(models.Application{ID: 10, MatchID: 5, ApplicantUserID: 2, Status: models.ApplicationPending}, nil).Once()

	body := bytes.NewBufferString(`{"applicant_player_id":30,"message":"let's go"}`)
	req := httptest.NewRequest(http.MethodPost, "/matches/5/applications", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	matches.AssertExpectations(t)
	roster.AssertExpectations(t)
	lifecycle.AssertExpectations(t)
}

func TestSubmitApplicationDuplicateConflict(t *testing.T) {
	matches := new(mocks.MatchRepositoryMock)
	roster := new(mocks.RosterRepositoryMock)
	lifecycle := new(LifecycleMock)
	handler := NewApplicationHandler(matches, new(mocks.ApplicationRepositoryMock), roster, lifecycle, nil)
	router := setupApplicationRouter(handler)

	matches.On("GetByID", mock.Anything, int64(5)).
		Return(models.Match{ID: 5, HostUserID: 1, SportType: models.SportBoxing, Status: models.MatchOpen}, nil).Once()
	roster.On("GetPlayer", mock.Anything, int64(30)).
		Return(models.Player{ID: 30, UserID: 2, Name: "kim"}, nil).Once()
	lifecycle.On("SubmitApplication", mock.Anything, mock.Anything).
		Return(models.Application{}, apperrors.DuplicateApplication("player already has a live application")).Once()

	req := httptest.NewRequest(http.MethodPost, "/matches/5/applications", bytes.NewBufferString(`{"applicant_player_id":30}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	lifecycle.AssertExpectations(t)
}

func TestListApplicationsHostOnly(t *testing.T) {
	matches := new(mocks.MatchRepositoryMock)
	handler := NewApplicationHandler(matches, new(mocks.ApplicationRepositoryMock), new(mocks.RosterRepositoryMock), new(LifecycleMock), nil)
	router := setupApplicationRouter(handler)

	matches.On("GetByID", mock.Anything, int64(5)).
		Return(models.Match{ID: 5, HostUserID: 9, Status: models.MatchOpen}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/matches/5/applications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	matches.AssertExpectations(t)
}

func TestListApplicationsSuccess(t *testing.T) {
	matches := new(mocks.MatchRepositoryMock)
	apps := new(mocks.ApplicationRepositoryMock)
	handler := NewApplicationHandler(matches, apps, new(mocks.RosterRepositoryMock), new(LifecycleMock), nil)
	router := setupApplicationRouter(handler)

	matches.On("GetByID", mock.Anything, int64(5)).
		Return(models.Match{ID: 5, HostUserID: 2, Status: models.MatchOpen}, nil).Once()
	apps.On("ListByMatch", mock.Anything, int64(5)).
		Return([]models.Application{{ID: 10, MatchID: 5}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/matches/5/applications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	matches.AssertExpectations(t)
	apps.AssertExpectations(t)
}

func TestAcceptApplicationSuccess(t *testing.T) {
	lifecycle := new(LifecycleMock)
	handler := NewApplicationHandler(new(mocks.MatchRepositoryMock), new(mocks.ApplicationRepositoryMock), new(mocks.RosterRepositoryMock), lifecycle, nil)
	router := setupApplicationRouter(handler)

	lifecycle.On("AcceptApplication", mock.Anything, int64(10), int64(2)).
		Return(services.AcceptOutcome{
			Match:    models.Match{ID: 5, Status: models.MatchScheduled},
			Accepted: models.Application{ID: 10, Status: models.ApplicationAccepted},
		}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/applications/10/accept", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	lifecycle.AssertExpectations(t)
}

func TestAcceptApplicationConflict(t *testing.T) {
	lifecycle := new(LifecycleMock)
	handler := NewApplicationHandler(new(mocks.MatchRepositoryMock), new(mocks.ApplicationRepositoryMock), new(mocks.RosterRepositoryMock), lifecycle, nil)
	router := setupApplicationRouter(handler)

	lifecycle.On("AcceptApplication", mock.Anything, int64(10), int64(2)).
		Return(services.AcceptOutcome{}, apperrors.InvalidState("application is not pending")).Once()

	req := httptest.NewRequest(http.MethodPost, "/applications/10/accept", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	lifecycle.AssertExpectations(t)
}

func TestRejectApplicationSuccess(t *testing.T) {
	lifecycle := new(LifecycleMock)
	handler := NewApplicationHandler(new(mocks.MatchRepositoryMock), new(mocks.ApplicationRepositoryMock), new(mocks.RosterRepositoryMock), lifecycle, nil)
	router := setupApplicationRouter(handler)

	lifecycle.On("RejectApplication", mock.Anything, int64(10), int64(2)).
		Return(models.Application{ID: 10, Status: models.ApplicationRejected}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/applications/10/reject", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	lifecycle.AssertExpectations(t)
}

func TestWithdrawApplicationSuccess(t *testing.T) {
	lifecycle := new(LifecycleMock)
	handler := NewApplicationHandler(new(mocks.MatchRepositoryMock), new(mocks.ApplicationRepositoryMock), new(mocks.RosterRepositoryMock), lifecycle, nil)
	router := setupApplicationRouter(handler)

	lifecycle.On("CancelApplication", mock.Anything, int64(10), int64(2)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/applications/10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	lifecycle.AssertExpectations(t)
}
