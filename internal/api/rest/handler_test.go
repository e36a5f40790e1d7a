package rest_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/api/middleware"
	"github.com/feral-file/ff-tokenomics/internal/api/rest"
	"github.com/feral-file/ff-tokenomics/internal/api/shared/constants"
	"github.com/feral-file/ff-tokenomics/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-tokenomics/internal/api/shared/errors"
	"github.com/feral-file/ff-tokenomics/internal/distribution"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/mocks"
	"github.com/feral-file/ff-tokenomics/internal/store"
)

const (
	testAPIKey = "test-api-key"
	voter      = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	proposalID = "5d7c2b48-9f0e-4a51-8d0c-7b3a1e2f4c6d"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockAPIExecutor, *gomock.Controller) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(false, exec), middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return router, exec, ctrl
}

func doRequest(router *gin.Engine, method, path string, body interface{}, authorized bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthCheck(t *testing.T) {
	router, _, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	w := doRequest(router, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"ff-tokenomics-api"}`, w.Body.String())
}

func TestGetDistributionStats(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	exec.EXPECT().
		GetDistributionStats(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, got *time.Time) (*distribution.TokenDistributionStats, error) {
			require.NotNil(t, got)
			assert.True(t, at.Equal(*got))
			return &distribution.TokenDistributionStats{At: at, TotalSupply: amount.FromUint64(1000)}, nil
		})

	w := doRequest(router, http.MethodGet, "/api/v1/distribution/stats?at=2025-07-01T00:00:00Z", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var stats distribution.TokenDistributionStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "1000", stats.TotalSupply.String())
}

func TestGetDistributionStats_NoDistribution(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	exec.EXPECT().GetDistributionStats(gomock.Any(), nil).Return(nil, apierrors.NewNotFoundError("No distribution configured"))

	w := doRequest(router, http.MethodGet, "/api/v1/distribution/stats", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierrors.ErrCodeNotFound, decodeAPIError(t, w).Code)
}

func TestGetAllocationSchedule(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	exec.EXPECT().GetAllocationSchedule(gomock.Any(), "team", uint64(48)).Return(&dto.ScheduleResponse{Category: "team"}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/distribution/schedule/team?months=48", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/distribution/schedule/team?months=5000", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetUpcomingReleases(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectMonths   int
		expectSource   string
		expectedStatus int
	}{
		{name: "defaults", query: "", expectMonths: domain.DefaultUpcomingLookaheadMonths, expectSource: constants.UPCOMING_SOURCE_GRANTS, expectedStatus: http.StatusOK},
		{name: "allocations", query: "?months=12&source=allocations", expectMonths: 12, expectSource: constants.UPCOMING_SOURCE_ALLOCATIONS, expectedStatus: http.StatusOK},
		{name: "too many months", query: "?months=1000", expectedStatus: http.StatusUnprocessableEntity},
		{name: "negative months", query: "?months=-1", expectedStatus: http.StatusUnprocessableEntity},
		{name: "unknown source", query: "?source=treasury", expectedStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, exec, ctrl := setupTestRouter(t)
			defer ctrl.Finish()

			if tt.expectedStatus == http.StatusOK {
				exec.EXPECT().
					GetUpcomingReleases(gomock.Any(), tt.expectMonths, tt.expectSource).
					Return(&dto.UpcomingReleasesResponse{Source: tt.expectSource, Months: tt.expectMonths}, nil)
			}

			w := doRequest(router, http.MethodGet, "/api/v1/distribution/upcoming"+tt.query, nil, false)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGetVotingPower(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	quadratic := domain.VotingStrategyQuadratic
	exec.EXPECT().
		GetVotingPower(gomock.Any(), voter, &quadratic).
		Return(&dto.VotingPowerResponse{Address: voter, Strategy: quadratic, Power: amount.FromUint64(12)}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/voting-power/"+voter+"?strategy=quadratic", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"power":"12"`)

	w = doRequest(router, http.MethodGet, "/api/v1/voting-power/0x1234", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/voting-power/"+voter+"?strategy=conviction", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListProposals(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	limit := constants.MAX_PAGE_SIZE
	offset := uint64(40)
	exec.EXPECT().
		ListProposals(
			gomock.Any(),
			[]domain.ProposalStatus{domain.ProposalStatusActive, domain.ProposalStatusQueued},
			"",
			&limit,
			&offset,
			store.SortOrderAsc,
		).
		Return(&dto.ProposalListResponse{Proposals: []dto.ProposalResponse{}, Total: 0}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/proposals?status=active,queued&limit=500&offset=40&order=asc", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, w.Body.String())
}

func TestListProposals_InvalidStatus(t *testing.T) {
	router, _, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	w := doRequest(router, http.MethodGet, "/api/v1/proposals?status=approved", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetProposal(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	exec.EXPECT().GetProposal(gomock.Any(), proposalID).Return(&dto.ProposalResponse{ID: proposalID, Status: domain.ProposalStatusActive}, nil)
	exec.EXPECT().GetProposal(gomock.Any(), "missing").Return(nil, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/proposals/"+proposalID, nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"active"`)

	w = doRequest(router, http.MethodGet, "/api/v1/proposals/missing", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListVotes(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	limit := constants.DEFAULT_VOTES_LIMIT
	offset := uint64(0)
	exec.EXPECT().ListVotes(gomock.Any(), proposalID, &limit, &offset).Return(&dto.VoteListResponse{Votes: []dto.VoteResponse{}}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/proposals/"+proposalID+"/votes", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProposal(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	valid := dto.CreateProposalRequest{
		Proposer:  voter,
		Title:     "Fund the grants program",
		StartTime: start,
		EndTime:   start.Add(7 * 24 * time.Hour),
	}

	t.Run("created", func(t *testing.T) {
		router, exec, ctrl := setupTestRouter(t)
		defer ctrl.Finish()

		exec.EXPECT().CreateProposal(gomock.Any(), gomock.Any()).Return(&dto.ProposalResponse{ID: proposalID, Status: domain.ProposalStatusPending}, nil)

		w := doRequest(router, http.MethodPost, "/api/v1/proposals", valid, true)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unauthorized", func(t *testing.T) {
		router, _, ctrl := setupTestRouter(t)
		defer ctrl.Finish()

		w := doRequest(router, http.MethodPost, "/api/v1/proposals", valid, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		router, _, ctrl := setupTestRouter(t)
		defer ctrl.Finish()

		invalid := valid
		invalid.EndTime = start
		w := doRequest(router, http.MethodPost, "/api/v1/proposals", invalid, true)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeAPIError(t, w).Code)
	})
}

func TestCastVote(t *testing.T) {
	tests := []struct {
		name           string
		body           dto.CastVoteRequest
		execErr        error
		expectCall     bool
		expectedStatus int
	}{
		{
			name:           "recorded",
			body:           dto.CastVoteRequest{Voter: voter, Support: "for"},
			expectCall:     true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "already voted",
			body:           dto.CastVoteRequest{Voter: voter, Support: "for"},
			execErr:        apierrors.NewStateConflictError("Failed to cast vote", "already voted"),
			expectCall:     true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown proposal",
			body:           dto.CastVoteRequest{Voter: voter, Support: "for"},
			execErr:        apierrors.NewNotFoundError("Proposal not found"),
			expectCall:     true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid support",
			body:           dto.CastVoteRequest{Voter: voter, Support: "maybe"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid voter",
			body:           dto.CastVoteRequest{Voter: "alice", Support: "for"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, exec, ctrl := setupTestRouter(t)
			defer ctrl.Finish()

			if tt.expectCall {
				if tt.execErr != nil {
					exec.EXPECT().CastVote(gomock.Any(), proposalID, tt.body).Return(nil, tt.execErr)
				} else {
					exec.EXPECT().CastVote(gomock.Any(), proposalID, tt.body).Return(&dto.CastVoteResponse{}, nil)
				}
			}

			w := doRequest(router, http.MethodPost, "/api/v1/proposals/"+proposalID+"/votes", tt.body, true)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestProposalLifecycleEndpoints(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	exec.EXPECT().QueueProposal(gomock.Any(), proposalID).Return(&dto.ProposalResponse{Status: domain.ProposalStatusQueued}, nil)
	exec.EXPECT().ExecuteProposal(gomock.Any(), proposalID).Return(nil, apierrors.NewStateConflictError("Failed to execute proposal", "timelocked"))
	exec.EXPECT().CancelProposal(gomock.Any(), proposalID, dto.CancelProposalRequest{Caller: voter}).Return(&dto.ProposalResponse{Status: domain.ProposalStatusCanceled}, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/proposals/"+proposalID+"/queue", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/proposals/"+proposalID+"/execute", nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apierrors.ErrCodeStateConflict, decodeAPIError(t, w).Code)

	w = doRequest(router, http.MethodPost, "/api/v1/proposals/"+proposalID+"/cancel", dto.CancelProposalRequest{Caller: voter}, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

// setupJWTRouter creates a router that accepts both API keys and tokens signed by the returned key
func setupJWTRouter(t *testing.T) (*gin.Engine, *mocks.MockAPIExecutor, *gomock.Controller, *rsa.PrivateKey) {
	gin.SetMode(gin.TestMode)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(false, exec), middleware.AuthConfig{
		JWTPublicKey: string(publicPEM),
		APIKeys:      []string{testAPIKey},
	})

	return router, exec, ctrl, privateKey
}

func doRequestWithToken(t *testing.T, router *gin.Engine, method, path string, body interface{}, key *rsa.PrivateKey, subject string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCallerMustMatchTokenSubject(t *testing.T) {
	const other = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"

	tests := []struct {
		name           string
		path           string
		body           interface{}
		subject        string
		expect         func(exec *mocks.MockAPIExecutor)
		expectedStatus int
	}{
		{
			name:    "vote as subject",
			path:    "/api/v1/proposals/" + proposalID + "/votes",
			body:    dto.CastVoteRequest{Voter: voter, Support: "for"},
			subject: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			expect: func(exec *mocks.MockAPIExecutor) {
				exec.EXPECT().CastVote(gomock.Any(), proposalID, gomock.Any()).Return(&dto.CastVoteResponse{}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "vote as another address",
			path:           "/api/v1/proposals/" + proposalID + "/votes",
			body:           dto.CastVoteRequest{Voter: other, Support: "for"},
			subject:        voter,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "vote with a token without subject",
			path:           "/api/v1/proposals/" + proposalID + "/votes",
			body:           dto.CastVoteRequest{Voter: voter, Support: "for"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:    "cancel as subject",
			path:    "/api/v1/proposals/" + proposalID + "/cancel",
			body:    dto.CancelProposalRequest{Caller: voter},
			subject: voter,
			expect: func(exec *mocks.MockAPIExecutor) {
				exec.EXPECT().CancelProposal(gomock.Any(), proposalID, gomock.Any()).Return(&dto.ProposalResponse{Status: domain.ProposalStatusCanceled}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "cancel as the proposer of someone else",
			path:           "/api/v1/proposals/" + proposalID + "/cancel",
			body:           dto.CancelProposalRequest{Caller: other},
			subject:        voter,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, exec, ctrl, key := setupJWTRouter(t)
			defer ctrl.Finish()

			if tt.expect != nil {
				tt.expect(exec)
			}

			w := doRequestWithToken(t, router, http.MethodPost, tt.path, tt.body, key, tt.subject)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Equal(t, apierrors.ErrCodeUnauthorized, decodeAPIError(t, w).Code)
			}
		})
	}
}

func TestAPIKeyCallerMayActForAnyAddress(t *testing.T) {
	router, exec, ctrl, _ := setupJWTRouter(t)
	defer ctrl.Finish()

	body := dto.CancelProposalRequest{Caller: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"}
	exec.EXPECT().CancelProposal(gomock.Any(), proposalID, body).Return(&dto.ProposalResponse{Status: domain.ProposalStatusCanceled}, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/proposals/"+proposalID+"/cancel", body, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDelegationEndpoints(t *testing.T) {
	const delegatee = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"

	t.Run("set with api key", func(t *testing.T) {
		router, exec, ctrl := setupTestRouter(t)
		defer ctrl.Finish()

		exec.EXPECT().
			SetDelegation(gomock.Any(), voter, dto.SetDelegationRequest{Delegatee: delegatee}).
			Return(&dto.DelegationResponse{Delegator: voter, Delegatee: delegatee}, nil)

		w := doRequest(router, http.MethodPut, "/api/v1/delegations/"+voter, dto.SetDelegationRequest{Delegatee: delegatee}, true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"delegatee":"`+delegatee+`"`)
	})

	t.Run("set requires authentication", func(t *testing.T) {
		router, _, ctrl := setupTestRouter(t)
		defer ctrl.Finish()

		w := doRequest(router, http.MethodPut, "/api/v1/delegations/"+voter, dto.SetDelegationRequest{Delegatee: delegatee}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("set with invalid delegatee", func(t *testing.T) {
		router, _, ctrl := setupTestRouter(t)
		defer ctrl.Finish()

		w := doRequest(router, http.MethodPut, "/api/v1/delegations/"+voter, dto.SetDelegationRequest{Delegatee: "nope"}, true)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("set with invalid address", func(t *testing.T) {
		router, _, ctrl := setupTestRouter(t)
		defer ctrl.Finish()

		w := doRequest(router, http.MethodPut, "/api/v1/delegations/nope", dto.SetDelegationRequest{Delegatee: delegatee}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("clear", func(t *testing.T) {
		router, exec, ctrl := setupTestRouter(t)
		defer ctrl.Finish()

		exec.EXPECT().ClearDelegation(gomock.Any(), voter).Return(nil)

		w := doRequest(router, http.MethodDelete, "/api/v1/delegations/"+voter, nil, true)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("clear without delegation", func(t *testing.T) {
		router, exec, ctrl := setupTestRouter(t)
		defer ctrl.Finish()

		exec.EXPECT().ClearDelegation(gomock.Any(), voter).Return(apierrors.NewNotFoundError("no delegation"))

		w := doRequest(router, http.MethodDelete, "/api/v1/delegations/"+voter, nil, true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("token subject manages its own delegation only", func(t *testing.T) {
		router, exec, ctrl, key := setupJWTRouter(t)
		defer ctrl.Finish()

		exec.EXPECT().
			SetDelegation(gomock.Any(), voter, gomock.Any()).
			Return(&dto.DelegationResponse{Delegator: voter, Delegatee: delegatee}, nil)

		w := doRequestWithToken(t, router, http.MethodPut, "/api/v1/delegations/"+voter, dto.SetDelegationRequest{Delegatee: delegatee}, key, voter)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequestWithToken(t, router, http.MethodPut, "/api/v1/delegations/"+delegatee, dto.SetDelegationRequest{Delegatee: voter}, key, voter)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doRequestWithToken(t, router, http.MethodDelete, "/api/v1/delegations/"+delegatee, nil, key, voter)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	exec.EXPECT().QueueProposal(gomock.Any(), proposalID).Return(nil, assert.AnError)

	w := doRequest(router, http.MethodPost, "/api/v1/proposals/"+proposalID+"/queue", nil, true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	apiErr := decodeAPIError(t, w)
	assert.Equal(t, apierrors.ErrCodeInternalError, apiErr.Code)
	assert.Empty(t, apiErr.Details)
}

func TestGrantEndpoints(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	limit := constants.DEFAULT_GRANTS_LIMIT
	offset := uint64(0)
	exec.EXPECT().ListGrants(gomock.Any(), voter, "team", true, &limit, &offset).Return(&dto.GrantListResponse{Grants: []dto.GrantResponse{}}, nil)
	exec.EXPECT().GetGrant(gomock.Any(), "g1").Return(&dto.GrantResponse{ID: "g1"}, nil)
	exec.EXPECT().ReleaseGrant(gomock.Any(), "g1").Return(&dto.GrantReleaseResponse{Released: amount.FromUint64(300)}, nil)
	exec.EXPECT().RevokeGrant(gomock.Any(), "g1").Return(&dto.GrantRevokeResponse{Unvested: amount.FromUint64(700)}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/grants?recipient=0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed&category=team&include_revoked=true", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/grants/g1", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/grants/g1/release", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"released":"300"`)

	w = doRequest(router, http.MethodPost, "/api/v1/grants/g1/revoke", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unvested":"700"`)
}

func TestCreateGrant(t *testing.T) {
	router, exec, ctrl := setupTestRouter(t)
	defer ctrl.Finish()

	req := dto.CreateGrantRequest{
		Recipient:              voter,
		Category:               "team",
		Amount:                 "1000000000000000000000",
		Start:                  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DurationSeconds:        12 * domain.SecondsPerMonth,
		ReleaseIntervalSeconds: domain.SecondsPerMonth,
	}
	exec.EXPECT().CreateGrant(gomock.Any(), req).Return(&dto.GrantResponse{ID: "g1"}, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/grants", req, true)
	assert.Equal(t, http.StatusCreated, w.Code)

	bad := req
	bad.Amount = "1.5"
	w = doRequest(router, http.MethodPost, "/api/v1/grants", bad, true)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
