package transferdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/corebank/branchledger/internal/domain"
	"github.com/corebank/branchledger/internal/middleware"
	"github.com/corebank/branchledger/pkg/amountpkg"
	"github.com/corebank/branchledger/pkg/randompkg"
	"github.com/corebank/branchledger/pkg/tokenpkg"
)

func newTestServer(t *testing.T, service Service) (*gin.Engine, tokenpkg.Maker) {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		require.NoError(t, v.RegisterValidation("amount", amountpkg.ValidAmount))
	}

	handler := NewHandler(service)

	authorized := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authorized.POST("/transfers", handler.Create)
	authorized.POST("/transfers/requests", handler.CreateRequest)
	authorized.POST("/transfers/requests/:id/decision", handler.Decide)
	authorized.GET("/transfers/requests/:id", handler.Get)

	return server, tokenMaker
}

func authorize(t *testing.T, r *http.Request, tokenMaker tokenpkg.Maker) {
	t.Helper()
	middleware.AddAuthorization(t, r, tokenMaker, middleware.AuthorizationTypeBearer,
		3, "drawer3", time.Minute)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	from := randompkg.AccountNumber()
	to := randompkg.AccountNumber()
	amount := decimal.NewFromInt(20_000)

	testCases := []struct {
		name           string
		body           gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "OK",
			body: gin.H{"from_account_number": from, "to_account_number": to, "amount": amount},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(int64(3)), gomock.Eq(domain.CreateTransferParams{
						FromAccountNumber: from,
						ToAccountNumber:   to,
						Amount:            amount,
					})).
					Times(1).
					Return(domain.TransferTxResult{}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "SameAccount",
			body: gin.H{"from_account_number": from, "to_account_number": from, "amount": amount},
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrSameAccountTransfer)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "InsufficientFunds",
			body: gin.H{"from_account_number": from, "to_account_number": to, "amount": amount},
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrInsufficientBalance)
			},
			wantStatusCode: http.StatusForbidden,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server, tokenMaker := newTestServer(t, service)

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			request, err := http.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
			require.NoError(t, err)
			authorize(t, request, tokenMaker)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestDecide(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		transferID     int64
		body           gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name:       "Approve",
			transferID: 42,
			body:       gin.H{"decision": "APPROVE", "comment": "checked"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Confirm(gomock.Any(), gomock.Eq(int64(3)), gomock.Eq(int64(42)),
						gomock.Eq(domain.TransferDecisionApprove), gomock.Eq("checked")).
					Times(1).
					Return(domain.TransferTxResult{}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:       "AlreadyDecided",
			transferID: 42,
			body:       gin.H{"decision": "REJECT"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Confirm(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrTransferAlreadyDecided)
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name:       "UnknownDecision",
			transferID: 42,
			body:       gin.H{"decision": "MAYBE"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Confirm(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:       "NotFound",
			transferID: 999,
			body:       gin.H{"decision": "APPROVE"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Confirm(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrTransferNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server, tokenMaker := newTestServer(t, service)

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			url := fmt.Sprintf("/transfers/requests/%d/decision", tc.transferID)
			request, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			require.NoError(t, err)
			authorize(t, request, tokenMaker)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}
