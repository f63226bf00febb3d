//go:build unit

package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"playa-admin/internal/domain/user"
	"playa-admin/internal/handler/api"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/commands"
	"playa-admin/internal/usecase/queries"
	"playa-admin/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubSubscriptionCommands struct {
	createResult *commands.CreateSubscriptionResult
	editResult   *commands.EditSubscriptionResult
	err          error

	gotCreate   *commands.CreateSubscriptionParams
	gotFinalize struct {
		id    uuid.UUID
		force bool
	}
	gotPayBill uuid.UUID
}

func (s *stubSubscriptionCommands) Create(_ context.Context, _ shared.Actor, params commands.CreateSubscriptionParams) (*commands.CreateSubscriptionResult, error) {
	s.gotCreate = &params
	if s.err != nil {
		return nil, s.err
	}
	return s.createResult, nil
}

func (s *stubSubscriptionCommands) Edit(_ context.Context, _ shared.Actor, _ uuid.UUID, _ commands.EditSubscriptionParams) (*commands.EditSubscriptionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.editResult, nil
}

func (s *stubSubscriptionCommands) Finalize(_ context.Context, _ shared.Actor, id uuid.UUID, force bool) error {
	s.gotFinalize.id = id
	s.gotFinalize.force = force
	return s.err
}

func (s *stubSubscriptionCommands) PayBill(_ context.Context, _ shared.Actor, billID uuid.UUID) error {
	s.gotPayBill = billID
	return s.err
}

type stubSubscriptionQueries struct {
	view *queries.SubscriptionView
	err  error
}

func (s *stubSubscriptionQueries) GetByID(_ context.Context, _ shared.Actor, _ uuid.UUID) (*queries.SubscriptionView, error) {
	return s.view, s.err
}

func (s *stubSubscriptionQueries) ListByLot(_ context.Context, _ shared.Actor, _ uuid.UUID, _ *string) ([]*queries.SubscriptionView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*queries.SubscriptionView{s.view}, nil
}

type SubscriptionHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	cmds   *stubSubscriptionCommands
	q      *stubSubscriptionQueries
}

func (s *SubscriptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.cmds = &stubSubscriptionCommands{}
	s.q = &stubSubscriptionQueries{}
	handler := api.NewSubscriptionHandler(s.cmds, s.q)

	fakeAuth := func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleAttendant)
		c.Next()
	}

	s.router.POST("/lots/:id/subscriptions", fakeAuth, handler.Create)
	s.router.GET("/subscriptions/:id", fakeAuth, handler.Get)
	s.router.POST("/subscriptions/:id/finalize", fakeAuth, handler.Finalize)
	s.router.POST("/bills/:billID/pay", fakeAuth, handler.PayBill)
}

const createBody = `{
	"space_id": "7a9f8a3e-640c-4c5c-9d2f-16c3a61c8a11",
	"subscriber_name": "Carlos Pérez",
	"document": "30123456",
	"phone": "1155550000",
	"vehicles": [{"plate": "AB123CD", "vehicle_type": "AUTO"}]
}`

func (s *SubscriptionHandlerTestSuite) TestCreateSuccess() {
	s.cmds.createResult = &commands.CreateSubscriptionResult{
		SubscriptionID: uuid.New(),
		MonthlyAmount:  30000,
		FirstCharge:    16000,
	}
	lotID := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/lots/"+lotID.String()+"/subscriptions",
		strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"monthly_amount":30000`)
	s.Contains(w.Body.String(), `"first_charge":16000`)
	s.Require().NotNil(s.cmds.gotCreate)
	s.Equal(lotID, s.cmds.gotCreate.LotID)
	s.Equal("AB123CD", s.cmds.gotCreate.Vehicles[0].Plate)
}

func (s *SubscriptionHandlerTestSuite) TestCreateConflicts() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"occupied space", errs.ErrSpaceOccupied, http.StatusConflict},
		{"subscribed space", errs.ErrSpaceSubscribed, http.StatusConflict},
		{"no open shift", errs.ErrNoActiveShift, http.StatusUnprocessableEntity},
		{"no rate", errs.ErrRateNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.cmds.err = tc.err

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/lots/"+uuid.NewString()+"/subscriptions",
				strings.NewReader(createBody))
			req.Header.Set("Content-Type", "application/json")
			s.router.ServeHTTP(w, req)

			s.Equal(tc.status, w.Code)
		})
	}
}

func (s *SubscriptionHandlerTestSuite) TestCreateRejectsMissingVehicles() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/lots/"+uuid.NewString()+"/subscriptions",
		strings.NewReader(`{"space_id":"7a9f8a3e-640c-4c5c-9d2f-16c3a61c8a11","subscriber_name":"Carlos","document":"30123456","vehicles":[]}`))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Nil(s.cmds.gotCreate)
}

func (s *SubscriptionHandlerTestSuite) TestFinalizeForceFlag() {
	id := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/subscriptions/%s/finalize?force=true", id), nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal(id, s.cmds.gotFinalize.id)
	s.True(s.cmds.gotFinalize.force)
}

func (s *SubscriptionHandlerTestSuite) TestFinalizeUnpaidBills() {
	s.cmds.err = errs.ErrUnpaidBills

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/subscriptions/"+uuid.NewString()+"/finalize", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "boletas impagas")
}

func (s *SubscriptionHandlerTestSuite) TestPayBill() {
	id := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bills/"+id.String()+"/pay", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal(id, s.cmds.gotPayBill)
}

func (s *SubscriptionHandlerTestSuite) TestPayBillAlreadyPaid() {
	s.cmds.err = errs.ErrBillAlreadyPaid

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bills/"+uuid.NewString()+"/pay", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "ya está pagada")
}

func (s *SubscriptionHandlerTestSuite) TestGetNotFound() {
	s.q.err = errs.ErrSubscriptionNotFound

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+uuid.NewString(), nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}

func TestSubscriptionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionHandlerTestSuite))
}
