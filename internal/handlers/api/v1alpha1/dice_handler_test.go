package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
	"github.com/KirkDiggler/rpg-dice/internal/entities"
	"github.com/KirkDiggler/rpg-dice/internal/errors"
	"github.com/KirkDiggler/rpg-dice/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/rpg-dice/internal/orchestrators/dice"
	dicemock "github.com/KirkDiggler/rpg-dice/internal/orchestrators/dice/mock"
	"github.com/KirkDiggler/rpg-dice/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dice/internal/testutils"
)

type DiceHandlerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockDice *dicemock.MockService
	handler  *v1alpha1.DiceHandler
	ctx      context.Context
}

func TestDiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DiceHandlerTestSuite))
}

func (s *DiceHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockDice = dicemock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{
		DiceService: s.mockDice,
		IDGenerator: idgen.NewSequential("roll"),
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *DiceHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DiceHandlerTestSuite) TestNewDiceHandlerValidation() {
	handler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{})
	s.Require().Error(err)
	s.Nil(handler)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "DiceService")
	s.Contains(err.Error(), "IDGenerator")
}

func (s *DiceHandlerTestSuite) TestRollDice_Standard() {
	s.mockDice.EXPECT().
		Roll(s.ctx, &dice.RollInput{
			Username: "kirk",
			Notation: "3d6+2",
			Mode:     entities.ModeStandard,
		}).
		Return(testutils.CreateTestRollOutput(s.T(), entities.ModeStandard,
			entities.RollSpec{Count: 3, Sides: 6, Modifier: 2}, 6, 1, 4), nil)

	resp, err := s.handler.RollDice(s.ctx, &apiv1alpha1.RollDiceRequest{
		EntityId: "kirk",
		Notation: "3d6+2",
	})
	s.Require().NoError(err)
	s.Require().Len(resp.Rolls, 1)

	roll := resp.Rolls[0]
	s.Equal("roll_1", roll.RollId)
	s.Equal("3d6+2", roll.Notation)
	s.Equal([]int32{6, 1, 4}, roll.Dice)
	s.Empty(roll.Dropped)
	s.Equal(int32(11), roll.DiceTotal)
	s.Equal(int32(2), roll.Modifier)
	s.Equal(int32(13), roll.Total)
	s.Equal("kirk rolled 3d6:\n6 + 1 + 4 (+2) = *13*\n", roll.Description)
}

func (s *DiceHandlerTestSuite) TestRollDice_Advantage() {
	s.mockDice.EXPECT().
		Roll(s.ctx, &dice.RollInput{
			Username: "kirk",
			Notation: "2d20+5",
			Mode:     entities.ModeAdvantage,
		}).
		Return(&dice.RollOutput{
			Mode:    entities.ModeAdvantage,
			Spec:    entities.RollSpec{Count: 2, Sides: 20, Modifier: 5},
			Result:  &entities.RollResult{Rolls: []int{8, 14}, Modifier: 5, Total: 27},
			Kept:    []int{14},
			Dropped: []int{8},
			Text:    "kirk rolled 2d20 with advantage:\n~8~, *14* (+5) = *19*\n",
		}, nil)

	resp, err := s.handler.RollDice(s.ctx, &apiv1alpha1.RollDiceRequest{
		EntityId: "kirk",
		Context:  "advantage",
		Notation: "2d20+5",
	})
	s.Require().NoError(err)
	s.Require().Len(resp.Rolls, 1)

	roll := resp.Rolls[0]
	s.Equal([]int32{14}, roll.Dice)
	s.Equal([]int32{8}, roll.Dropped)
	s.Equal(int32(14), roll.DiceTotal)
	s.Equal(int32(19), roll.Total)
}

func (s *DiceHandlerTestSuite) TestRollDice_ContextAliases() {
	testCases := []struct {
		context string
		mode    entities.DisplayMode
	}{
		{"", entities.ModeStandard},
		{"roll", entities.ModeStandard},
		{"adv", entities.ModeAdvantage},
		{"dis", entities.ModeDisadvantage},
		{"disadvantage", entities.ModeDisadvantage},
	}

	for _, tc := range testCases {
		s.Run(tc.context, func() {
			s.mockDice.EXPECT().
				Roll(s.ctx, &dice.RollInput{Username: "kirk", Notation: "2d20", Mode: tc.mode}).
				Return(&dice.RollOutput{
					Mode:   tc.mode,
					Spec:   entities.RollSpec{Count: 2, Sides: 20},
					Result: &entities.RollResult{Rolls: []int{3, 4}, Total: 7},
					Kept:   []int{3, 4},
				}, nil)

			_, err := s.handler.RollDice(s.ctx, &apiv1alpha1.RollDiceRequest{
				EntityId: "kirk",
				Context:  tc.context,
				Notation: "2d20",
			})
			s.Require().NoError(err)
		})
	}
}

func (s *DiceHandlerTestSuite) TestRollDice_RequestValidation() {
	testCases := []struct {
		name   string
		req    *apiv1alpha1.RollDiceRequest
		errMsg string
	}{
		{
			name:   "missing notation",
			req:    &apiv1alpha1.RollDiceRequest{EntityId: "kirk"},
			errMsg: "notation: is required",
		},
		{
			name:   "blank notation",
			req:    &apiv1alpha1.RollDiceRequest{EntityId: "kirk", Notation: "   "},
			errMsg: "notation: is required",
		},
		{
			name:   "unknown context",
			req:    &apiv1alpha1.RollDiceRequest{EntityId: "kirk", Notation: "1d6", Context: "character_draft_abilities"},
			errMsg: `context: is invalid: must be one of standard, advantage, disadvantage; got "character_draft_abilities"`,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.handler.RollDice(s.ctx, tc.req)
			s.Require().Error(err)
			s.Nil(resp)

			st, ok := status.FromError(err)
			s.Require().True(ok)
			s.Equal(codes.InvalidArgument, st.Code())
			s.Contains(st.Message(), tc.errMsg)
		})
	}
}

func (s *DiceHandlerTestSuite) TestRollDice_ServiceErrors() {
	testCases := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"parse failure", errors.InvalidArgument("Sorry, \"2d\" is not a roll I understand"), codes.InvalidArgument},
		{"range failure", errors.OutOfRange("Sorry, \"0d6\" is not a roll I understand"), codes.OutOfRange},
		{"shape failure", errors.FailedPrecondition("advantage rolls must be 2d20"), codes.FailedPrecondition},
		{"internal failure", errors.Internal("Sorry, the dice got stuck. Please try again."), codes.Internal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockDice.EXPECT().Roll(s.ctx, gomock.Any()).Return(nil, tc.err)

			resp, err := s.handler.RollDice(s.ctx, &apiv1alpha1.RollDiceRequest{
				EntityId: "kirk",
				Notation: "2d",
			})
			s.Require().Error(err)
			s.Nil(resp)

			st, ok := status.FromError(err)
			s.Require().True(ok)
			s.Equal(tc.code, st.Code())
			s.Equal(errors.GetMessage(tc.err), st.Message())
		})
	}
}

// Runs the real pipeline behind the handler with a scripted source
func (s *DiceHandlerTestSuite) TestRollDice_EndToEnd() {
	service := testutils.CreateScriptedDiceService(s.T(), 12, 3)

	handler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{
		DiceService: service,
		IDGenerator: idgen.NewSequential("roll"),
	})
	s.Require().NoError(err)

	resp, err := handler.RollDice(s.ctx, &apiv1alpha1.RollDiceRequest{
		EntityId: "kirk",
		Context:  "disadvantage",
		Notation: "2d20-1",
	})
	s.Require().NoError(err)
	s.Require().Len(resp.Rolls, 1)
	s.Equal([]int32{3}, resp.Rolls[0].Dice)
	s.Equal([]int32{12}, resp.Rolls[0].Dropped)
	s.Equal(int32(2), resp.Rolls[0].Total)
	s.Equal("kirk rolled 2d20 with disadvantage:\n~12~, _3_ (-1) = *2*\n", resp.Rolls[0].Description)

	_, err = handler.RollDice(s.ctx, &apiv1alpha1.RollDiceRequest{
		EntityId: "kirk",
		Context:  "advantage",
		Notation: "1d20",
	})
	s.Require().Error(err)
	st, _ := status.FromError(err)
	s.Equal(codes.FailedPrecondition, st.Code())
	s.Contains(st.Message(), "Try something like 2d20+3")
}
