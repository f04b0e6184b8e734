package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/build-api/internal/document"
	entities "github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/engine"
	"github.com/KirkDiggler/build-api/internal/errors"
	"github.com/KirkDiggler/build-api/internal/handlers/build/v1alpha1"
	"github.com/KirkDiggler/build-api/internal/orchestrators/build"
	buildmock "github.com/KirkDiggler/build-api/internal/orchestrators/build/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockBuild *buildmock.MockService
	handler   *v1alpha1.Handler
	ctx       context.Context

	testBuild *entities.Build
	testState *engine.State
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockBuild = buildmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{BuildService: s.mockBuild})
	s.Require().NoError(err)
	s.handler = handler

	s.testBuild = &entities.Build{
		ID:         "build_1",
		DocumentID: "doc_1",
		Selections: map[string]int{"noble": 1},
	}
	s.testState = &engine.State{
		Balances: map[string]float64{"gold": 30},
		Counts:   map[string]int{"noble": 1},
	}
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) TestNewHandler_RequiresService() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestLoadDocument() {
	s.Run("passes data and format", func() {
		s.mockBuild.EXPECT().
			LoadDocument(s.ctx, &build.LoadDocumentInput{
				ID:     "heroic",
				Data:   []byte("- name: Gear"),
				Format: document.FormatYAML,
			}).
			Return(&build.LoadDocumentOutput{
				Document: &entities.Document{ID: "heroic", Title: "Heroic", Categories: []*entities.Category{{Name: "Gear"}}},
				Warnings: map[string][]string{"categories[0].options": {"is empty"}},
			}, nil)

		resp, err := s.handler.LoadDocument(s.ctx, s.request(map[string]any{
			"document_id": "heroic",
			"data":        "- name: Gear",
			"format":      "yaml",
		}))
		s.Require().NoError(err)
		s.Equal("heroic", resp.Fields["document_id"].GetStringValue())
		s.Equal(1.0, resp.Fields["categories"].GetNumberValue())
		s.Contains(resp.Fields["warnings"].GetStructValue().GetFields(), "categories[0].options")
	})

	s.Run("missing data", func() {
		_, err := s.handler.LoadDocument(s.ctx, s.request(map[string]any{}))
		s.Equal(codes.InvalidArgument, status.Code(err))
	})

	s.Run("unknown format", func() {
		_, err := s.handler.LoadDocument(s.ctx, s.request(map[string]any{"data": "[]", "format": "xml"}))
		s.Equal(codes.InvalidArgument, status.Code(err))
	})
}

func (s *HandlerTestSuite) TestGetBuild() {
	s.Run("success", func() {
		s.mockBuild.EXPECT().
			GetBuild(s.ctx, &build.GetBuildInput{BuildID: "build_1"}).
			Return(&build.GetBuildOutput{Build: s.testBuild, State: s.testState}, nil)

		resp, err := s.handler.GetBuild(s.ctx, s.request(map[string]any{"build_id": "build_1"}))
		s.Require().NoError(err)

		b := resp.Fields["build"].GetStructValue().GetFields()
		s.Equal("doc_1", b["document_id"].GetStringValue())
		state := resp.Fields["state"].GetStructValue().GetFields()
		s.Equal(30.0, state["balances"].GetStructValue().GetFields()["gold"].GetNumberValue())
	})

	s.Run("not found maps to grpc code", func() {
		s.mockBuild.EXPECT().
			GetBuild(s.ctx, &build.GetBuildInput{BuildID: "missing"}).
			Return(nil, errors.NotFound("build missing not found"))

		_, err := s.handler.GetBuild(s.ctx, s.request(map[string]any{"build_id": "missing"}))
		s.Equal(codes.NotFound, status.Code(err))
	})

	s.Run("missing build id", func() {
		_, err := s.handler.GetBuild(s.ctx, s.request(map[string]any{}))
		s.Equal(codes.InvalidArgument, status.Code(err))
	})
}

func (s *HandlerTestSuite) TestSelectOption() {
	s.Run("not selectable reports reasons", func() {
		s.mockBuild.EXPECT().
			SelectOption(s.ctx, &build.SelectOptionInput{BuildID: "build_1", OptionID: "horse"}).
			Return(&build.SelectOptionOutput{
				Selected: false,
				Reasons:  []engine.Reason{{Kind: engine.ReasonAffordability, Refs: []string{"gold"}}},
				Build:    s.testBuild,
				State:    s.testState,
			}, nil)

		resp, err := s.handler.SelectOption(s.ctx, s.request(map[string]any{
			"build_id":  "build_1",
			"option_id": "horse",
		}))
		s.Require().NoError(err)
		s.False(resp.Fields["selected"].GetBoolValue())
		reasons := resp.Fields["reasons"].GetListValue().GetValues()
		s.Require().Len(reasons, 1)
		s.Equal(string(engine.ReasonAffordability), reasons[0].GetStructValue().GetFields()["kind"].GetStringValue())
		s.NotNil(resp.Fields["build"].GetStructValue())
	})

	s.Run("missing option id", func() {
		_, err := s.handler.SelectOption(s.ctx, s.request(map[string]any{"build_id": "build_1"}))
		s.Equal(codes.InvalidArgument, status.Code(err))
	})
}

func (s *HandlerTestSuite) TestDeselectOption() {
	s.mockBuild.EXPECT().
		DeselectOption(s.ctx, &build.DeselectOptionInput{BuildID: "build_1", OptionID: "noble"}).
		Return(&build.DeselectOptionOutput{Deselected: true, Build: s.testBuild, State: s.testState}, nil)

	resp, err := s.handler.DeselectOption(s.ctx, s.request(map[string]any{
		"build_id":  "build_1",
		"option_id": "noble",
	}))
	s.Require().NoError(err)
	s.True(resp.Fields["deselected"].GetBoolValue())
}

func (s *HandlerTestSuite) TestImportBuild() {
	s.Run("accepts counts and booleans", func() {
		s.mockBuild.EXPECT().
			ImportBuild(s.ctx, &build.ImportBuildInput{
				BuildID:    "build_1",
				Selections: map[string]int{"noble": 1, "potion": 2},
			}).
			Return(&build.ImportBuildOutput{
				Applied: 3,
				Skipped: map[string]int{},
				Build:   s.testBuild,
				State:   s.testState,
			}, nil)

		resp, err := s.handler.ImportBuild(s.ctx, s.request(map[string]any{
			"build_id": "build_1",
			"selections": map[string]any{
				"noble":   true,
				"peasant": false,
				"potion":  2,
			},
		}))
		s.Require().NoError(err)
		s.Equal(3.0, resp.Fields["applied"].GetNumberValue())
	})

	s.Run("rejects fractional counts", func() {
		_, err := s.handler.ImportBuild(s.ctx, s.request(map[string]any{
			"build_id":   "build_1",
			"selections": map[string]any{"potion": 1.5},
		}))
		s.Equal(codes.InvalidArgument, status.Code(err))
	})

	s.Run("rejects string values", func() {
		_, err := s.handler.ImportBuild(s.ctx, s.request(map[string]any{
			"build_id":   "build_1",
			"selections": map[string]any{"potion": "two"},
		}))
		s.Equal(codes.InvalidArgument, status.Code(err))
	})

	s.Run("requires selections", func() {
		_, err := s.handler.ImportBuild(s.ctx, s.request(map[string]any{"build_id": "build_1"}))
		s.Equal(codes.InvalidArgument, status.Code(err))
	})
}

func (s *HandlerTestSuite) TestExportBuild() {
	s.mockBuild.EXPECT().
		ExportBuild(s.ctx, &build.ExportBuildInput{BuildID: "build_1"}).
		Return(&build.ExportBuildOutput{DocumentID: "doc_1", Selections: map[string]int{"noble": 1}}, nil)

	resp, err := s.handler.ExportBuild(s.ctx, s.request(map[string]any{"build_id": "build_1"}))
	s.Require().NoError(err)
	s.Equal(1.0, resp.Fields["selections"].GetStructValue().GetFields()["noble"].GetNumberValue())
}

func (s *HandlerTestSuite) TestRollOption() {
	s.Run("locked category maps to failed precondition", func() {
		s.mockBuild.EXPECT().
			RollOption(s.ctx, &build.RollOptionInput{BuildID: "build_1", Category: "Knighthood"}).
			Return(nil, errors.FailedPrecondition("category is locked"))

		_, err := s.handler.RollOption(s.ctx, s.request(map[string]any{
			"build_id": "build_1",
			"category": "Knighthood",
		}))
		s.Equal(codes.FailedPrecondition, status.Code(err))
	})

	s.Run("missing category", func() {
		_, err := s.handler.RollOption(s.ctx, s.request(map[string]any{"build_id": "build_1"}))
		s.Equal(codes.InvalidArgument, status.Code(err))
	})
}

func (s *HandlerTestSuite) TestListDocuments() {
	s.mockBuild.EXPECT().
		ListDocuments(s.ctx, &build.ListDocumentsInput{}).
		Return(&build.ListDocumentsOutput{}, nil)

	resp, err := s.handler.ListDocuments(s.ctx, s.request(map[string]any{}))
	s.Require().NoError(err)
	s.NotNil(resp.Fields["document_ids"].GetListValue())
}
