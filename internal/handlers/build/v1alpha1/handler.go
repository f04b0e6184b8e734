// Package v1alpha1 serves the build gRPC service. Messages are
// google.protobuf.Struct values whose fields mirror the orchestrator types.
package v1alpha1

import (
	"context"
	"encoding/json"
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/build-api/internal/document"
	entities "github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/engine"
	"github.com/KirkDiggler/build-api/internal/errors"
	"github.com/KirkDiggler/build-api/internal/orchestrators/build"
)

// Request field names
const (
	fieldDocumentID = "document_id"
	fieldBuildID    = "build_id"
	fieldOptionID   = "option_id"
	fieldCategory   = "category"
	fieldData       = "data"
	fieldFormat     = "format"
	fieldSelections = "selections"
)

// HandlerConfig holds dependencies for the build handler
type HandlerConfig struct {
	BuildService build.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.BuildService == nil {
		return errors.InvalidArgument("build service is required")
	}
	return nil
}

// Handler implements BuildServiceServer
type Handler struct {
	buildService build.Service
}

// NewHandler creates a new build handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{buildService: cfg.BuildService}, nil
}

var _ BuildServiceServer = (*Handler)(nil)

type buildResponse struct {
	Build *entities.Build `json:"build"`
	State *engine.State   `json:"state"`
}

// LoadDocument decodes and stores a document sent as text in "data"
func (h *Handler) LoadDocument(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	data := stringField(req, fieldData)
	if data == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("data is required"))
	}

	format, err := document.ParseFormat(stringField(req, fieldFormat))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.buildService.LoadDocument(ctx, &build.LoadDocumentInput{
		ID:     stringField(req, fieldDocumentID),
		Data:   []byte(data),
		Format: format,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toResponse(struct {
		DocumentID string              `json:"document_id"`
		Title      string              `json:"title,omitempty"`
		Categories int                 `json:"categories"`
		Warnings   map[string][]string `json:"warnings,omitempty"`
	}{
		DocumentID: output.Document.ID,
		Title:      output.Document.Title,
		Categories: len(output.Document.Categories),
		Warnings:   output.Warnings,
	})
}

// GetDocument returns a stored document
func (h *Handler) GetDocument(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	documentID := stringField(req, fieldDocumentID)
	if documentID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("document_id is required"))
	}

	output, err := h.buildService.GetDocument(ctx, &build.GetDocumentInput{DocumentID: documentID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toResponse(struct {
		Document *entities.Document `json:"document"`
	}{Document: output.Document})
}

// ListDocuments returns the stored document IDs
func (h *Handler) ListDocuments(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	output, err := h.buildService.ListDocuments(ctx, &build.ListDocumentsInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	ids := output.DocumentIDs
	if ids == nil {
		ids = []string{}
	}
	return toResponse(struct {
		DocumentIDs []string `json:"document_ids"`
	}{DocumentIDs: ids})
}

// CreateBuild starts an empty build against a document
func (h *Handler) CreateBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	documentID := stringField(req, fieldDocumentID)
	if documentID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("document_id is required"))
	}

	output, err := h.buildService.CreateBuild(ctx, &build.CreateBuildInput{DocumentID: documentID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toResponse(buildResponse{Build: output.Build, State: output.State})
}

// GetBuild returns a build with its evaluated state
func (h *Handler) GetBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID := stringField(req, fieldBuildID)
	if buildID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("build_id is required"))
	}

	output, err := h.buildService.GetBuild(ctx, &build.GetBuildInput{BuildID: buildID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toResponse(buildResponse{Build: output.Build, State: output.State})
}

// DeleteBuild removes a build
func (h *Handler) DeleteBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID := stringField(req, fieldBuildID)
	if buildID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("build_id is required"))
	}

	if _, err := h.buildService.DeleteBuild(ctx, &build.DeleteBuildInput{BuildID: buildID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

// SelectOption selects one unit of an option. An ineligible option is not an
// error: the response has selected=false and the reasons.
func (h *Handler) SelectOption(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID, optionID, err := buildAndOption(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.buildService.SelectOption(ctx, &build.SelectOptionInput{
		BuildID:  buildID,
		OptionID: optionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toResponse(struct {
		Selected bool            `json:"selected"`
		Reasons  []engine.Reason `json:"reasons,omitempty"`
		buildResponse
	}{
		Selected:      output.Selected,
		Reasons:       output.Reasons,
		buildResponse: buildResponse{Build: output.Build, State: output.State},
	})
}

// DeselectOption removes one unit of an option
func (h *Handler) DeselectOption(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID, optionID, err := buildAndOption(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.buildService.DeselectOption(ctx, &build.DeselectOptionInput{
		BuildID:  buildID,
		OptionID: optionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toResponse(struct {
		Deselected bool `json:"deselected"`
		buildResponse
	}{
		Deselected:    output.Deselected,
		buildResponse: buildResponse{Build: output.Build, State: output.State},
	})
}

// RollOption selects a random selectable option in a category
func (h *Handler) RollOption(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	vb := errors.NewValidationBuilder()
	buildID := stringField(req, fieldBuildID)
	category := stringField(req, fieldCategory)
	errors.ValidateRequired(fieldBuildID, buildID, vb)
	errors.ValidateRequired(fieldCategory, category, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.buildService.RollOption(ctx, &build.RollOptionInput{
		BuildID:  buildID,
		Category: category,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toResponse(struct {
		OptionID string `json:"option_id"`
		buildResponse
	}{
		OptionID:      output.OptionID,
		buildResponse: buildResponse{Build: output.Build, State: output.State},
	})
}

// ExportBuild returns the selection map of a build
func (h *Handler) ExportBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID := stringField(req, fieldBuildID)
	if buildID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("build_id is required"))
	}

	output, err := h.buildService.ExportBuild(ctx, &build.ExportBuildInput{BuildID: buildID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toResponse(struct {
		DocumentID string         `json:"document_id"`
		Selections map[string]int `json:"selections"`
	}{
		DocumentID: output.DocumentID,
		Selections: output.Selections,
	})
}

// ImportBuild replays a selection map onto a build. Selection values may be
// counts or booleans, true meaning one.
func (h *Handler) ImportBuild(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	buildID := stringField(req, fieldBuildID)
	if buildID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("build_id is required"))
	}

	selections, err := parseSelections(req.GetFields()[fieldSelections])
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.buildService.ImportBuild(ctx, &build.ImportBuildInput{
		BuildID:    buildID,
		Selections: selections,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toResponse(struct {
		Applied int            `json:"applied"`
		Skipped map[string]int `json:"skipped,omitempty"`
		buildResponse
	}{
		Applied:       output.Applied,
		Skipped:       output.Skipped,
		buildResponse: buildResponse{Build: output.Build, State: output.State},
	})
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func buildAndOption(req *structpb.Struct) (string, string, error) {
	buildID := stringField(req, fieldBuildID)
	optionID := stringField(req, fieldOptionID)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired(fieldBuildID, buildID, vb)
	errors.ValidateRequired(fieldOptionID, optionID, vb)
	return buildID, optionID, vb.Build()
}

func parseSelections(value *structpb.Value) (map[string]int, error) {
	if value == nil {
		return nil, errors.InvalidArgument("selections is required")
	}
	fields := value.GetStructValue()
	if fields == nil {
		return nil, errors.InvalidArgument("selections must be an object")
	}

	out := make(map[string]int, len(fields.GetFields()))
	for id, v := range fields.GetFields() {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_BoolValue:
			if kind.BoolValue {
				out[id] = 1
			}
		case *structpb.Value_NumberValue:
			n := kind.NumberValue
			if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
				return nil, errors.InvalidArgumentf("selection %q must be a non-negative integer", id).
					WithMeta("option_id", id)
			}
			if n > 0 {
				out[id] = int(n)
			}
		default:
			return nil, errors.InvalidArgumentf("selection %q must be a number or boolean", id).
				WithMeta("option_id", id)
		}
	}
	return out, nil
}

// toResponse converts a JSON-tagged value into a Struct
func toResponse(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to convert response"))
	}
	return out, nil
}
