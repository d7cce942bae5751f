package http

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/domain/types"
)

//go:embed openapi.yaml
var openapiSpec []byte

const generateRequestSchema = "GenerateRequest"

// requestValidator checks trigger payloads against the embedded OpenAPI document
type requestValidator struct {
	schema *openapi3.Schema
}

func newRequestValidator(ctx context.Context) (*requestValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load OpenAPI document")
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, goerr.Wrap(err, "invalid OpenAPI document")
	}

	ref, ok := doc.Components.Schemas[generateRequestSchema]
	if !ok || ref.Value == nil {
		return nil, goerr.New("schema not found in OpenAPI document", goerr.V("schema", generateRequestSchema))
	}

	return &requestValidator{schema: ref.Value}, nil
}

// decodeGenerateRequest validates body and decodes it into a typed request
func (v *requestValidator) decodeGenerateRequest(body []byte) (*model.GenerateRequest, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, goerr.Wrap(err, "invalid JSON payload", goerr.T(types.ErrTagInvalidRequest))
	}

	if err := v.schema.VisitJSON(raw); err != nil {
		return nil, goerr.Wrap(err, "invalid request body", goerr.T(types.ErrTagInvalidRequest))
	}

	var req model.GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, goerr.Wrap(err, "invalid request body", goerr.T(types.ErrTagInvalidRequest))
	}
	return &req, nil
}
