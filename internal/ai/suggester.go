package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
	"github.com/shopspring/decimal"
)

// ErrUnavailable wraps any failure of the text-generation service.
// Callers treat it as non-fatal: the billing flow is unaffected and the
// user sees a retryable message.
var ErrUnavailable = errors.New("suggestion service unavailable")

// SuggestionInput carries the bill details the message is generated
// from. All fields are required; the amounts are plain currency values.
type SuggestionInput struct {
	AccountPersonName string          `json:"account_person_name"`
	PastBalance       decimal.Decimal `json:"past_balance"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	BillAmount        decimal.Decimal `json:"bill_amount"`
}

// Validate checks that every field is present.
func (in SuggestionInput) Validate() error {
	if strings.TrimSpace(in.AccountPersonName) == "" {
		return errors.New("account person name is required")
	}
	return nil
}

// Suggestion is the structured model output. The content is opaque
// text for the user to display or copy; it is never parsed.
type Suggestion struct {
	SuggestedContent string `json:"suggested_content" jsonschema_description:"The suggested text content for sharing the bill with the client"`
}

// SuggestionService generates a short client-facing message describing
// a new bill.
type SuggestionService interface {
	SuggestBillMessage(ctx context.Context, input SuggestionInput) (*Suggestion, error)
}

type Suggester struct {
	client *openai.Client
}

func NewSuggester(apiKey string) *Suggester {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Suggester{client: &client}
}

func (s *Suggester) SuggestBillMessage(ctx context.Context, input SuggestionInput) (*Suggestion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are an AI assistant designed to suggest text content for sharing a bill with a client.

Based on the following bill details, generate a concise and professional message to share with the client:

Account Person Name: %s
Past Balance: %s
Current Bill Amount: %s
New Balance: %s

The message should include a greeting, a summary of the bill, and a call to action (e.g., payment).
Keep the message under 200 characters.
Do not include any promotional or marketing content.
Start with "Dear %s".`,
		input.AccountPersonName,
		input.PastBalance.StringFixed(2),
		input.BillAmount.StringFixed(2),
		input.CurrentBalance.StringFixed(2),
		input.AccountPersonName)

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "bill_sharing_suggestion",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A suggested message for sharing a bill with a client"),
				},
			},
		},
	}

	resp, err := s.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("%w: empty response content", ErrUnavailable)
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return nil, fmt.Errorf("%w: failed to parse completion: %v", ErrUnavailable, err)
	}
	return &suggestion, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v Suggestion
	return reflector.Reflect(v)
}
