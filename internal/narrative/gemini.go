package narrative

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const systemPrompt = `You are summarizing a university-level student's abilities and skills.
You will receive:
1) A list of individual skills the student has mastered
2) A list of skill groups with their counts as an object
3) A list of completed courses with descriptions

Your task:
- Write a short summary (max 3 sentences) of the student's strengths.
- Mention at least one notable skill group they excel in.
- Highlight at least one specific skill learned in a course (referencing course context).
- Keep the tone positive, in the style of: "You excel greatly in ..., most notably your accounting class taught you ..."
- Avoid lists; keep it narrative and concise.

Output only the 3-sentence summary.

Example output:
"You excel greatly in business, administration, and law, most notably your accounting courses taught you to analyze and interpret financial information effectively. Your strength in applying accounting systems and software, such as general ledger and payroll software, stands out. The 'Accounting Software Applications' course specifically enhanced your ability to use accounting packages to solve complex problems efficiently."`

// summarySchema forces the model to return {"summary": "..."} and nothing else.
var summarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "A short positive narrative summary of the student's strengths, maximum 3 sentences.",
		},
	},
	Required: []string{"summary"},
}

// GeminiGenerator produces narrative summaries through the Gemini API with a
// structured-output schema.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, log zerolog.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		log:    log.With().Str("component", "narrative_gemini").Logger(),
	}, nil
}

func (g *GeminiGenerator) Summarize(ctx context.Context, payload Payload) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(renderUserPrompt(payload)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    summarySchema,
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(result.Text()), &out); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}
	if out.Summary == "" {
		return "", fmt.Errorf("empty summary in model response")
	}
	return out.Summary, nil
}
