package report

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/sapcop/fieldscore/internal/dataset"
)

// Gemini generates the briefing narrative with the Gemini API, falling back
// to the deterministic narrative whenever the model errors or returns
// nothing. Generate never fails the request.
type Gemini struct {
	client   *genai.Client
	model    string
	fallback Fallback
	log      *zap.Logger
}

// NewGemini builds the Gemini-backed generator.
func NewGemini(ctx context.Context, apiKey, model string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, log: log}, nil
}

func (g *Gemini) Generate(ctx context.Context, label string, en *dataset.Table, raw []float64) (Report, error) {
	rep, _ := g.fallback.Generate(ctx, label, en, raw)
	s := summarize(en, raw)
	if len(s.scaled) == 0 {
		return rep, nil
	}

	narrative, err := g.ask(ctx, briefingPrompt(label, s))
	if err != nil {
		g.log.Warn("gemini narrative failed, using fallback", zap.String("dataset", label), zap.Error(err))
		return rep, nil
	}
	if narrative = cleanOutput(narrative); narrative != "" {
		rep.Narrative = narrative
	}

	headline, err := g.ask(ctx, headlinePrompt(label, s))
	if err != nil {
		g.log.Warn("gemini headline failed, using fallback", zap.String("dataset", label), zap.Error(err))
		return rep, nil
	}
	if headline = strings.TrimSpace(strings.ReplaceAll(cleanOutput(headline), "\n", " ")); headline != "" {
		rep.Headline = headline
	}
	return rep, nil
}

func (g *Gemini) ask(ctx context.Context, prompt string) (string, error) {
	content := genai.NewContentFromText(prompt, genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}

func briefingPrompt(label string, s stats) string {
	var data strings.Builder
	for i, v := range s.scaled {
		fmt.Fprintf(&data, "%s: %.2f%%\n", s.name(i), v)
	}
	display := strings.ReplaceAll(label, "_", " ")
	return fmt.Sprintf(`You are a senior data intelligence officer for a State Police Headquarters.
You are preparing an operational briefing note for the DGP about the performance of the **%s**.

DATA:
%s
KEY STATS:
- Average Efficiency: %.2f%%
- Best Performing District: %s (%.2f%%)
- Lowest Performing District: %s (%.2f%%)

CONTEXT:
The '%s' represents a major police operational drive focused on measurable field performance, such as NBW (Non-Bailable Warrant) execution, conviction follow-ups, or seizure effectiveness. Each district's efficiency indicates ground-level responsiveness, inter-departmental coordination, and data accuracy in CCTNS records.

TASK:
Write a *strategic insight summary* (6-8 sentences) for the DGP that:
1. Identifies operational strengths and weaknesses.
2. Comments on performance distribution, e.g. whether high-performing zones cluster geographically.
3. Provides possible underlying causes (like manpower, coordination, or planning).
4. Ends with 2 crisp, actionable recommendations phrased as "should" or "must" statements.

STYLE:
- Tone: Authoritative, executive, precise.
- Avoid repeating data values verbatim unless meaningful.
- Prefer sentences that sound like: "The data indicates...", "Operational trends suggest...", "District-level variance implies..."
- Do **not** use any motivational language or generic AI phrasing.`,
		display, data.String(), s.avg,
		s.name(s.topIdx), s.scaled[s.topIdx],
		s.name(s.lowIdx), s.scaled[s.lowIdx],
		display)
}

func headlinePrompt(label string, s stats) string {
	return fmt.Sprintf(`Summarize the key outcome of this %s efficiency report in under 10 words.
Tone: crisp, analytical, formal.
Context:
Top District: %s, Lowest District: %s, Average: %.2f%%.`,
		label, s.name(s.topIdx), s.name(s.lowIdx), s.avg)
}

var disclaimerLine = regexp.MustCompile(`(?i)(AI|automated|generated|readability|Disclaimer)`)

// cleanOutput strips disclaimer lines and markdown bullet artifacts from the
// model's text.
func cleanOutput(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		if disclaimerLine.MatchString(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "_") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
