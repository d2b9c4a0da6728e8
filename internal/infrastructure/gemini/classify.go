package gemini

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
	"github.com/oksasatya/moodwatch/internal/domain/signal"
)

// rawClassification accepts fractional numbers so they can be rounded and clamped.
type rawClassification struct {
	SentimentScore     float64  `json:"sentimentScore"`
	DistressLevel      float64  `json:"distressLevel"`
	Topics             []string `json:"topics"`
	SuggestedResources []string `json:"suggestedResources"`
}

const maxTags = 10

// Classifier asks the completion service for a JSON classification of a text.
// Urgency is recomputed locally from the clamped distress level.
type Classifier struct {
	gw     repository.CompletionGateway
	opts   repository.CompletionOptions
	scorer *signal.Scorer
	schema string
}

func NewClassifier(gw repository.CompletionGateway, opts repository.CompletionOptions, scorer *signal.Scorer) *Classifier {
	return &Classifier{gw: gw, opts: opts, scorer: scorer, schema: classificationSchema()}
}

func (c *Classifier) Classify(ctx context.Context, text string) (signal.Classification, error) {
	if strings.TrimSpace(text) == "" {
		return signal.Classification{}, apperr.Validation("content", "text must not be empty")
	}
	out, err := c.gw.Complete(ctx, c.directive(text), c.opts)
	if err != nil {
		return signal.Classification{}, err
	}
	return c.parse(out)
}

func (c *Classifier) directive(text string) string {
	var b strings.Builder
	b.WriteString("Classify the emotional content of the message below.\n")
	b.WriteString("Respond with a single JSON object matching this JSON schema and nothing else:\n")
	b.WriteString(c.schema)
	b.WriteString("\n\nMessage:\n")
	b.WriteString(text)
	return b.String()
}

func (c *Classifier) parse(out string) (signal.Classification, error) {
	obj, ok := ExtractJSONObject(out)
	if !ok {
		return signal.Classification{}, &apperr.MalformedResponseError{Reason: "no JSON object in completion", Raw: out}
	}
	var raw rawClassification
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return signal.Classification{}, &apperr.MalformedResponseError{Reason: "invalid classification JSON", Raw: obj, Err: err}
	}

	distress := clampInt(roundFinite(raw.DistressLevel), 0, signal.MaxDistress)
	return signal.Classification{
		SentimentScore:     clampInt(roundFinite(raw.SentimentScore), signal.MinSentiment, signal.MaxSentiment),
		DistressLevel:      distress,
		IsUrgent:           c.scorer.IsUrgent(distress),
		Topics:             trimTags(raw.Topics),
		SuggestedResources: trimTags(raw.SuggestedResources),
	}, nil
}

func classificationSchema() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(&signal.Classification{})
	b, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func roundFinite(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	// Clamp before converting so huge values do not overflow int.
	f = math.Max(-1e6, math.Min(1e6, f))
	return int(math.Round(f))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func trimTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		if len(out) == maxTags {
			break
		}
	}
	return out
}
