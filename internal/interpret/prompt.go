package interpret

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kozaktomas/physiognomy/internal/evaluator"
)

//go:embed prompts/interpret.txt
var interpretPrompt string

const notProvided = "Chưa cung cấp"

var errEmptyInterpretation = errors.New("interpretation has no content")

// Context is the condensed report sent to the provider.
type Context struct {
	Person   Person        `json:"personalInfo"`
	Thirds   ThirdsContext `json:"tam_dinh"`
	Features Features      `json:"ngu_quan"`
	Glabella Glabella      `json:"an_duong"`
}

// ThirdsContext holds the joined traits of each facial third.
type ThirdsContext struct {
	Upper  string `json:"thuong"`
	Middle string `json:"trung"`
	Lower  string `json:"ha"`
}

// BuildContext joins the matched traits of each category. Categories that
// fell back to neutral are replaced by the fixed description of the zone.
func BuildContext(report *evaluator.Report, person Person) Context {
	thirds := matchedTraits(report, "tam_dinh")
	c := Context{
		Person: person,
		Thirds: ThirdsContext{
			Upper:  joinTraits(filterTraits(thirds, "Thượng"), fallbackThirds.Upper),
			Middle: joinTraits(filterTraits(thirds, "Trung"), fallbackThirds.Middle),
			Lower:  joinTraits(filterTraits(thirds, "Hạ"), fallbackThirds.Lower),
		},
		Features: Features{
			Brows:     joinTraits(matchedTraits(report, "long_may"), fallbackFeatures.Brows),
			Eyes:      joinTraits(matchedTraits(report, "mat"), fallbackFeatures.Eyes),
			Nose:      joinTraits(matchedTraits(report, "mui"), fallbackFeatures.Nose),
			Ears:      joinTraits(matchedTraits(report, "tai"), fallbackFeatures.Ears),
			MouthChin: joinTraits(matchedTraits(report, "mieng_cam"), fallbackFeatures.MouthChin),
		},
		Glabella: fallbackGlabella,
	}
	if glabella := matchedTraits(report, "an_duong"); len(glabella) > 0 {
		c.Glabella.Description = joinTraits(glabella, fallbackGlabella.Description)
	}
	return c
}

// matchedTraits returns the trait texts of a category, or nil when the
// category is missing or only holds its neutral fallback.
func matchedTraits(report *evaluator.Report, category string) []string {
	if report == nil {
		return nil
	}
	if outcome, ok := report.Outcome(category); !ok || outcome == evaluator.FallbackApplied {
		return nil
	}
	traits := report.Traits(category)
	out := make([]string, 0, len(traits))
	for _, t := range traits {
		out = append(out, t.Trait)
	}
	return out
}

func filterTraits(traits []string, substr string) []string {
	var out []string
	for _, t := range traits {
		if strings.Contains(t, substr) {
			out = append(out, t)
		}
	}
	return out
}

func joinTraits(traits []string, fallback string) string {
	if len(traits) == 0 {
		return fallback
	}
	return strings.Join(traits, ". ")
}

// BuildPrompt renders the provider prompt for c.
func BuildPrompt(c Context) (string, error) {
	contextJSON, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode interpretation context: %w", err)
	}
	return fmt.Sprintf(interpretPrompt, personText(c.Person), string(contextJSON)), nil
}

func personText(p Person) string {
	if p == (Person{}) {
		return ""
	}
	orDefault := func(s string) string {
		if s == "" {
			return notProvided
		}
		return s
	}
	var b strings.Builder
	b.WriteString("\nThông tin cá nhân:\n")
	fmt.Fprintf(&b, "- Tên: %s\n", orDefault(p.Name))
	fmt.Fprintf(&b, "- Ngày sinh: %s\n", orDefault(p.Birthday))
	fmt.Fprintf(&b, "- Giới tính: %s\n", orDefault(p.Gender))
	return b.String()
}

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

// parseInterpretation decodes a provider response. Both the
// {"interpret": {...}} envelope and a bare object are accepted, with or
// without markdown code fences.
func parseInterpretation(content string) (*Interpretation, error) {
	data := []byte(strings.TrimSpace(fenceReplacer.Replace(content)))

	var envelope struct {
		Interpret *Interpretation `json:"interpret"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	if envelope.Interpret != nil {
		return envelope.Interpret, nil
	}

	var bare Interpretation
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	if bare.Overview == "" && bare.Thirds == (Thirds{}) && bare.Features == (Features{}) &&
		bare.Glabella == (Glabella{}) && len(bare.Advice) == 0 {
		return nil, errEmptyInterpretation
	}
	return &bare, nil
}
