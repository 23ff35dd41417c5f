package interpret

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kozaktomas/physiognomy/internal/catalog"
	"github.com/kozaktomas/physiognomy/internal/evaluator"
	"github.com/kozaktomas/physiognomy/internal/landmark"
	"github.com/kozaktomas/physiognomy/internal/log"
	"github.com/kozaktomas/physiognomy/internal/metric"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeProvider struct {
	name    string
	result  *Interpretation
	err     error
	prompts []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Interpret(_ context.Context, prompt string) (*Interpretation, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// sampleReport matches every rule of tam_dinh and mat, leaving the rest neutral.
func sampleReport() *evaluator.Report {
	always := catalog.AtLeast(0)
	cat := catalog.New(
		catalog.Category{Name: "tam_dinh", Rules: []catalog.Rule{
			{Metric: metric.FaceHeight, Predicate: always, Trait: "Thượng đình cao rộng"},
			{Metric: metric.FaceHeight, Predicate: always, Trait: "Hạ đình đầy đặn"},
			{Metric: metric.FaceHeight, Predicate: always, Trait: "Tam đình cân xứng"},
		}},
		catalog.Category{Name: "mat", Rules: []catalog.Rule{
			{Metric: metric.FaceHeight, Predicate: always, Trait: "Mắt sáng"},
			{Metric: metric.FaceHeight, Predicate: always, Trait: "Mắt dài"},
		}},
		catalog.Category{Name: "mui"},
		catalog.Category{Name: "an_duong"},
	)
	return evaluator.Evaluate(landmark.Build(nil), cat)
}

func TestBuildContext(t *testing.T) {
	c := BuildContext(sampleReport(), Person{Name: "An"})

	if c.Thirds.Upper != "Thượng đình cao rộng" {
		t.Errorf("unexpected upper third: %q", c.Thirds.Upper)
	}
	if c.Thirds.Middle != fallbackThirds.Middle {
		t.Errorf("expected fixed middle third, got %q", c.Thirds.Middle)
	}
	if c.Thirds.Lower != "Hạ đình đầy đặn" {
		t.Errorf("unexpected lower third: %q", c.Thirds.Lower)
	}
	if c.Features.Eyes != "Mắt sáng. Mắt dài" {
		t.Errorf("expected joined eye traits, got %q", c.Features.Eyes)
	}
	if c.Features.Nose != fallbackFeatures.Nose {
		t.Errorf("neutral category should use the fixed text, got %q", c.Features.Nose)
	}
	if c.Features.Ears != fallbackFeatures.Ears {
		t.Errorf("missing category should use the fixed text, got %q", c.Features.Ears)
	}
	if c.Glabella != fallbackGlabella {
		t.Errorf("expected fixed glabella, got %+v", c.Glabella)
	}
}

func TestBuildContext_NilReport(t *testing.T) {
	c := BuildContext(nil, Person{})
	if c.Features != fallbackFeatures {
		t.Errorf("expected fixed features, got %+v", c.Features)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(BuildContext(sampleReport(), Person{Name: "An", Gender: "MALE"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"- Tên: An", "- Ngày sinh: " + notProvided, "- Giới tính: MALE", "Mắt sáng. Mắt dài", `"tong-quan"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "%!") {
		t.Error("prompt has a formatting error")
	}
	if strings.Contains(prompt, "balanced/neutral") {
		t.Error("prompt should not contain fallback entries")
	}
}

func TestBuildPrompt_NoPerson(t *testing.T) {
	prompt, err := BuildPrompt(BuildContext(sampleReport(), Person{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(prompt, "Thông tin cá nhân") {
		t.Error("expected no personal info section")
	}
}

func TestParseInterpretation(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		overview string
		wantErr  bool
	}{
		{"envelope", `{"interpret": {"tong-quan": "ok", "loi_khuyen": ["a"]}}`, "ok", false},
		{"bare", `{"tong-quan": "bare", "tam_dinh": {"thuong_dinh": "x"}}`, "bare", false},
		{"fenced", "```json\n{\"interpret\": {\"tong-quan\": \"fenced\"}}\n```", "fenced", false},
		{"empty object", `{}`, "", true},
		{"invalid", `{"tong-quan": `, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInterpretation(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Overview != tt.overview {
				t.Errorf("expected overview %q, got %q", tt.overview, got.Overview)
			}
		})
	}
}

func TestInterpret_NoProviderUsesFallback(t *testing.T) {
	result := New().Interpret(context.Background(), sampleReport(), Person{})

	if !result.Fallback || result.Source != SourceFallback {
		t.Errorf("expected fallback result, got source=%s fallback=%v", result.Source, result.Fallback)
	}
	if diff := cmp.Diff(Fallback(), result.Interpretation); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpret_ProviderOrder(t *testing.T) {
	failing := &fakeProvider{name: "gemini", err: errors.New("quota exceeded")}
	working := &fakeProvider{name: "openai", result: &Interpretation{Overview: "from openai"}}

	result := New(failing, working).Interpret(context.Background(), sampleReport(), Person{})

	if result.Fallback {
		t.Fatal("expected provider result, got fallback")
	}
	if result.Source != "openai" {
		t.Errorf("expected source openai, got %s", result.Source)
	}
	if len(failing.prompts) != 1 || len(working.prompts) != 1 {
		t.Errorf("expected each provider called once, got %d and %d", len(failing.prompts), len(working.prompts))
	}
	if failing.prompts[0] != working.prompts[0] {
		t.Error("expected the same prompt for every provider")
	}
}

func TestInterpret_FillsMissingOverview(t *testing.T) {
	p := &fakeProvider{name: "gemini", result: &Interpretation{Features: Features{Eyes: "x"}}}

	result := New(p).Interpret(context.Background(), sampleReport(), Person{})

	if result.Interpretation.Overview != fallbackOverview {
		t.Errorf("expected fallback overview, got %q", result.Interpretation.Overview)
	}
	if result.Interpretation.Advice == nil {
		t.Error("expected non-nil advice")
	}
}

func TestInterpret_AllProvidersFail(t *testing.T) {
	p := &fakeProvider{name: "gemini", err: errors.New("boom")}

	result := New(p).Interpret(context.Background(), sampleReport(), Person{})

	if !result.Fallback {
		t.Error("expected fallback when every provider fails")
	}
	if result.Interpretation.Overview == "" {
		t.Error("overview must always be filled")
	}
}

func TestInterpret_CancelledContext(t *testing.T) {
	p := &fakeProvider{name: "gemini", result: &Interpretation{Overview: "x"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := New(p).Interpret(ctx, sampleReport(), Person{})

	if !result.Fallback {
		t.Error("expected fallback for a cancelled context")
	}
	if len(p.prompts) != 0 {
		t.Error("provider should not be called after cancellation")
	}
}

func TestFallback_JSONKeys(t *testing.T) {
	data, err := json.Marshal(Fallback())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, key := range []string{`"tong-quan"`, `"thuong_dinh"`, `"mieng_cam"`, `"danh_gia"`, `"loi_khuyen":[]`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in %s", key, data)
		}
	}
}

func TestFallback_IsCopy(t *testing.T) {
	a := Fallback()
	a.Advice = append(a.Advice, "mutated")
	a.Overview = "mutated"
	if b := Fallback(); b.Overview != fallbackOverview || len(b.Advice) != 0 {
		t.Error("Fallback should return an independent copy")
	}
}

func TestProviders(t *testing.T) {
	i := New(&fakeProvider{name: "gemini-2.5-flash"}, &fakeProvider{name: "gpt-4.1-mini"})
	if diff := cmp.Diff([]string{"gemini-2.5-flash", "gpt-4.1-mini"}, i.Providers()); diff != "" {
		t.Errorf("providers mismatch (-want +got):\n%s", diff)
	}
}
