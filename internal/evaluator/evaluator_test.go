package evaluator

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kozaktomas/physiognomy/internal/catalog"
	"github.com/kozaktomas/physiognomy/internal/landmark"
	"github.com/kozaktomas/physiognomy/internal/log"
	"github.com/kozaktomas/physiognomy/internal/metric"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func thirdsPoints() []landmark.Landmark {
	return []landmark.Landmark{
		{Name: landmark.Hair, X: 0, Y: 0},
		{Name: landmark.Glabella, X: 0, Y: 40},
		{Name: landmark.NoseBase, X: 0, Y: 80},
		{Name: landmark.Chin, X: 0, Y: 100},
	}
}

func traitNames(traits []TraitMatch) []string {
	out := make([]string, len(traits))
	for i, t := range traits {
		out[i] = t.Trait
	}
	return out
}

func TestEvaluate_FacialThirdsScenario(t *testing.T) {
	cat := catalog.New(catalog.Category{
		Name: "tam_dinh",
		Rules: []catalog.Rule{
			{Metric: metric.RUpper, Predicate: catalog.Threshold(0.35), Trait: "upper", Tags: []string{"Intellectual"}},
			{Metric: metric.RMiddle, Predicate: catalog.Threshold(0.35), Trait: "middle", Tags: []string{"Determined"}},
			{Metric: metric.RLower, Predicate: catalog.Threshold(0.35), Trait: "lower", Tags: []string{"Wealth"}},
			{Metric: metric.TamDinhDiff, Predicate: catalog.Threshold(0.03), Trait: "balanced", Tags: []string{"Balanced"}},
		},
	})

	report := Evaluate(landmark.Build(thirdsPoints()), cat)

	got := traitNames(report.Traits("tam_dinh"))
	want := []string{"upper", "middle"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tam_dinh traits mismatch (-want +got):\n%s", diff)
	}
	if o, _ := report.Outcome("tam_dinh"); o != NonEmpty {
		t.Errorf("expected NonEmpty outcome, got %s", o)
	}
}

func TestEvaluate_FallbackOnlyWhenNothingMatched(t *testing.T) {
	cat := catalog.New(catalog.Category{
		Name: "tam_dinh",
		Rules: []catalog.Rule{
			{Metric: metric.RLower, Predicate: catalog.Threshold(0.35), Trait: "lower"},
			{Metric: metric.TamDinhDiff, Predicate: catalog.Threshold(0.03), Trait: "balanced"},
		},
	})

	report := Evaluate(landmark.Build(thirdsPoints()), cat)

	want := []TraitMatch{{Trait: "tam_dinh: balanced/neutral", Tags: []string{"Neutral", "Balanced"}}}
	if diff := cmp.Diff(want, report.Traits("tam_dinh")); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
	if o, _ := report.Outcome("tam_dinh"); o != FallbackApplied {
		t.Errorf("expected FallbackApplied, got %s", o)
	}
}

func TestEvaluate_OverlappingRangesAllEmitInOrder(t *testing.T) {
	// Adversarial catalog: the engine must not pick one of the overlapping rules.
	cat := catalog.New(catalog.Category{
		Name: "mat",
		Rules: []catalog.Rule{
			{Metric: metric.ESR, Predicate: catalog.Range(1.0, 2.0), Trait: "first", Tags: []string{"A"}},
			{Metric: metric.ESR, Predicate: catalog.Range(3.0, 4.0), Trait: "disjoint"},
			{Metric: metric.ESR, Predicate: catalog.Range(1.5, 2.5), Trait: "second", Tags: []string{"B"}},
		},
	})

	// Inner distance 36, both eyes 20 wide: ESR = 1.8.
	set := landmark.Build([]landmark.Landmark{
		{Name: landmark.EyeOutLeft, X: 0, Y: 0},
		{Name: landmark.EyeInLeft, X: 20, Y: 0},
		{Name: landmark.EyeInRight, X: 56, Y: 0},
		{Name: landmark.EyeOutRight, X: 76, Y: 0},
	})
	report := Evaluate(set, cat)

	want := []TraitMatch{
		{Trait: "first", Tags: []string{"A"}},
		{Trait: "second", Tags: []string{"B"}},
	}
	if diff := cmp.Diff(want, report.Traits("mat")); diff != "" {
		t.Errorf("overlap mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_EveryCategoryNonEmpty(t *testing.T) {
	inputs := map[string][]landmark.Landmark{
		"empty":  nil,
		"thirds": thirdsPoints(),
		"single": {{Name: landmark.Chin, X: 1, Y: 1}},
	}
	cat := catalog.Default()

	for name, points := range inputs {
		t.Run(name, func(t *testing.T) {
			report := Evaluate(landmark.Build(points), cat)
			if len(report.Categories()) != len(cat.Categories()) {
				t.Fatalf("expected %d categories, got %d", len(cat.Categories()), len(report.Categories()))
			}
			for _, c := range cat.Categories() {
				if len(report.Traits(c.Name)) == 0 {
					t.Errorf("category %s is empty", c.Name)
				}
			}
		})
	}
}

func TestEvaluate_EmptySetWithDefaultCatalog(t *testing.T) {
	report := Evaluate(landmark.Build(nil), catalog.Default())

	// nose_tip_ratio falls back to "downturned", which the catalog maps.
	mui := traitNames(report.Traits("mui"))
	if len(mui) != 1 || mui[0] != "Mũi dòm mồm: Khôn ngoan, giỏi tính toán chi phí" {
		t.Errorf("unexpected mui traits %v", mui)
	}

	// Angle_jaw falls back to 120 which is above the square-jaw bound of 110,
	// and R_mouth_width is 0 which is a "small mouth".
	mieng := traitNames(report.Traits("mieng_cam"))
	if len(mieng) != 1 || mieng[0] != "Miệng nhỏ: Thận trọng trong lời nói, kín kẽ" {
		t.Errorf("unexpected mieng_cam traits %v", mieng)
	}

	// tam_dinh_diff is 0 on an empty face, which counts as balanced.
	tamDinh := traitNames(report.Traits("tam_dinh"))
	if len(tamDinh) != 1 || tamDinh[0] != "Tam đình cân xứng: Cuộc đời bình ổn, ít sóng gió" {
		t.Errorf("unexpected tam_dinh traits %v", tamDinh)
	}

	for _, name := range []string{"long_may", "tai", "an_duong"} {
		if o, _ := report.Outcome(name); o != FallbackApplied {
			t.Errorf("expected %s to fall back, got %s", name, o)
		}
	}
}

func TestEvaluate_InertRulesSkipped(t *testing.T) {
	cat := catalog.New(catalog.Category{
		Name: "mix",
		Rules: []catalog.Rule{
			{Metric: "not_a_metric", Predicate: catalog.Range(-1e9, 1e9), Trait: "never"},
			{Metric: metric.FaceHeight, Predicate: catalog.AtLeast(50), Trait: "tall"},
		},
	})

	report := Evaluate(landmark.Build(thirdsPoints()), cat)
	got := traitNames(report.Traits("mix"))
	if diff := cmp.Diff([]string{"tall"}, got); diff != "" {
		t.Errorf("inert rule handling mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	set := landmark.Build(thirdsPoints())
	cat := catalog.Default()

	first, err := json.Marshal(Evaluate(set, cat))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for range 10 {
		next, err := json.Marshal(Evaluate(set, cat))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if !bytes.Equal(first, next) {
			t.Fatalf("reports differ:\n%s\n%s", first, next)
		}
	}
}

func TestEvaluate_ConcurrentReadsOfSharedCatalog(t *testing.T) {
	cat := catalog.Default()
	want, _ := json.Marshal(Evaluate(landmark.Build(thirdsPoints()), cat))

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := json.Marshal(Evaluate(landmark.Build(thirdsPoints()), cat))
			if !bytes.Equal(want, got) {
				errs <- string(got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("concurrent evaluation differed: %s", e)
	}
}

func TestReport_MarshalJSON_CatalogOrder(t *testing.T) {
	cat := catalog.New(
		catalog.Category{Name: "zeta"},
		catalog.Category{Name: "alpha"},
	)
	data, err := json.Marshal(Evaluate(landmark.Build(nil), cat))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"zeta":[{"trait":"zeta: balanced/neutral","tags":["Neutral","Balanced"]}],` +
		`"alpha":[{"trait":"alpha: balanced/neutral","tags":["Neutral","Balanced"]}]}`
	if string(data) != want {
		t.Errorf("unexpected JSON:\n got %s\nwant %s", data, want)
	}
}

func TestReport_Tags(t *testing.T) {
	cat := catalog.New(
		catalog.Category{Name: "a", Rules: []catalog.Rule{
			{Metric: metric.FaceHeight, Predicate: catalog.AtLeast(0), Trait: "x", Tags: []string{"Balanced", "Wealth", "Wealth"}},
		}},
		catalog.Category{Name: "b"},
	)
	report := Evaluate(landmark.Build(nil), cat)

	want := []string{"Balanced", "Wealth", "Neutral"}
	if diff := cmp.Diff(want, report.Tags()); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Balanced", "Wealth"}, report.Traits("a")[0].Tags); diff != "" {
		t.Errorf("rule tags should be de-duplicated (-want +got):\n%s", diff)
	}
}

func TestReport_UnknownCategory(t *testing.T) {
	report := Evaluate(landmark.Build(nil), catalog.Default())
	if report.Traits("nope") != nil {
		t.Error("expected nil traits for unknown category")
	}
	if _, ok := report.Outcome("nope"); ok {
		t.Error("expected no outcome for unknown category")
	}
}

func TestAnalyze(t *testing.T) {
	if _, err := Analyze(nil, catalog.Default()); !errors.Is(err, ErrNoLandmarks) {
		t.Errorf("expected ErrNoLandmarks, got %v", err)
	}

	analysis, err := Analyze(thirdsPoints(), catalog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(analysis.Metrics) != len(metric.Keys()) {
		t.Errorf("expected %d metrics, got %d", len(metric.Keys()), len(analysis.Metrics))
	}
	if len(analysis.Landmarks) != 4 {
		t.Errorf("expected 4 landmarks, got %d", len(analysis.Landmarks))
	}
	if len(analysis.Tags) == 0 {
		t.Error("expected tags to be collected")
	}
}
