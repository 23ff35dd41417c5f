// Package metric computes named geometric metrics from a face's landmarks.
//
// Every metric is a pure, total function of a landmark.Set: when points are
// missing it returns a fixed fallback instead of failing. The set of metric
// keys is closed; rule catalogs resolve their keys against it once at load.
package metric

import (
	"math"

	"github.com/kozaktomas/physiognomy/internal/constants"
	"github.com/kozaktomas/physiognomy/internal/landmark"
)

// Key identifies a metric.
type Key string

const (
	FaceHeight     Key = "faceHeight"
	RUpper         Key = "R_upper"
	RMiddle        Key = "R_middle"
	RLower         Key = "R_lower"
	TamDinhDiff    Key = "tam_dinh_diff"
	ESR            Key = "ESR"
	AngleCantal    Key = "Angle_cantal"
	RNoseWidth     Key = "R_nose_width"
	NoseTipRatio   Key = "nose_tip_ratio"
	EarPosition    Key = "ear_position"
	BrowWidthRatio Key = "brow_width_ratio"
	RMouthWidth    Key = "R_mouth_width"
	AngleJaw       Key = "Angle_jaw"
)

// Func computes one metric. Implementations never fail.
type Func func(landmark.Set) Value

// Result pairs a metric key with its computed value.
type Result struct {
	Key   Key   `json:"key"`
	Value Value `json:"value"`
}

// keys fixes the reporting order of All.
var keys = []Key{
	FaceHeight,
	RUpper, RMiddle, RLower, TamDinhDiff,
	ESR, AngleCantal,
	RNoseWidth, NoseTipRatio,
	EarPosition,
	BrowWidthRatio,
	RMouthWidth, AngleJaw,
}

var table = map[Key]Func{
	FaceHeight:     num(faceHeight),
	RUpper:         num(rUpper),
	RMiddle:        num(rMiddle),
	RLower:         num(rLower),
	TamDinhDiff:    num(tamDinhDiff),
	ESR:            num(eyeSpreadRatio),
	AngleCantal:    num(angleCantal),
	RNoseWidth:     num(noseWidthRatio),
	NoseTipRatio:   noseTip,
	EarPosition:    earPosition,
	BrowWidthRatio: num(browWidthRatio),
	RMouthWidth:    num(mouthWidthRatio),
	AngleJaw:       num(angleJaw),
}

// Keys returns every known metric key in reporting order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// Lookup resolves a metric key. The second result is false for unknown keys.
func Lookup(key string) (Func, bool) {
	f, ok := table[Key(key)]
	return f, ok
}

// Compute evaluates one metric by key. Unknown keys report false.
func Compute(key Key, set landmark.Set) (Value, bool) {
	f, ok := table[key]
	if !ok {
		return Value{}, false
	}
	return f(set), true
}

// All evaluates every metric against set, in reporting order.
func All(set landmark.Set) []Result {
	out := make([]Result, 0, len(keys))
	for _, k := range keys {
		out = append(out, Result{Key: k, Value: table[k](set)})
	}
	return out
}

func num(f func(landmark.Set) float64) Func {
	return func(set landmark.Set) Value { return Number(f(set)) }
}

func faceHeight(set landmark.Set) float64 {
	return Distance(set, landmark.Hair, landmark.Chin)
}

func rUpper(set landmark.Set) float64 {
	return ratio(Distance(set, landmark.Hair, landmark.Glabella), faceHeight(set))
}

func rMiddle(set landmark.Set) float64 {
	return ratio(Distance(set, landmark.Glabella, landmark.NoseBase), faceHeight(set))
}

func rLower(set landmark.Set) float64 {
	return ratio(Distance(set, landmark.NoseBase, landmark.Chin), faceHeight(set))
}

// tamDinhDiff is the spread between the largest and smallest facial third.
func tamDinhDiff(set landmark.Set) float64 {
	u, m, l := rUpper(set), rMiddle(set), rLower(set)
	return max(u, m, l) - min(u, m, l)
}

func innerEyeDistance(set landmark.Set) float64 {
	return Distance(set, landmark.EyeInLeft, landmark.EyeInRight)
}

func eyeSpreadRatio(set landmark.Set) float64 {
	left := Distance(set, landmark.EyeInLeft, landmark.EyeOutLeft)
	right := Distance(set, landmark.EyeInRight, landmark.EyeOutRight)
	return ratio(innerEyeDistance(set), (left+right)/2)
}

// angleCantal is the tilt of the left eye from inner to outer corner, in
// degrees, positive when the outer corner sits higher.
func angleCantal(set landmark.Set) float64 {
	in, ok1 := set.Lookup(landmark.EyeInLeft)
	out, ok2 := set.Lookup(landmark.EyeOutLeft)
	if !ok1 || !ok2 {
		return 0
	}
	dy := out.Y - in.Y
	dx := out.X - in.X
	return degrees(math.Atan2(-dy, dx))
}

func noseWidthRatio(set landmark.Set) float64 {
	return ratio(Distance(set, landmark.NoseLeft, landmark.NoseRight), innerEyeDistance(set))
}

// noseTip compares the nose top against the nose base. Missing points read
// as y=0: with both missing the result is "downturned", with only nose_top
// missing any nose_base below the origin gives "upturned".
func noseTip(set landmark.Set) Value {
	if yOr(set, landmark.NoseTop, 0) < yOr(set, landmark.NoseBase, 0) {
		return Label(Upturned)
	}
	return Label(Downturned)
}

// earPosition compares the left ear point against the outer corner of the
// left eye. A missing ear is placed at constants.MissingEarY ("low"); a
// missing eye corner reads as y=0.
func earPosition(set landmark.Set) Value {
	if yOr(set, landmark.EarLeft, constants.MissingEarY) < yOr(set, landmark.EyeOutLeft, 0) {
		return Label(High)
	}
	return Label(Low)
}

func browWidthRatio(set landmark.Set) float64 {
	brow := Distance(set, landmark.BrowStartLeft, landmark.BrowEndLeft)
	eye := Distance(set, landmark.EyeInLeft, landmark.EyeOutLeft)
	return ratio(brow, eye)
}

func mouthWidthRatio(set landmark.Set) float64 {
	mouth := Distance(set, landmark.MouthLeft, landmark.MouthRight)
	return ratio(mouth, innerEyeDistance(set)*constants.MouthEyeSpanFactor)
}

func angleJaw(set landmark.Set) float64 {
	return AngleAtVertex(set, landmark.EarLeft, landmark.GonionLeft, landmark.Chin, constants.JawAngleFallback)
}
