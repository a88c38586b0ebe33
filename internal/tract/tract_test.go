package tract

import (
	"errors"
	"reflect"
	"testing"

	"fibertract/internal/signal"
)

func newCleanMotor(t *testing.T, dim int) *Tract {
	t.Helper()
	tr, err := NewMotor(MotorSkeletal, dim)
	if err != nil {
		t.Fatalf("new motor: %v", err)
	}
	tr.Gain = 128
	tr.Conductivity = 255
	tr.Jitter = 0
	tr.Sensitivity = 255
	tr.Elasticity = 255
	return tr
}

func newCleanSensory(t *testing.T, kind Kind, dim int) *Tract {
	t.Helper()
	tr, err := NewSensory(kind, dim)
	if err != nil {
		t.Fatalf("new sensory: %v", err)
	}
	tr.Gain = 128
	tr.Conductivity = 255
	tr.Jitter = 0
	tr.Sensitivity = 255
	tr.Elasticity = 255
	return tr
}

func TestMotorDefaults(t *testing.T) {
	tr, err := NewMotor(MotorSkeletal, 4)
	if err != nil {
		t.Fatalf("new motor: %v", err)
	}
	if tr.Gain != 160 {
		t.Fatalf("motor gain default: got=%d want=160", tr.Gain)
	}
	if tr.Fatigue != 0 {
		t.Fatalf("fatigue default: got=%d want=0", tr.Fatigue)
	}
	if tr.Conductivity != 128 || tr.Endurance != 128 || tr.Elasticity != 128 ||
		tr.Sensitivity != 128 || tr.Strength != 128 || tr.Jitter != 128 {
		t.Fatal("all other properties should default to 128")
	}
	if tr.ReceptorMode != Phasic {
		t.Fatal("receptor mode should default to phasic")
	}
	if len(tr.MotorSignals) != 4 || tr.SensorySignals != nil {
		t.Fatal("motor tract should carry only the motor representation")
	}
}

func TestSensoryDefaults(t *testing.T) {
	tr, err := NewSensory(Mechanoreceptive, 8)
	if err != nil {
		t.Fatalf("new sensory: %v", err)
	}
	if tr.Gain != 100 {
		t.Fatalf("sensory gain default: got=%d want=100", tr.Gain)
	}
	if len(tr.SensorySignals) != 8 || tr.MotorSignals != nil {
		t.Fatal("sensory tract should carry only the sensory representation")
	}
}

func TestConstructorsRejectWrongCategory(t *testing.T) {
	if _, err := NewMotor(Proprioceptive, 4); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
	if _, err := NewSensory(MotorSkeletal, 4); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}

func TestTransmitRejectsWrongCategory(t *testing.T) {
	motor, _ := NewMotor(MotorSkeletal, 2)
	sensory, _ := NewSensory(Proprioceptive, 2)

	if err := motor.TransmitSensory([]int32{1, 2}, 42); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
	if err := sensory.TransmitMotor([]signal.Signal{{Polarity: 1, Magnitude: 10}}, 42); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}

func TestMotorTractAmplifies(t *testing.T) {
	tr := newCleanMotor(t, 4)
	tr.Gain = 200

	input := []signal.Signal{
		{Polarity: 1, Magnitude: 100},
		{Polarity: -1, Magnitude: 50},
		{},
		{Polarity: 1, Magnitude: 10},
	}
	if err := tr.TransmitMotor(input, 42); err != nil {
		t.Fatalf("transmit: %v", err)
	}

	// 100 * 200/128 = 156
	if tr.MotorSignals[0].Polarity != 1 || tr.MotorSignals[0].Magnitude != 156 {
		t.Fatalf("channel 0: got=%+v", tr.MotorSignals[0])
	}
	// 50 * 200/128 = 78
	if tr.MotorSignals[1].Polarity != -1 || tr.MotorSignals[1].Magnitude != 78 {
		t.Fatalf("channel 1: got=%+v", tr.MotorSignals[1])
	}
	if tr.MotorSignals[2].Magnitude != 0 {
		t.Fatalf("channel 2 should be silent: got=%+v", tr.MotorSignals[2])
	}
	// 10 * 200/128 = 15
	if tr.MotorSignals[3].Magnitude != 15 {
		t.Fatalf("channel 3: got=%+v", tr.MotorSignals[3])
	}
}

func TestMotorFatigueDegrades(t *testing.T) {
	tr := newCleanMotor(t, 1)
	tr.Fatigue = 128

	if err := tr.TransmitMotor([]signal.Signal{{Polarity: 1, Magnitude: 200}}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}

	// 200 * 127/255 = 99
	if tr.MotorSignals[0].Magnitude != 99 {
		t.Fatalf("fatigued magnitude: got=%d want=99", tr.MotorSignals[0].Magnitude)
	}
}

func TestMotorConductivityLoss(t *testing.T) {
	tr := newCleanMotor(t, 1)
	tr.Conductivity = 128

	if err := tr.TransmitMotor([]signal.Signal{{Polarity: 1, Magnitude: 200}}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}

	// 200 * 128/255 = 100
	if tr.MotorSignals[0].Magnitude != 100 {
		t.Fatalf("degraded magnitude: got=%d want=100", tr.MotorSignals[0].Magnitude)
	}
}

func TestMotorElasticitySmoothing(t *testing.T) {
	tr := newCleanMotor(t, 1)
	tr.Elasticity = 128

	input := []signal.Signal{{Polarity: 1, Magnitude: 100}}
	if err := tr.TransmitMotor(input, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	// 0 + (100-0)*128/255 = 50
	if tr.MotorSignals[0].Magnitude != 50 {
		t.Fatalf("first smoothing step: got=%d want=50", tr.MotorSignals[0].Magnitude)
	}

	if err := tr.TransmitMotor(input, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	// 50 + (100-50)*128/255 = 75
	if tr.MotorSignals[0].Magnitude != 75 {
		t.Fatalf("second smoothing step: got=%d want=75", tr.MotorSignals[0].Magnitude)
	}
}

func TestMotorZeroInputDecays(t *testing.T) {
	tr := newCleanMotor(t, 1)
	if err := tr.TransmitMotor([]signal.Signal{{Polarity: 1, Magnitude: 100}}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if tr.MotorSignals[0].Magnitude != 100 {
		t.Fatalf("priming magnitude: got=%d", tr.MotorSignals[0].Magnitude)
	}

	tr.Elasticity = 128
	if err := tr.TransmitMotor([]signal.Signal{{}}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	// 100 * 127/255 = 49, polarity held until silence.
	if tr.MotorSignals[0].Polarity != 1 || tr.MotorSignals[0].Magnitude != 49 {
		t.Fatalf("first decay step: got=%+v", tr.MotorSignals[0])
	}

	if err := tr.TransmitMotor([]signal.Signal{{}}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	// 49 * 127/255 = 24
	if tr.MotorSignals[0].Magnitude != 24 {
		t.Fatalf("second decay step: got=%+v", tr.MotorSignals[0])
	}
}

func TestMotorRecruitmentThreshold(t *testing.T) {
	tr := newCleanMotor(t, 2)
	tr.Sensitivity = 200 // threshold = 55

	input := []signal.Signal{
		{Polarity: 1, Magnitude: 50},  // below threshold
		{Polarity: 1, Magnitude: 100}, // above threshold
	}
	if err := tr.TransmitMotor(input, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if tr.MotorSignals[0].Magnitude != 0 {
		t.Fatalf("weak signal should not recruit: got=%+v", tr.MotorSignals[0])
	}
	if tr.MotorSignals[1].Magnitude != 100 {
		t.Fatalf("strong signal should pass: got=%+v", tr.MotorSignals[1])
	}
}

func TestMotorTruncatesAndZeroesExtraChannels(t *testing.T) {
	tr := newCleanMotor(t, 4)
	// Prime all four channels.
	full := []signal.Signal{
		{Polarity: 1, Magnitude: 100}, {Polarity: 1, Magnitude: 100},
		{Polarity: 1, Magnitude: 100}, {Polarity: 1, Magnitude: 100},
	}
	if err := tr.TransmitMotor(full, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}

	// Shorter input: remaining channels are zeroed outright.
	if err := tr.TransmitMotor(full[:2], 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if tr.MotorSignals[2].Magnitude != 0 || tr.MotorSignals[3].Magnitude != 0 {
		t.Fatal("channels past the input should be zeroed")
	}

	// Longer input: only dim channels processed, no panic.
	long := append(append([]signal.Signal(nil), full...), signal.Signal{Polarity: 1, Magnitude: 50})
	if err := tr.TransmitMotor(long, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
}

func TestMotorJitterIsDeterministic(t *testing.T) {
	a := newCleanMotor(t, 3)
	b := newCleanMotor(t, 3)
	a.Jitter = 100
	b.Jitter = 100

	input := []signal.Signal{
		{Polarity: 1, Magnitude: 100},
		{Polarity: -1, Magnitude: 200},
		{Polarity: 1, Magnitude: 50},
	}
	if err := a.TransmitMotor(input, 777); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if err := b.TransmitMotor(input, 777); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if !reflect.DeepEqual(a.MotorSignals, b.MotorSignals) {
		t.Fatalf("same seed should give same output: %v vs %v", a.MotorSignals, b.MotorSignals)
	}
}

func TestSensoryWeberQuantizes(t *testing.T) {
	tr := newCleanSensory(t, Proprioceptive, 4)

	if err := tr.TransmitSensory([]int32{23, 130, 500, -47}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}

	want := []int32{20, 130, 495, -45}
	for i, w := range want {
		if tr.SensorySignals[i] != w {
			t.Fatalf("channel %d: got=%d want=%d", i, tr.SensorySignals[i], w)
		}
	}
}

func TestSensoryThresholdGates(t *testing.T) {
	tr := newCleanSensory(t, Mechanoreceptive, 2)
	tr.Sensitivity = 128 // phasic threshold = 508

	if err := tr.TransmitSensory([]int32{100, 600}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if tr.SensorySignals[0] != 0 {
		t.Fatalf("weak signal should be gated: got=%d", tr.SensorySignals[0])
	}
	if tr.SensorySignals[1] == 0 {
		t.Fatal("strong signal should pass the threshold")
	}
}

func TestTonicReceptorBypassesThreshold(t *testing.T) {
	tr, err := NewSensory(Mechanoreceptive, 2)
	if err != nil {
		t.Fatalf("new sensory: %v", err)
	}
	tr.Gain = 100
	tr.Conductivity = 128
	tr.Jitter = 0
	tr.Sensitivity = 180 // phasic threshold would be 300
	tr.Elasticity = 255
	tr.ReceptorMode = Tonic

	// 500 -> Weber 495 -> gain 386 -> conductivity 193; below the phasic
	// threshold but tonic passes it through.
	if err := tr.TransmitSensory([]int32{500, 100}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if tr.SensorySignals[0] != 193 {
		t.Fatalf("tonic should pass the level: got=%d want=193", tr.SensorySignals[0])
	}
	if tr.SensorySignals[1] == 0 {
		t.Fatal("tonic should pass weak sustained signals too")
	}
}

func TestPhasicGatesByDefault(t *testing.T) {
	tr, err := NewSensory(Mechanoreceptive, 1)
	if err != nil {
		t.Fatalf("new sensory: %v", err)
	}
	tr.Gain = 100
	tr.Conductivity = 128
	tr.Jitter = 0
	tr.Sensitivity = 180
	tr.Elasticity = 255

	// Identical configuration and input to the tonic test above: the
	// default phasic mode zeroes what tonic passed.
	if err := tr.TransmitSensory([]int32{500}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if tr.SensorySignals[0] != 0 {
		t.Fatalf("phasic should gate this: got=%d", tr.SensorySignals[0])
	}
}

func TestSensoryZeroInputDecays(t *testing.T) {
	tr := newCleanSensory(t, Proprioceptive, 1)
	if err := tr.TransmitSensory([]int32{500}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if tr.SensorySignals[0] != 495 {
		t.Fatalf("priming value: got=%d", tr.SensorySignals[0])
	}

	tr.Elasticity = 128
	if err := tr.TransmitSensory([]int32{0}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	// 495 * 127/255 = 246
	if tr.SensorySignals[0] != 246 {
		t.Fatalf("decay step: got=%d want=246", tr.SensorySignals[0])
	}
}

func TestSensoryJitterIsDeterministic(t *testing.T) {
	a := newCleanSensory(t, Interoceptive, 3)
	b := newCleanSensory(t, Interoceptive, 3)
	a.Jitter = 80
	b.Jitter = 80

	input := []int32{300, -700, 1500}
	if err := a.TransmitSensory(input, 999); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if err := b.TransmitSensory(input, 999); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if !reflect.DeepEqual(a.SensorySignals, b.SensorySignals) {
		t.Fatalf("same seed should give same output: %v vs %v", a.SensorySignals, b.SensorySignals)
	}
}

func TestZeroDimensionTractIsLegal(t *testing.T) {
	motor, err := NewMotor(MotorSpindle, 0)
	if err != nil {
		t.Fatalf("new motor: %v", err)
	}
	if err := motor.TransmitMotor(nil, 1); err != nil {
		t.Fatalf("transmit on empty tract: %v", err)
	}
	if motor.IsActive() || motor.ActivityLevel() != 0 {
		t.Fatal("empty tract should be inert")
	}

	sensory, err := NewSensory(Interoceptive, 0)
	if err != nil {
		t.Fatalf("new sensory: %v", err)
	}
	if err := sensory.TransmitSensory(nil, 1); err != nil {
		t.Fatalf("transmit on empty tract: %v", err)
	}
}

func TestActivityQueries(t *testing.T) {
	tr := newCleanMotor(t, 3)
	if tr.IsActive() {
		t.Fatal("fresh tract should be idle")
	}
	input := []signal.Signal{
		{Polarity: 1, Magnitude: 100},
		{Polarity: -1, Magnitude: 50},
		{},
	}
	if err := tr.TransmitMotor(input, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if !tr.IsActive() {
		t.Fatal("tract should be active after transmission")
	}
	if got := tr.ActivityLevel(); got != 150 {
		t.Fatalf("activity level: got=%d want=150", got)
	}

	sens := newCleanSensory(t, Proprioceptive, 2)
	if err := sens.TransmitSensory([]int32{100, -200}, 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	// 100 and -195 after quantization.
	if got := sens.ActivityLevel(); got != 295 {
		t.Fatalf("sensory activity level: got=%d want=295", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tr := newCleanMotor(t, 2)
	tr.Jitter = 30
	tr.RecentDensity = 77
	tr.LifetimeActivations = 12345
	if err := tr.TransmitMotor([]signal.Signal{{Polarity: 1, Magnitude: 90}, {Polarity: -1, Magnitude: 40}}, 5); err != nil {
		t.Fatalf("transmit: %v", err)
	}

	restored, err := FromRecord(tr.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !reflect.DeepEqual(restored.Snapshot(), tr.Snapshot()) {
		t.Fatal("snapshot round-trip should be lossless")
	}

	// A restored tract continues the same trajectory.
	input := []signal.Signal{{}, {Polarity: -1, Magnitude: 40}}
	if err := tr.TransmitMotor(input, 6); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if err := restored.TransmitMotor(input, 6); err != nil {
		t.Fatalf("transmit restored: %v", err)
	}
	if !reflect.DeepEqual(restored.MotorSignals, tr.MotorSignals) {
		t.Fatal("restored tract should transmit identically")
	}
}

func TestFromRecordRejectsBadOrdinals(t *testing.T) {
	rec := newCleanMotor(t, 1).Snapshot()
	rec.Kind = KindCount
	if _, err := FromRecord(rec); err == nil {
		t.Fatal("invalid kind ordinal should fail")
	}

	rec = newCleanMotor(t, 1).Snapshot()
	rec.ReceptorMode = 9
	if _, err := FromRecord(rec); err == nil {
		t.Fatal("invalid receptor mode should fail")
	}
}
