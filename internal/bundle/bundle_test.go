package bundle

import (
	"reflect"
	"testing"

	"fibertract/internal/signal"
	"fibertract/internal/tract"
)

func makeTestBundle(t *testing.T) *Bundle {
	t.Helper()
	b := New("test_limb")
	for _, spec := range []struct {
		kind tract.Kind
		dim  int
	}{
		{tract.MotorSkeletal, 8},
		{tract.Proprioceptive, 8},
		{tract.NociceptiveFast, 4},
		{tract.NociceptiveSlow, 4},
	} {
		var tr *tract.Tract
		var err error
		if spec.kind.IsEfferent() {
			tr, err = tract.NewMotor(spec.kind, spec.dim)
		} else {
			tr, err = tract.NewSensory(spec.kind, spec.dim)
		}
		if err != nil {
			t.Fatalf("build tract %s: %v", spec.kind, err)
		}
		b.Add(tr)
	}
	return b
}

func TestBundleCreation(t *testing.T) {
	b := makeTestBundle(t)
	if b.Name != "test_limb" {
		t.Fatalf("unexpected name: %s", b.Name)
	}
	if b.TractCount() != 4 {
		t.Fatalf("tract count: got=%d want=4", b.TractCount())
	}
	if len(b.MotorTracts()) != 1 {
		t.Fatalf("motor tracts: got=%d want=1", len(b.MotorTracts()))
	}
	if len(b.SensoryTracts()) != 3 {
		t.Fatalf("sensory tracts: got=%d want=3", len(b.SensoryTracts()))
	}
}

func TestBundleTractLookup(t *testing.T) {
	b := makeTestBundle(t)
	for _, k := range []tract.Kind{tract.MotorSkeletal, tract.Proprioceptive, tract.NociceptiveFast} {
		if _, ok := b.Tract(k); !ok {
			t.Fatalf("expected tract of kind %s", k)
		}
	}
	if _, ok := b.Tract(tract.MotorSpindle); ok {
		t.Fatal("unexpected spindle tract")
	}
}

func TestBundleActivity(t *testing.T) {
	b := makeTestBundle(t)
	if b.IsActive() || b.TotalActivity() != 0 {
		t.Fatal("fresh bundle should be inert")
	}

	motor, _ := b.Tract(tract.MotorSkeletal)
	motor.MotorSignals[0] = signal.Signal{Polarity: 1, Magnitude: 100}
	noci, _ := b.Tract(tract.NociceptiveFast)
	noci.SensorySignals[0] = -50

	if !b.IsActive() {
		t.Fatal("bundle with carried signals should be active")
	}
	if got := b.TotalActivity(); got != 150 {
		t.Fatalf("total activity: got=%d want=150", got)
	}
}

func TestAdrenalineBoostsMotorGatesPain(t *testing.T) {
	b := makeTestBundle(t)

	motor, _ := b.Tract(tract.MotorSkeletal)
	noci, _ := b.Tract(tract.NociceptiveFast)
	proprio, _ := b.Tract(tract.Proprioceptive)
	gainBefore := motor.Gain
	sensBefore := noci.Sensitivity
	proprioBefore := proprio.Sensitivity

	b.ApplyAdrenaline(200)

	if motor.Gain <= gainBefore {
		t.Fatalf("motor gain should increase: %d vs %d", motor.Gain, gainBefore)
	}
	if noci.Sensitivity >= sensBefore {
		t.Fatalf("nociceptive sensitivity should decrease: %d vs %d", noci.Sensitivity, sensBefore)
	}
	if proprio.Sensitivity != proprioBefore {
		t.Fatal("proprioception should be unaffected by adrenaline")
	}
}

func TestEndorphinReducesPainOnly(t *testing.T) {
	b := makeTestBundle(t)

	proprio, _ := b.Tract(tract.Proprioceptive)
	fast, _ := b.Tract(tract.NociceptiveFast)
	slow, _ := b.Tract(tract.NociceptiveSlow)
	proprioBefore := proprio.Sensitivity

	b.ApplyEndorphin(200)

	if proprio.Sensitivity != proprioBefore {
		t.Fatal("proprioception should be unaffected")
	}
	// 200/3 = 66 off both nociceptive kinds.
	if fast.Sensitivity != 128-66 || slow.Sensitivity != 128-66 {
		t.Fatalf("nociceptive sensitivity: fast=%d slow=%d want=62", fast.Sensitivity, slow.Sensitivity)
	}
}

func TestCortisolDegradesSignalQuality(t *testing.T) {
	b := makeTestBundle(t)
	motor, _ := b.Tract(tract.MotorSkeletal)
	jitterBefore := motor.Jitter
	enduranceBefore := motor.Endurance

	b.ApplyCortisol(200)

	if motor.Jitter <= jitterBefore {
		t.Fatalf("jitter should increase under cortisol: %d", motor.Jitter)
	}
	if motor.Endurance >= enduranceBefore {
		t.Fatalf("endurance should drop under cortisol: %d", motor.Endurance)
	}
}

func TestGABAReducesGainEverywhere(t *testing.T) {
	b := makeTestBundle(t)
	b.ApplyGABA(100) // reduction 25
	motor, _ := b.Tract(tract.MotorSkeletal)
	proprio, _ := b.Tract(tract.Proprioceptive)
	if motor.Gain != 160-25 {
		t.Fatalf("motor gain: got=%d want=135", motor.Gain)
	}
	if proprio.Gain != 100-25 {
		t.Fatalf("sensory gain: got=%d want=75", proprio.Gain)
	}
}

func TestResetToBaseline(t *testing.T) {
	b := makeTestBundle(t)
	b.ApplyAdrenaline(255)
	b.ApplyCortisol(255)

	b.ResetToBaseline()

	for _, tr := range b.Tracts {
		wantGain := uint8(tract.SensoryGainDefault)
		if tr.Kind().IsEfferent() {
			wantGain = tract.MotorGainDefault
		}
		if tr.Gain != wantGain || tr.Sensitivity != 128 || tr.Jitter != 128 || tr.Endurance != 128 {
			t.Fatalf("tract %s not at baseline: %+v", tr.Kind(), tr)
		}
	}
}

func TestBundleSnapshotRoundTrip(t *testing.T) {
	b := makeTestBundle(t)
	motor, _ := b.Tract(tract.MotorSkeletal)
	if err := motor.TransmitMotor([]signal.Signal{{Polarity: 1, Magnitude: 120}}, 42); err != nil {
		t.Fatalf("transmit: %v", err)
	}

	rec := b.Snapshot()
	if rec.SchemaVersion != 1 || rec.CodecVersion != 1 {
		t.Fatalf("snapshot should stamp versions: %+v", rec.VersionedRecord)
	}

	restored, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Name != b.Name || restored.TractCount() != b.TractCount() {
		t.Fatal("restored bundle shape mismatch")
	}
	if !reflect.DeepEqual(restored.Snapshot(), rec) {
		t.Fatal("bundle snapshot round-trip should be lossless")
	}
}
