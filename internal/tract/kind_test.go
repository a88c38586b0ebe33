package tract

import "testing"

func TestKindClassification(t *testing.T) {
	afferent := []Kind{Proprioceptive, Mechanoreceptive, NociceptiveFast, NociceptiveSlow, Interoceptive}
	for _, k := range afferent {
		if !k.IsAfferent() || k.IsEfferent() {
			t.Fatalf("%s should be afferent", k)
		}
	}
	efferent := []Kind{MotorSkeletal, MotorSpindle}
	for _, k := range efferent {
		if !k.IsEfferent() || k.IsAfferent() {
			t.Fatalf("%s should be efferent", k)
		}
	}
}

func TestKindOrdinalsAreStable(t *testing.T) {
	want := map[Kind]uint8{
		Proprioceptive:   0,
		Mechanoreceptive: 1,
		NociceptiveFast:  2,
		NociceptiveSlow:  3,
		Interoceptive:    4,
		MotorSkeletal:    5,
		MotorSpindle:     6,
	}
	for k, ord := range want {
		if uint8(k) != ord {
			t.Fatalf("%s ordinal changed: got=%d want=%d", k, uint8(k), ord)
		}
	}
}

func TestKindFromOrdinal(t *testing.T) {
	for i := uint8(0); i < KindCount; i++ {
		k, ok := KindFromOrdinal(i)
		if !ok || uint8(k) != i {
			t.Fatalf("ordinal %d did not round-trip", i)
		}
	}
	if _, ok := KindFromOrdinal(KindCount); ok {
		t.Fatal("out-of-range ordinal should fail")
	}
}

func TestKindSpeedClasses(t *testing.T) {
	if Proprioceptive.BaseSpeed() != 240 || MotorSkeletal.BaseSpeed() != 240 {
		t.Fatal("thick fibers should be fastest")
	}
	if NociceptiveSlow.BaseSpeed() >= NociceptiveFast.BaseSpeed() {
		t.Fatal("slow nociception should be slower than fast")
	}
	if Interoceptive.BaseSpeed() != 30 {
		t.Fatalf("unexpected interoceptive speed: %d", Interoceptive.BaseSpeed())
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("parse %s: %v", k, err)
		}
		if parsed != k {
			t.Fatalf("round-trip mismatch: got=%s want=%s", parsed, k)
		}
	}
	if _, err := ParseKind("optic"); err == nil {
		t.Fatal("unknown kind should fail to parse")
	}
}

func TestParseReceptorMode(t *testing.T) {
	for _, m := range []ReceptorMode{Phasic, Tonic} {
		parsed, err := ParseReceptorMode(m.String())
		if err != nil || parsed != m {
			t.Fatalf("mode %s did not round-trip: %v", m, err)
		}
	}
	if _, err := ParseReceptorMode("spiking"); err == nil {
		t.Fatal("unknown mode should fail to parse")
	}
}
