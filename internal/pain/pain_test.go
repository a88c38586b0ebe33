package pain

import (
	"testing"

	"fibertract/internal/tract"
)

func TestSourceTracts(t *testing.T) {
	if Sharp.PrimaryTract() != tract.NociceptiveFast {
		t.Fatal("sharp pain rides fast nociception")
	}
	if Burning.PrimaryTract() != tract.NociceptiveSlow || Aching.PrimaryTract() != tract.NociceptiveSlow {
		t.Fatal("burning and aching ride slow nociception")
	}
	if Visceral.PrimaryTract() != tract.Interoceptive || Fatigue.PrimaryTract() != tract.Interoceptive {
		t.Fatal("visceral and fatigue ride interoception")
	}
}

func TestUrgencyOrdering(t *testing.T) {
	if Sharp.Urgency() <= Burning.Urgency() {
		t.Fatal("sharp should outrank burning")
	}
	if Burning.Urgency() <= Aching.Urgency() {
		t.Fatal("burning should outrank aching")
	}
	if Visceral.Urgency() <= Fatigue.Urgency() {
		t.Fatal("visceral should outrank fatigue")
	}
}

func TestSourceOrdinalRoundTrip(t *testing.T) {
	for i := uint8(0); i < SourceCount; i++ {
		s, ok := SourceFromOrdinal(i)
		if !ok || uint8(s) != i {
			t.Fatalf("ordinal %d did not round-trip", i)
		}
	}
	if _, ok := SourceFromOrdinal(SourceCount); ok {
		t.Fatal("out-of-range ordinal should fail")
	}
}

func TestSharpHighIntensityIsUrgent(t *testing.T) {
	event := Event{
		BundleName:    "left_arm",
		Source:        Sharp,
		Intensity:     200,
		Onset:         220,
		DurationTicks: 5,
	}
	if !event.IsUrgent() {
		t.Fatal("sharp high-intensity pain should be urgent")
	}
}

func TestLowAcheNotUrgentButChronic(t *testing.T) {
	event := Event{
		BundleName:    "lower_back",
		Source:        Aching,
		Intensity:     80,
		Onset:         20,
		DurationTicks: 5000,
	}
	if event.IsUrgent() {
		t.Fatal("dull ache should not be urgent")
	}
	if !event.IsChronic() {
		t.Fatal("long non-habituating pain is chronic")
	}
}

func TestHabituationReducesSalience(t *testing.T) {
	fresh := Event{
		BundleName:    "test",
		Source:        Burning,
		Intensity:     150,
		Onset:         100,
		DurationTicks: 10,
	}
	habituated := fresh
	habituated.Habituating = true

	if fresh.Salience() <= habituated.Salience() {
		t.Fatalf("habituation should reduce salience: %d vs %d", fresh.Salience(), habituated.Salience())
	}
}
