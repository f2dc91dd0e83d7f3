package creature

import "testing"

func TestSpeedCapsAtThousand(t *testing.T) {
	c := New(1, 1, Small, 0, 0)
	// Small: 200 + 625*health/max; at twice max health the raw value is 1450.
	c.Health = 2 * MaxHealth[Small]
	if got := c.Speed(); got != 1000 {
		t.Fatalf("Speed() = %d, want capped at 1000", got)
	}
}

func TestDoHealBoundedByFoodAndDeficit(t *testing.T) {
	c := New(1, 1, Small, 0, 0)
	c.Health = MaxHealth[Small] - 100
	c.Food = 40
	finished := c.DoHeal(1000) // HealRate[Small]=500/s -> would want 500, capped by food=40
	if c.Food != 0 {
		t.Fatalf("Food = %d, want 0", c.Food)
	}
	if c.Health != MaxHealth[Small]-60 {
		t.Fatalf("Health = %d, want %d", c.Health, MaxHealth[Small]-60)
	}
	if finished {
		t.Fatalf("DoHeal() finished = true, want false (still deficient)")
	}
}

func TestDoEatFillsUpToMaxFood(t *testing.T) {
	c := New(1, 1, Small, 0, 0)
	c.Food = MaxFood[Small] - 10
	amount, finished := c.DoEat(1000, 9999)
	if amount != 10 {
		t.Fatalf("amount = %d, want 10", amount)
	}
	if !finished {
		t.Fatalf("finished = false, want true")
	}
	if c.Food != MaxFood[Small] {
		t.Fatalf("Food = %d, want %d", c.Food, MaxFood[Small])
	}
}

func TestSetConversionTypeRejectsDisallowedPair(t *testing.T) {
	c := New(1, 1, Flyer, 0, 0)
	if c.SetConversionType(Big) {
		t.Fatalf("SetConversionType(Flyer->Big) succeeded, want rejected")
	}
}

func TestDoConvertMorphsOnCompletion(t *testing.T) {
	c := New(1, 1, Big, 0, 0)
	c.Food = 8000 // ConversionFood[Big][Small]; conversion is invested out of own food
	if !c.SetConversionType(Small) {
		t.Fatalf("SetConversionType(Big->Small) rejected, want allowed")
	}
	c.SetState(Convert)
	// ConversionFood[Big][Small] = 8000, ConversionSpeed[Big] = 1000/s.
	for i := 0; i < 7; i++ {
		if c.DoConvert(1000) {
			t.Fatalf("morphed too early at iteration %d", i)
		}
	}
	if !c.DoConvert(1000) {
		t.Fatalf("expected morph to complete by the 8th second")
	}
	if c.Type != Small {
		t.Fatalf("Type = %d, want Small", c.Type)
	}
	if c.Health != MaxHealth[Small] {
		t.Fatalf("Health = %d, want %d", c.Health, MaxHealth[Small])
	}
	if c.Food != 0 {
		t.Fatalf("Food = %d, want 0 (fully invested into conversion)", c.Food)
	}
}

func TestDoConvertBoundedByAvailableFood(t *testing.T) {
	c := New(1, 1, Big, 0, 0)
	c.Food = 100 // far less than ConversionFood[Big][Small]=8000
	if !c.SetConversionType(Small) {
		t.Fatalf("SetConversionType(Big->Small) rejected, want allowed")
	}
	c.SetState(Convert)
	if c.DoConvert(1000) {
		t.Fatalf("morphed despite insufficient food")
	}
	if c.Food != 0 {
		t.Fatalf("Food = %d, want 0 (all available food invested)", c.Food)
	}
	if c.ConvertFood != 100 {
		t.Fatalf("ConvertFood = %d, want 100 (capped by available food)", c.ConvertFood)
	}
}

func TestDoAgeCarriesSubTickRemainder(t *testing.T) {
	c := New(1, 1, Small, 0, 0)
	start := c.Health
	c.DoAge(60) // less than 100ms, no drain yet
	if c.Health != start {
		t.Fatalf("Health drained before a full 100ms tick elapsed")
	}
	c.DoAge(40) // completes the first 100ms tick
	if c.Health != start-Aging[Small] {
		t.Fatalf("Health = %d, want %d", c.Health, start-Aging[Small])
	}
}

func TestSetTargetRejectsSelf(t *testing.T) {
	c := New(5, 1, Small, 0, 0)
	if c.SetTarget(5) {
		t.Fatalf("SetTarget(self) succeeded, want rejected")
	}
}

func TestSetMessageTruncatesToEightRunes(t *testing.T) {
	c := New(1, 1, Small, 0, 0)
	c.SetMessage("helloworld")
	if c.Message != "hellowor" {
		t.Fatalf("Message = %q, want %q", c.Message, "hellowor")
	}
}
