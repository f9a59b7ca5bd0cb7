package trail

import "testing"

func TestSelectEmptyAtZero(t *testing.T) {
	prng := NewPRNG(ReferenceSeed)
	if out := Select(0, 0, prng); out != nil {
		t.Errorf("Select(0,0) = %v, want nil", out)
	}
}

func TestSelectSerialOnlyBelowSerialSize(t *testing.T) {
	prng := NewPRNG(ReferenceSeed)
	out := Select(3, 3, prng)
	want := []int64{0, 1, 2}
	if len(out) != len(want) {
		t.Fatalf("Select = %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestSelectIsDeterministic(t *testing.T) {
	a := Select(200, 150, NewPRNG(ReferenceSeed))
	b := Select(200, 150, NewPRNG(ReferenceSeed))
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("out[%d] = %d vs %d, want equal", i, a[i], b[i])
		}
	}
}

func TestSelectDifferentSeedsDiverge(t *testing.T) {
	a := Select(200, 150, NewPRNG(ReferenceSeed))
	b := Select(200, 150, NewPRNG(ReferenceSeed + 1))
	equal := len(a) == len(b)
	if equal {
		for i := range a {
			if a[i] != b[i] {
				equal = false
				break
			}
		}
	}
	if equal {
		t.Error("different seeds produced identical scatter trails")
	}
}

func TestSelectSerialPrecedesScatter(t *testing.T) {
	prng := NewPRNG(ReferenceSeed)
	out := Select(200, 150, prng)
	if len(out) < int(SerialSize) {
		t.Fatalf("len(out) = %d, want >= %d", len(out), SerialSize)
	}
	serial := out[:SerialSize]
	want := []int64{145, 146, 147, 148, 149}
	for i := range want {
		if serial[i] != want[i] {
			t.Errorf("serial[%d] = %d, want %d", i, serial[i], want[i])
		}
	}
	for _, idx := range out[SerialSize:] {
		if idx < 50 || idx >= 145 {
			t.Errorf("scatter index %d out of [i-100, i-k) range", idx)
		}
	}
}

func TestSelectScatterBoundedBySpanNearStart(t *testing.T) {
	prng := NewPRNG(ReferenceSeed)
	out := Select(10, 8, prng)
	// k = min(5,8) = 5; span = [8-100 clamped to 0, 8-5=3) = [0,3), size 3
	if len(out) != int(SerialSize)+3 {
		t.Fatalf("len(out) = %d, want %d", len(out), int(SerialSize)+3)
	}
	for _, idx := range out[SerialSize:] {
		if idx < 0 || idx >= 3 {
			t.Errorf("scatter index %d out of [0,3) range", idx)
		}
	}
}
