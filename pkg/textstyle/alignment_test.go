package textstyle

import "testing"

func TestUserAlignmentCodes(t *testing.T) {
	want := map[int]Alignment{0: AlignLeft, 1: AlignCenter, 2: AlignRight, 3: AlignJustify}

	for code, align := range want {
		s := New()
		s.SetAbsAlignment(code)
		if s.Alignment() != align {
			t.Errorf("SetAbsAlignment(%d) = %v, want %v", code, s.Alignment(), align)
		}
		if got := s.AbsAlignment(); got != code {
			t.Errorf("AbsAlignment() = %d, want %d", got, code)
		}
	}

	s := New()
	s.SetAlignment(AlignRight)
	s.SetAbsAlignment(42)
	if s.Alignment() != AlignCenter {
		t.Errorf("SetAbsAlignment(42) = %v, want center", s.Alignment())
	}
}

func TestScalesDiffer(t *testing.T) {
	// Same alignment, different code on each scale.
	tests := []struct {
		align       Alignment
		user, store int
	}{
		{AlignCenter, 1, 0},
		{AlignJustify, 3, 1},
		{AlignLeft, 0, 2},
		{AlignRight, 2, 3},
	}
	for _, tt := range tests {
		if got := tt.align.UserCode(); got != tt.user {
			t.Errorf("%v.UserCode() = %d, want %d", tt.align, got, tt.user)
		}
		if got := tt.align.StorageCode(); got != tt.store {
			t.Errorf("%v.StorageCode() = %d, want %d", tt.align, got, tt.store)
		}
		if got := AlignmentFromStorageCode(tt.align.StorageCode()); got != tt.align {
			t.Errorf("storage round trip of %v = %v", tt.align, got)
		}
		if got := AlignmentFromUserCode(tt.align.UserCode()); got != tt.align {
			t.Errorf("user round trip of %v = %v", tt.align, got)
		}
	}
}

func TestInvalidAlignmentFallsBackToCenter(t *testing.T) {
	bogus := Alignment(9)
	if bogus.Valid() {
		t.Fatal("Alignment(9) should not be valid")
	}
	if got := bogus.StorageCode(); got != 0 {
		t.Errorf("StorageCode() = %d, want 0 (center)", got)
	}
	if got := bogus.UserCode(); got != 1 {
		t.Errorf("UserCode() = %d, want 1 (center)", got)
	}

	s := New()
	s.SetAlignment(bogus)
	if s.Alignment() != AlignCenter {
		t.Errorf("SetAlignment(bogus) = %v, want center", s.Alignment())
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in      string
		want    Alignment
		wantErr bool
	}{
		{"left", AlignLeft, false},
		{"START", AlignLeft, false},
		{"center", AlignCenter, false},
		{"right", AlignRight, false},
		{"end", AlignRight, false},
		{"justify", AlignJustify, false},
		{"justified", AlignJustify, false},
		{"middle", AlignCenter, true},
		{"", AlignCenter, true},
	}
	for _, tt := range tests {
		got, err := ParseAlignment(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlignment(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseAlignment(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAlignmentText(t *testing.T) {
	text, err := AlignJustify.MarshalText()
	if err != nil || string(text) != "justify" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}

	var a Alignment
	if err := a.UnmarshalText([]byte("right")); err != nil || a != AlignRight {
		t.Errorf("UnmarshalText(right) = %v, %v", a, err)
	}
	if _, err := Alignment(7).MarshalText(); err == nil {
		t.Error("MarshalText of invalid alignment should fail")
	}
}
