package lanes

import (
	"reflect"
	"testing"
)

func TestSlideUp(t *testing.T) {
	tests := []struct {
		name   string
		input  []uint32
		count  int
		inject uint32
		expect []uint32
	}{
		{
			name:   "full width, inject 9",
			input:  []uint32{1, 2, 3, 4},
			count:  4,
			inject: 9,
			expect: []uint32{9, 1, 2, 3},
		},
		{
			name:   "partial active lanes",
			input:  []uint32{1, 2, 3, 4},
			count:  2,
			inject: 5,
			expect: []uint32{5, 1, 3, 4},
		},
		{
			name:   "zero active lanes is a no-op",
			input:  []uint32{1, 2, 3},
			count:  0,
			inject: 7,
			expect: []uint32{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGroup(append([]uint32{}, tt.input...))
			mask := NewActiveMask(len(tt.input), tt.count)
			got := SlideUp(g, mask, tt.inject)
			if !reflect.DeepEqual(got.Data(), tt.expect) {
				t.Errorf("SlideUp() = %v, want %v", got.Data(), tt.expect)
			}
		})
	}
}

func TestSlideDown(t *testing.T) {
	tests := []struct {
		name   string
		input  []uint32
		count  int
		inject uint32
		expect []uint32
	}{
		{
			name:   "full width, inject at top",
			input:  []uint32{1, 2, 3, 4},
			count:  4,
			inject: 9,
			expect: []uint32{2, 3, 4, 9},
		},
		{
			name:   "partial active lanes",
			input:  []uint32{1, 2, 3, 4},
			count:  2,
			inject: 5,
			expect: []uint32{2, 5, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGroup(append([]uint32{}, tt.input...))
			mask := NewActiveMask(len(tt.input), tt.count)
			got := SlideDown(g, mask, tt.inject)
			if !reflect.DeepEqual(got.Data(), tt.expect) {
				t.Errorf("SlideDown() = %v, want %v", got.Data(), tt.expect)
			}
		})
	}
}

func TestTopActive(t *testing.T) {
	g := NewGroup([]uint32{10, 20, 30, 40})
	if got := TopActive(g, NewActiveMask(4, 3)); got != 30 {
		t.Errorf("TopActive() = %d, want 30", got)
	}
	if got := TopActive(g, NewActiveMask(4, 0)); got != 0 {
		t.Errorf("TopActive() with no active lanes = %d, want 0", got)
	}
}

func TestBroadcastMasked(t *testing.T) {
	got := Broadcast[uint32](4, NewActiveMask(4, 2), 7)
	want := []uint32{7, 7, 0, 0}
	if !reflect.DeepEqual(got.Data(), want) {
		t.Errorf("Broadcast() = %v, want %v", got.Data(), want)
	}
}
