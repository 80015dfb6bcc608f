package rangemerge

import (
	"reflect"
	"testing"
)

func TestFromMatches_PadAndClamp(t *testing.T) {
	got := FromMatches([]int{2}, 1, 5)
	want := []Range{{Start: 1, End: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFromMatches_PadExceedsFileClamps(t *testing.T) {
	got := FromMatches([]int{0}, 10, 3)
	want := []Range{{Start: 0, End: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_TouchingRangesCombine(t *testing.T) {
	got := Merge([]Range{{Start: 0, End: 2}, {Start: 3, End: 5}})
	want := []Range{{Start: 0, End: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_NonTouchingStaySeparate(t *testing.T) {
	got := Merge([]Range{{Start: 0, End: 1}, {Start: 3, End: 4}})
	want := []Range{{Start: 0, End: 1}, {Start: 3, End: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_IsIdempotent(t *testing.T) {
	once := Merge([]Range{{Start: 0, End: 2}, {Start: 2, End: 4}, {Start: 8, End: 9}})
	twice := Merge(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge not idempotent: %v != %v", once, twice)
	}
}
