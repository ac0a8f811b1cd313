package util

import (
	"reflect"
	"testing"
)

func TestSplitCommaSeparated(t *testing.T) {
	got := SplitCommaSeparated(" 1, 2 ,3,")
	want := []string{"1", "2", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCommaSeparated = %v, want %v", got, want)
	}

	if SplitCommaSeparated("") != nil {
		t.Error("empty input should return nil")
	}
}

func TestIntsToCSVRoundTrip(t *testing.T) {
	ids := []int{4, 8, 15}
	csv := IntsToCSV(ids)
	if csv != "4,8,15" {
		t.Errorf("IntsToCSV = %q, want %q", csv, "4,8,15")
	}
	if got := CSVToInts(csv); !reflect.DeepEqual(got, ids) {
		t.Errorf("CSVToInts(%q) = %v, want %v", csv, got, ids)
	}
}

func TestCSVToIntsSkipsGarbage(t *testing.T) {
	got := CSVToInts("1,x,3")
	want := []int{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CSVToInts = %v, want %v", got, want)
	}
}
