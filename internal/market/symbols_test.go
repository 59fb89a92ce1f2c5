package market

import (
	"reflect"
	"testing"
)

func TestParseQueryAliases(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"Reliance TCS", []string{"RELIANCE", "TCS"}},
		{"ril", []string{"RELIANCE"}},
		{"infosys, hul", []string{"INFY", "HINDUNILVR"}},
		{"tata motors", []string{"TATAMOTORS"}},
		{"tata motors and tata steel", []string{"TATAMOTORS", "TATASTEEL"}},
		{"IRCTC", []string{"IRCTC"}}, // unknown symbols pass through
		{"", nil},
		{"?? !!", nil},
	}
	for _, tc := range cases {
		got := ParseQuery(tc.query, 5)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseQuery(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestParseQueryDeduplicates(t *testing.T) {
	got := ParseQuery("TCS tcs Tcs", 5)
	if !reflect.DeepEqual(got, []string{"TCS"}) {
		t.Errorf("got %v, want single TCS", got)
	}
}

func TestParseQueryCapsSymbols(t *testing.T) {
	got := ParseQuery("TCS INFY WIPRO ITC ONGC", 3)
	if len(got) != 3 {
		t.Errorf("got %d symbols %v, want cap of 3", len(got), got)
	}
}
