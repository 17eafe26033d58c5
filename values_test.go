package formstate_test

import (
	"net/url"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	formstate "github.com/ostrander/formstate"
)

func TestInputString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"s", "s"},
		{true, "true"},
		{false, "false"},
		{42, "42"},
		{int64(-7), "-7"},
		{3.5, "3.5"},
		{float64(2), "2"},
	}
	for _, c := range cases {
		if got := formstate.InputString(c.in); got != c.want {
			t.Fatalf("InputString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPayloadEntries_ExcludesNil(t *testing.T) {
	entries := formstate.PayloadEntries(map[string]any{
		"b":    2,
		"a":    "x",
		"gone": nil,
		"flag": false,
	})
	want := []formstate.Entry{
		{Name: "a", Value: "x"},
		{Name: "b", Value: "2"},
		{Name: "flag", Value: "false"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("payload entries mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalPayload(t *testing.T) {
	data, err := formstate.MarshalPayload(map[string]any{"a": 1, "skip": nil})
	if err != nil {
		t.Fatalf("MarshalPayload: %v", err)
	}
	var got map[string]string
	if err := gojson.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"a": "1"}, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestEntriesFromValues_FirstOccurrenceWins(t *testing.T) {
	entries := formstate.EntriesFromValues(url.Values{
		"name":  {"first", "second"},
		"empty": {},
	})
	want := []formstate.Entry{{Name: "name", Value: "first"}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}
