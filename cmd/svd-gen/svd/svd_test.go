package svd

import (
	"encoding/xml"
	"testing"
)

func TestInteger(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Integer
	}{
		{"37", 37},
		{"0x40021000", 0x40021000},
		{"0X1F", 0x1F},
		{" 12\n", 12},
		{"#1010", 10},
	} {
		var v struct {
			Value Integer `xml:"value"`
		}
		if err := xml.Unmarshal([]byte("<r><value>"+tc.in+"</value></r>"), &v); err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if v.Value != tc.want {
			t.Errorf("%q = %d, want %d", tc.in, v.Value, tc.want)
		}
	}

	var v struct {
		Value Integer `xml:"value"`
	}
	if err := xml.Unmarshal([]byte("<r><value>0xZZ</value></r>"), &v); err == nil {
		t.Error("bad hex accepted")
	}
}
