package requirement

import (
	"slices"
	"testing"
)

func TestParseVersionSpecs(t *testing.T) {
	tests := []struct {
		in   string
		want []VersionConstraint
	}{
		{"<1.4", []VersionConstraint{{LT, "1.4"}}},
		{"<=1.4", []VersionConstraint{{LTE, "1.4"}}},
		{"!=1.4", []VersionConstraint{{NE, "1.4"}}},
		{"==1.4", []VersionConstraint{{EQ, "1.4"}}},
		{">1.4", []VersionConstraint{{GT, "1.4"}}},
		{">=1.4", []VersionConstraint{{GTE, "1.4"}}},
		{"~=1.*", []VersionConstraint{{Compatible, "1.*"}}},
		{"===version", []VersionConstraint{{StrEQ, "version"}}},
		{">=1.8, <2.0", []VersionConstraint{{GTE, "1.8"}, {LT, "2.0"}}},
		{"== 1.0", []VersionConstraint{{EQ, "1.0"}}},
		{
			"<1.6,>1.9,!=1.9.6,<2.0a0,==2.4rc1",
			[]VersionConstraint{{LT, "1.6"}, {GT, "1.9"}, {NE, "1.9.6"}, {LT, "2.0a0"}, {EQ, "2.4rc1"}},
		},
		{
			">=0.8.4,<=0.8.99,>=0.9.7,<=0.9.99",
			[]VersionConstraint{{GTE, "0.8.4"}, {LTE, "0.8.99"}, {GTE, "0.9.7"}, {LTE, "0.9.99"}},
		},
		{"1.0", nil},
		{"=1.0", nil},
		{"==", nil},
		{">=1.0,,<2", []VersionConstraint{{GTE, "1.0"}, {LT, "2"}}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseVersionSpecs(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("ParseVersionSpecs(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
