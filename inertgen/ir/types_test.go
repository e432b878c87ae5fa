package ir

import "testing"

func TestGoIdentifier(t *testing.T) {
	if !(GoIdentifier{}).IsZero() {
		t.Error("zero GoIdentifier should be IsZero")
	}
	id := GoIdentifier{Name: "Shape", Package: "example.com/shapes"}
	if id.IsZero() {
		t.Error("non-empty GoIdentifier reported IsZero")
	}
	if got := id.String(); got != "example.com/shapes.Shape" {
		t.Errorf("String() = %q", got)
	}
	if got := (GoIdentifier{Name: "error"}).String(); got != "error" {
		t.Errorf("String() for builtin = %q", got)
	}
}

func TestZeroValues(t *testing.T) {
	if !(Documentation{}).IsZero() {
		t.Error("zero Documentation should be IsZero")
	}
	if (Documentation{Summary: "x"}).IsZero() {
		t.Error("Documentation with summary reported IsZero")
	}
	msg := ""
	if (Documentation{Deprecated: &msg}).IsZero() {
		t.Error("deprecated Documentation reported IsZero")
	}
	if !(Source{}).IsZero() {
		t.Error("zero Source should be IsZero")
	}
	if (Source{Line: 1}).IsZero() {
		t.Error("Source with line reported IsZero")
	}
	if !(PackageInfo{}).IsZero() {
		t.Error("zero PackageInfo should be IsZero")
	}
	if (PackageInfo{Name: "x"}).IsZero() {
		t.Error("PackageInfo with name reported IsZero")
	}
}

func TestMemberKind_String(t *testing.T) {
	tests := []struct {
		kind MemberKind
		want string
	}{
		{KindProperty, "Property"},
		{KindEvent, "Event"},
		{KindMethod, "Method"},
		{MemberKind(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("MemberKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
