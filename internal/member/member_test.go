package member

import (
	"strings"
	"testing"
)

// toyTypes treats type names as strings; "func(...)" prefixes mark func types
// and "func()" is the canceler shape.
type toyTypes struct{}

func (toyTypes) Identical(a, b string) bool { return a == b }
func (toyTypes) IsFunc(t string) bool       { return strings.HasPrefix(t, "func(") }
func (toyTypes) IsCanceler(t string) bool   { return t == "func()" }

func sig(name string, params []string, results ...string) Signature[string] {
	return Signature[string]{Name: name, Params: params, Results: results}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		sigs           []Signature[string]
		wantProps      []Property[string]
		wantEvents     []string
		wantMethods    []string
		wantMismatches int
	}{
		{
			name: "empty interface",
		},
		{
			name: "read write property",
			sigs: []Signature[string]{
				sig("Value", nil, "int"),
				sig("SetValue", []string{"int"}),
			},
			wantProps: []Property[string]{{Name: "Value", Type: "int", Getter: "Value", Setter: "SetValue"}},
		},
		{
			name: "Get prefixed getter pairs with setter",
			sigs: []Signature[string]{
				sig("GetLabel", nil, "string"),
				sig("SetLabel", []string{"string"}),
			},
			wantProps: []Property[string]{{Name: "Label", Type: "string", Getter: "GetLabel", Setter: "SetLabel"}},
		},
		{
			name: "plain getter preferred over Get prefix",
			sigs: []Signature[string]{
				sig("GetLabel", nil, "string"),
				sig("Label", nil, "string"),
				sig("SetLabel", []string{"string"}),
			},
			wantProps:   []Property[string]{{Name: "Label", Type: "string", Getter: "Label", Setter: "SetLabel"}},
			wantMethods: []string{"GetLabel"},
		},
		{
			name:      "getter only",
			sigs:      []Signature[string]{sig("GetInteger", nil, "int")},
			wantProps: []Property[string]{{Name: "Integer", Type: "int", Getter: "GetInteger"}},
		},
		{
			name:      "setter only",
			sigs:      []Signature[string]{sig("SetInteger", []string{"int"})},
			wantProps: []Property[string]{{Name: "Integer", Type: "int", Setter: "SetInteger"}},
		},
		{
			name: "unexported accessors",
			sigs: []Signature[string]{
				sig("setCount", []string{"int"}),
				sig("count", nil, "int"),
			},
			wantProps: []Property[string]{{Name: "count", Type: "int", Getter: "count", Setter: "setCount"}},
		},
		{
			name:        "zero argument method without Get prefix is a method",
			sigs:        []Signature[string]{sig("Area", nil, "int"), sig("Close", nil, "error")},
			wantMethods: []string{"Area", "Close"},
		},
		{
			name: "mismatched getter stays a method",
			sigs: []Signature[string]{
				sig("Value", nil, "int"),
				sig("SetValue", []string{"string"}),
			},
			wantProps:      []Property[string]{{Name: "Value", Type: "string", Setter: "SetValue"}},
			wantMethods:    []string{"Value"},
			wantMismatches: 1,
		},
		{
			name:        "Settle is not a setter",
			sigs:        []Signature[string]{sig("Settle", []string{"int"})},
			wantMethods: []string{"Settle"},
		},
		{
			name: "events",
			sigs: []Signature[string]{
				sig("OnChange", []string{"func(int)"}),
				sig("Subscribe", []string{"func(string)"}, "func()"),
			},
			wantEvents: []string{"OnChange", "Subscribe"},
		},
		{
			name: "func parameter with non canceler result is a method",
			sigs: []Signature[string]{
				sig("Walk", []string{"func(int)"}, "error"),
			},
			wantMethods: []string{"Walk"},
		},
		{
			name: "variadic method",
			sigs: []Signature[string]{
				{Name: "Printf", Params: []string{"string", "[]any"}, Variadic: true},
			},
			wantMethods: []string{"Printf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Classify(tt.sigs, toyTypes{})

			if set.Len() > len(tt.sigs) {
				t.Errorf("got %d members from %d methods", set.Len(), len(tt.sigs))
			}

			if len(set.Properties) != len(tt.wantProps) {
				t.Fatalf("got %d properties %+v, want %d", len(set.Properties), set.Properties, len(tt.wantProps))
			}
			for i, want := range tt.wantProps {
				if set.Properties[i] != want {
					t.Errorf("property %d = %+v, want %+v", i, set.Properties[i], want)
				}
			}

			var events []string
			for _, ev := range set.Events {
				events = append(events, ev.Name)
			}
			if strings.Join(events, ",") != strings.Join(tt.wantEvents, ",") {
				t.Errorf("events = %v, want %v", events, tt.wantEvents)
			}

			var methods []string
			for _, m := range set.Methods {
				methods = append(methods, m.Name)
			}
			if strings.Join(methods, ",") != strings.Join(tt.wantMethods, ",") {
				t.Errorf("methods = %v, want %v", methods, tt.wantMethods)
			}

			if len(set.Mismatches) != tt.wantMismatches {
				t.Errorf("mismatches = %v, want %d", set.Mismatches, tt.wantMismatches)
			}
		})
	}
}

func TestClassify_CancelerEvent(t *testing.T) {
	set := Classify([]Signature[string]{sig("OnClose", []string{"func()"}, "func()")}, toyTypes{})
	if len(set.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(set.Events))
	}
	ev := set.Events[0]
	if !ev.HasCanceler || ev.Canceler != "func()" || ev.Handler != "func()" {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestKindString(t *testing.T) {
	for kind, want := range map[Kind]string{
		KindMethod:   "method",
		KindProperty: "property",
		KindEvent:    "event",
		Kind(99):     "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
