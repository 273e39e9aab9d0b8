package calc

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestUserSpaceExportImport(t *testing.T) {
	res := mustCalculate(t, "f(a;b)=a*b+1", Env{})
	space := res.UserSpace
	space["x"] = UserObject{Kind: ObjectVariable, Value: decimal.RequireFromString("2.5")}

	stored := space.Export()
	if stored["x"].Value != "2.5" {
		t.Errorf("exported x = %q, want 2.5", stored["x"].Value)
	}
	if stored["f"].Type != ObjectFunction || len(stored["f"].Parameters) != 2 {
		t.Errorf("exported f = %+v", stored["f"])
	}

	restored, err := ImportUserSpace(stored)
	if err != nil {
		t.Fatalf("ImportUserSpace returned error: %v", err)
	}
	out, err := Calculate(context.Background(), "f(x;2)", Env{UserSpace: restored})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if got := Format(out.Value, 8); got != "6" {
		t.Errorf("f(x;2) = %s, want 6", got)
	}
}

func TestImportUserSpaceRejectsBadInput(t *testing.T) {
	tests := map[string]map[string]StoredObject{
		"reserved name":  {"sin": {Type: ObjectVariable, Value: "1"}},
		"bad value":      {"x": {Type: ObjectVariable, Value: "one"}},
		"bad body":       {"f": {Type: ObjectFunction, Parameters: []string{"x"}, Body: "x $"}},
		"unknown object": {"y": {Type: "macro"}},
	}

	for name, stored := range tests {
		if _, err := ImportUserSpace(stored); err == nil {
			t.Errorf("%s: ImportUserSpace succeeded", name)
		}
	}
}

func TestClone(t *testing.T) {
	space := UserSpace{"x": {Kind: ObjectVariable, Value: decimalOne}}
	clone := space.Clone()
	clone["y"] = UserObject{Kind: ObjectVariable, Value: decimalTwo}
	if _, ok := space["y"]; ok {
		t.Fatal("Clone shares the underlying map")
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{"pi", "e", "ans", "sin", "arcsin", "log10", "π"} {
		if !IsReserved(name) {
			t.Errorf("IsReserved(%q) = false", name)
		}
	}
	if IsReserved("x") {
		t.Error("IsReserved(x) = true")
	}
}
