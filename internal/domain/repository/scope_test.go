package repository

import "testing"

func TestNormalizeScope(t *testing.T) {
	cases := []struct {
		in   string
		want Scope
	}{
		{"global", ScopeGlobal},
		{"per-asset", ScopePerAsset},
		{"", ScopeGlobal},
		{"per_asset", ScopeGlobal},
		{"GLOBAL", ScopeGlobal},
	}
	for _, c := range cases {
		if got := NormalizeScope(c.in); got != c.want {
			t.Fatalf("NormalizeScope(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsValidScope(t *testing.T) {
	if !IsValidScope(ScopeGlobal) || !IsValidScope(ScopePerAsset) {
		t.Fatal("known scopes must be valid")
	}
	if IsValidScope(Scope("weekly")) {
		t.Fatal("unknown scope must be invalid")
	}
}

func TestNormalizeZeroPolicy(t *testing.T) {
	cases := []struct {
		in   string
		want ZeroPolicy
	}{
		{"error", ZeroPolicyError},
		{"exclude", ZeroPolicyExclude},
		{"", ZeroPolicyExclude},
		{"fail", ZeroPolicyExclude},
	}
	for _, c := range cases {
		if got := NormalizeZeroPolicy(c.in); got != c.want {
			t.Fatalf("NormalizeZeroPolicy(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
