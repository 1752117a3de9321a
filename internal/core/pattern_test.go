package core

import (
	"testing"
)

func TestParsePatternIsDynamic(t *testing.T) {
	tests := []struct {
		source  string
		dynamic bool
		tokens  []string
	}{
		{source: "/", dynamic: false},
		{source: "/about", dynamic: false},
		{source: "/users/:id", dynamic: true, tokens: []string{"id"}},
		{source: "/blog/:year/:slug", dynamic: true, tokens: []string{"year", "slug"}},
		{source: "/docs/*", dynamic: true, tokens: []string{"0"}},
		{source: "/files/:path+", dynamic: true, tokens: []string{"path"}},
		{source: `/price/\:usd`, dynamic: false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			p, err := ParsePattern(tt.source)
			if err != nil {
				t.Fatalf("ParsePattern(%q) error = %v", tt.source, err)
			}
			if p.IsDynamic() != tt.dynamic {
				t.Errorf("IsDynamic() = %v, want %v", p.IsDynamic(), tt.dynamic)
			}
			tokens := p.Tokens()
			if len(tokens) != len(tt.tokens) {
				t.Fatalf("Tokens() = %d, want %d", len(tokens), len(tt.tokens))
			}
			for i, tok := range tokens {
				if tok.Name != tt.tokens[i] {
					t.Errorf("token %d = %q, want %q", i, tok.Name, tt.tokens[i])
				}
			}
		})
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		params  Params
		want    string
		wantErr bool
	}{
		{name: "static", source: "/about", params: nil, want: "/about"},
		{name: "single param", source: "/users/:id", params: Params{"id": "1"}, want: "/users/1"},
		{name: "two params", source: "/blog/:year/:slug", params: Params{"year": "2024", "slug": "hello"}, want: "/blog/2024/hello"},
		{name: "escaped value", source: "/tags/:tag", params: Params{"tag": "a b/c"}, want: "/tags/a%20b%2Fc"},
		{name: "wildcard keeps slashes", source: "/docs/*", params: Params{"0": "guide/intro"}, want: "/docs/guide/intro"},
		{name: "optional omitted", source: "/users/:id?", params: Params{}, want: "/users"},
		{name: "repeat", source: "/files/:path+", params: Params{"path": "a/b"}, want: "/files/a/b"},
		{name: "constraint satisfied", source: `/users/:id(\d+)`, params: Params{"id": "42"}, want: "/users/42"},
		{name: "constraint violated", source: `/users/:id(\d+)`, params: Params{"id": "abc"}, wantErr: true},
		{name: "missing required", source: "/blog/:year/:slug", params: Params{"slug": "x"}, wantErr: true},
		{name: "escaped colon", source: `/price/\:usd`, params: nil, want: "/price/:usd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePattern(tt.source)
			if err != nil {
				t.Fatalf("ParsePattern(%q) error = %v", tt.source, err)
			}
			got, err := p.Compile(tt.params)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Compile() = %q, expected error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithOptionalTail(t *testing.T) {
	p, err := ParsePattern("/blog/:year/:slug")
	if err != nil {
		t.Fatal(err)
	}

	tail := p.WithOptionalTail()

	got, err := tail.Compile(Params{"year": "2024"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got != "/blog/2024" {
		t.Errorf("Compile() = %q, want /blog/2024", got)
	}

	if _, err := tail.Compile(Params{"slug": "x"}); err == nil {
		t.Error("expected error when a non-final param is missing")
	}

	if _, err := p.Compile(Params{"year": "2024"}); err == nil {
		t.Error("WithOptionalTail must not modify the original pattern")
	}
}
