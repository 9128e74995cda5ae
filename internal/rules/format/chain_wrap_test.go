package format

import (
	"testing"

	"github.com/donaldgifford/csfmt/internal/options"
)

func TestChainWrap(t *testing.T) {
	input := method("x = a.B().C().D();")

	tests := []struct {
		name string
		set  *options.Set
		want string
	}{
		{"off", nil, input},
		{
			name: "aligned with receiver",
			set:  settings("csharp_wrap_chained_method_calls", "true"),
			want: method("x = a.B()", "    .C()", "    .D();"),
		},
		{
			name: "indented past receiver",
			set: settings(
				"csharp_wrap_chained_method_calls", "true",
				"csharp_indent_wrapped_chained_method_calls", "true",
			),
			want: method("x = a.B()", "        .C()", "        .D();"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, tt.set, input); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestChainWrapSingleCall(t *testing.T) {
	input := method("x = a.B();")
	if got := run(t, settings("csharp_wrap_chained_method_calls", "true"), input); got != input {
		t.Errorf("want %q, got %q", input, got)
	}
}
