package validate

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	At string `koanf:"at" validate:"clock"`
}

type sample struct {
	Name    string  `json:"name" validate:"required,notblank"`
	Kind    string  `validate:"oneof=a b"`
	Comment *string `validate:"omitnil,notblank"`
	Inner   inner   `koanf:"inner"`
}

func TestStruct(t *testing.T) {
	blank := "   "
	ok := "fine"

	tests := []struct {
		name   string
		in     sample
		fields []string
	}{
		{"valid", sample{Name: "x", Kind: "a", Inner: inner{At: "09:30"}}, nil},
		{"valid comment", sample{Name: "x", Kind: "b", Comment: &ok, Inner: inner{At: "23:59"}}, nil},
		{"blank name", sample{Name: "  ", Kind: "a", Inner: inner{At: "09:30"}}, []string{"name"}},
		{"bad kind", sample{Name: "x", Kind: "c", Inner: inner{At: "09:30"}}, []string{"kind"}},
		{"blank comment", sample{Name: "x", Kind: "a", Comment: &blank, Inner: inner{At: "09:30"}}, []string{"comment"}},
		{"bad clock", sample{Name: "x", Kind: "a", Inner: inner{At: "24:00"}}, []string{"inner.at"}},
		{"many", sample{Kind: "z", Inner: inner{At: "9:30"}}, []string{"name", "kind", "inner.at"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var got []string
			for _, is := range Issues(err) {
				got = append(got, is.Field)
			}
			assert.Equal(t, tt.fields, got)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestRegisterReportsErrors(t *testing.T) {
	v := validator.New()
	err := register(v, map[string]validator.Func{"": notBlank})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `register "" rule`)

	require.NoError(t, register(v, rules))
	assert.Error(t, v.Var("  ", "notblank"))
	assert.NoError(t, v.Var("07:45", "clock"))
}

func TestReason(t *testing.T) {
	tests := []struct {
		issue Issue
		want  string
	}{
		{Issue{Tag: "required"}, "must not be empty"},
		{Issue{Tag: "min", Param: "1"}, "must be at least 1"},
		{Issue{Tag: "max", Param: "100"}, "must be at most 100"},
		{Issue{Tag: "oneof", Param: "a b"}, "must be one of: a, b"},
		{Issue{Tag: "datetime", Param: "2006-01-02"}, "must be a date like 2026-01-31"},
		{Issue{Tag: "uuid"}, "is invalid (uuid)"},
	}
	for _, tt := range tests {
		if got := Reason(tt.issue); got != tt.want {
			t.Errorf("Reason(%+v) = %q, want %q", tt.issue, got, tt.want)
		}
	}
}
