package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exprEnv(t *testing.T) *Environment {
	t.Helper()
	e := New()
	require.NoError(t, e.Set("feature.flag", "true"))
	require.NoError(t, e.Set("cache.kind", "redis"))
	require.NoError(t, e.Set("server.port", 8080))
	return e
}

func TestPlaceholderEvaluator(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    bool
		wantErr bool
	}{
		{name: "bare truthy placeholder", text: "${feature.flag}", want: true},
		{name: "bare falsy literal", text: "off", want: false},
		{name: "truthy literals", text: "yes", want: true},
		{name: "equality", text: "${cache.kind} == redis", want: true},
		{name: "equality mismatch", text: "${cache.kind} == memcached", want: false},
		{name: "inequality", text: "${cache.kind} != memcached", want: true},
		{name: "negation", text: "!${feature.flag}", want: false},
		{name: "double negation", text: "!!${feature.flag}", want: true},
		{name: "default for missing key", text: "${missing.key:on}", want: true},
		{name: "numeric property", text: "${server.port} == 8080", want: true},
		{name: "missing key without default", text: "${missing.key}", wantErr: true},
		{name: "unterminated placeholder", text: "${feature.flag", wantErr: true},
	}

	env := exprEnv(t)
	p := NewPlaceholderEvaluator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Evaluate(tt.text, env)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaceholderEvaluator_NilEnvironment(t *testing.T) {
	p := NewPlaceholderEvaluator()

	// Literals evaluate without an environment.
	got, err := p.Evaluate("true", nil)
	require.NoError(t, err)
	assert.True(t, got)

	// Placeholders cannot.
	_, err = p.Evaluate("${any.key}", nil)
	assert.Error(t, err)
}
