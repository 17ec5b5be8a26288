package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestStrict_FollowsMiserMode(t *testing.T) {
	tests := []struct {
		name     string
		set      map[string]interface{}
		expected bool
	}{
		{"default", nil, true},
		{"miser mode", map[string]interface{}{KeyMiserMode: true}, false},
		{"explicit overrides miser mode", map[string]interface{}{KeyMiserMode: true, KeyStrict: true}, true},
		{"explicit off", map[string]interface{}{KeyStrict: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			for k, v := range tt.set {
				viper.Set(k, v)
			}

			assert.Equal(t, tt.expected, Strict())
			assert.Equal(t, tt.expected, Load().Strict)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	s := Load()
	assert.False(t, s.NoCache)
	assert.Equal(t, DefaultThumbWidth(), s.ThumbWidth)
	assert.Equal(t, DefaultStorePath(), StorePath())
	assert.Equal(t, DefaultServeAddress(), ServeAddress())
	assert.Equal(t, "info", LogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyNoCache, true)
	viper.Set(KeyThumbWidth, 240)

	s := Load()
	assert.True(t, s.NoCache)
	assert.Equal(t, 240, s.ThumbWidth)
}
