package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string form", `"12h"`, 12 * time.Hour, false},
		{"compound string", `"1h30m"`, 90 * time.Minute, false},
		{"integer nanoseconds", `3600000000000`, time.Hour, false},
		{"bad string", `"12 parsecs"`, 0, true},
		{"bool", `true`, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tc.in), &d)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 12 * time.Hour})
	require.NoError(t, err)
	assert.Equal(t, `"12h0m0s"`, string(b))
}
