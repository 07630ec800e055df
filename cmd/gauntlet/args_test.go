package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantTrials  int
		wantProblem string
		wantErr     bool
	}{
		{name: "no args", args: nil},
		{name: "count only", args: []string{"100"}, wantTrials: 100},
		{name: "name only", args: []string{"simple2"}, wantProblem: "simple2"},
		{name: "count then name", args: []string{"100", "simple2"}, wantTrials: 100, wantProblem: "simple2"},
		{name: "name then count", args: []string{"simple2", "100"}, wantTrials: 100, wantProblem: "simple2"},
		{name: "two counts", args: []string{"10", "20"}, wantErr: true},
		{name: "two names", args: []string{"simple1", "simple2"}, wantErr: true},
		{name: "zero count", args: []string{"0"}, wantErr: true},
		{name: "negative count", args: []string{"-5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trials, problem, err := classifyArgs(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTrials, trials)
			assert.Equal(t, tt.wantProblem, problem)
		})
	}
}
