package setup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerAggregatesFailures(t *testing.T) {
	var order []string
	step := func(name string, err error) Step {
		return Step{Name: name, Run: func(ctx context.Context) error {
			order = append(order, name)
			return err
		}}
	}

	boom := errors.New("boom")
	results := NewRunner([]Step{
		step("a", nil),
		step("b", boom),
		step("c", nil),
	}).Run(context.Background())

	// A failed non-fatal step never stops the remaining steps.
	assert.Equal(t, []string{"a", "b", "c"}, order)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 1, Failed(results))
}

func TestRunnerStopsOnFatalStep(t *testing.T) {
	var order []string
	results := NewRunner([]Step{
		{Name: "env check", Fatal: true, Run: func(ctx context.Context) error {
			order = append(order, "env check")
			return errors.New("wrong environment")
		}},
		{Name: "install", Run: func(ctx context.Context) error {
			order = append(order, "install")
			return nil
		}},
	}).Run(context.Background())

	assert.Equal(t, []string{"env check"}, order)
	require.Len(t, results, 1)
	assert.Equal(t, 1, Failed(results))
}

func TestFailedEmpty(t *testing.T) {
	assert.Zero(t, Failed(nil))
}

func TestInstallTermuxPackagesOutsideTermux(t *testing.T) {
	if IsTermux() {
		t.Skip("running inside Termux")
	}
	assert.Error(t, InstallTermuxPackages(context.Background()))
}
