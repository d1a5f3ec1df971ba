package thermal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roastsim/model"
)

func baseParams() model.RoastParameters {
	return model.RoastParameters{
		BatchGrams:      500,
		ChargeTempC:     220,
		BeanDensity:     1.0,
		TotalTimeMin:    10,
		DryTimeMin:      4,
		MaillardTimeMin: 3.5,
		DevTimeMin:      1.5,
		DropTempC:       210,
	}
}

func TestEmpiricalStep(t *testing.T) {
	step := EmpiricalStep(baseParams())
	assert.InDelta(t, 18.2, step(20.0, 0), 1e-12)
	assert.InDelta(t, 20.0-(1.8-0.025*69), step(20.0, 69), 1e-12)

	// 70 步后向 220℃ 逼近
	bt := 100.0
	next := step(bt, 70)
	assert.InDelta(t, bt+(220-bt)*0.002, next, 1e-12)
	assert.Greater(t, next, bt)
}

func TestEmpiricalStepScaling(t *testing.T) {
	p := baseParams()
	p.BatchGrams = 1000
	p.BeanDensity = 1.2
	step := EmpiricalStep(p)
	assert.InDelta(t, 20.0-3.6, step(20.0, 0), 1e-12)
	assert.InDelta(t, 100+(220-100)*(0.002/1.2), step(100, 200), 1e-12)
}

func TestDryingStepLandsOnTarget(t *testing.T) {
	for _, steps := range []int{1, 2, 30, 60, 61, 240, 601} {
		step := DryingStep(baseParams(), steps)
		bt := model.AmbientTemp
		for s := 0; s < steps; s++ {
			bt = step(bt, s)
		}
		assert.InDelta(t, DryEndTemp, bt, 1e-9, "steps=%d", steps)
	}
}

func TestDryingStepGuardsDivisor(t *testing.T) {
	step := DryingStep(baseParams(), 120)
	// 越过阶段末尾也不会除零
	assert.Equal(t, DryEndTemp, step(90, 500))
}

func TestRamp(t *testing.T) {
	step := Ramp(150, 200, 4)
	bt := 150.0
	for s := 0; s < 4; s++ {
		bt = step(bt, s)
	}
	assert.InDelta(t, 200, bt, 1e-12)
}

func TestPolicyFor(t *testing.T) {
	p, err := PolicyFor(model.PhaseBased)
	require.NoError(t, err)
	phases := p.Phases(baseParams())
	require.Len(t, phases, 3)
	assert.Equal(t, []int{240, 210, 90}, []int{phases[0].Steps, phases[1].Steps, phases[2].Steps})

	p, err = PolicyFor(model.Empirical)
	require.NoError(t, err)
	phases = p.Phases(baseParams())
	require.Len(t, phases, 1)
	assert.Equal(t, 600, phases[0].Steps)

	_, err = PolicyFor(model.Variant(7))
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}
