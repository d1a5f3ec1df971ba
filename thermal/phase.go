package thermal

import "roastsim/model"

const (
	DryEndTemp      = 150.0 // 干燥结束（转黄）
	MaillardEndTemp = 200.0 // 美拉德结束（一爆）

	DryLossSteps = 60
	DryLossStart = 1.5
	DryLossDecay = 0.02
)

// 三段模型：干燥 -> 美拉德 -> 发展
type PhaseBased struct{}

func (PhaseBased) Phases(p model.RoastParameters) []Phase {
	dry, maillard, dev := p.DrySeconds(), p.MaillardSeconds(), p.DevSeconds()
	return []Phase{
		{
			Name:  "drying",
			Steps: dry,
			Enter: func(float64) StepFunc { return DryingStep(p, dry) },
		},
		{
			Name:  "maillard",
			Steps: maillard,
			Enter: func(start float64) StepFunc { return Ramp(start, MaillardEndTemp, maillard) },
		},
		{
			Name:  "development",
			Steps: dev,
			Enter: func(start float64) StepFunc { return Ramp(start, p.DropTempC, dev) },
		},
	}
}

// 干燥段：先回温，剩余步数内线性逼近 150℃，最后一步正好落在 150℃
func DryingStep(p model.RoastParameters, steps int) StepFunc {
	batch := batchFactor(p)
	loss := DryLossSteps
	if loss > steps-1 {
		loss = steps - 1
	}
	return func(bt float64, s int) float64 {
		if s < loss {
			return bt - (DryLossStart-DryLossDecay*float64(s))*batch
		}
		remaining := steps - s
		if remaining < 1 {
			remaining = 1
		}
		return bt + (DryEndTemp-bt)/float64(remaining)
	}
}
