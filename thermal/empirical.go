package thermal

import "roastsim/model"

const (
	EmpiricalLossSteps = 70    // 前 70s 为回温段
	EmpiricalLossStart = 1.8   // 首步降温 ℃
	EmpiricalLossDecay = 0.025 // 每步降温衰减
	EmpiricalGainRate  = 0.002 // 向入豆温度逼近的速率，除以密度
)

// 单段经验模型：先线性回温，再渐近逼近入豆温度
type Empirical struct{}

func (Empirical) Phases(p model.RoastParameters) []Phase {
	return []Phase{{
		Name:  "roast",
		Steps: p.TotalSeconds(model.Empirical),
		Enter: func(float64) StepFunc { return EmpiricalStep(p) },
	}}
}

func EmpiricalStep(p model.RoastParameters) StepFunc {
	batch := batchFactor(p)
	gain := EmpiricalGainRate / p.BeanDensity
	return func(bt float64, s int) float64 {
		if s < EmpiricalLossSteps {
			return bt - (EmpiricalLossStart-EmpiricalLossDecay*float64(s))*batch
		}
		return bt + (p.ChargeTempC-bt)*gain
	}
}
