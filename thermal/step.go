package thermal

import (
	"fmt"

	"roastsim/model"
)

// 每一步（1s）的豆温更新规则
// bt 为当前豆温，s 为该阶段内的步序号
type StepFunc func(bt float64, s int) float64

// 烘焙阶段，进入阶段时根据当时的豆温生成更新规则
type Phase struct {
	Name  string
	Steps int
	Enter func(start float64) StepFunc
}

// 模拟策略，给出按顺序执行的各个阶段
type Policy interface {
	Phases(p model.RoastParameters) []Phase
}

func PolicyFor(v model.Variant) (Policy, error) {
	switch v {
	case model.Empirical:
		return Empirical{}, nil
	case model.PhaseBased:
		return PhaseBased{}, nil
	}
	return nil, fmt.Errorf("no step policy for %v: %w", v, model.ErrInvalidParameter)
}

// 批量系数，以 500g 为基准
func batchFactor(p model.RoastParameters) float64 {
	return p.BatchGrams / 500
}

// 固定增量的线性升温，增量在进入阶段时计算一次
func Ramp(start, target float64, steps int) StepFunc {
	inc := (target - start) / float64(steps)
	return func(bt float64, s int) float64 {
		return bt + inc
	}
}
