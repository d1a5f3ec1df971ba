package simulator

import (
	"time"

	log "github.com/sirupsen/logrus"

	"roastsim/model"
	"roastsim/thermal"
)

// simulator 的接口定义
type Simulator interface {
	// 模拟一次烘焙，返回每秒的豆温
	Run(p model.RoastParameters) (model.TemperatureSeries, error)

	Variant() model.Variant
}

type roastSimulator struct {
	variant model.Variant
	policy  thermal.Policy
}

func New(v model.Variant) (Simulator, error) {
	policy, err := thermal.PolicyFor(v)
	if err != nil {
		return nil, err
	}
	return &roastSimulator{variant: v, policy: policy}, nil
}

func (rs *roastSimulator) Variant() model.Variant {
	return rs.variant
}

func (rs *roastSimulator) Run(p model.RoastParameters) (model.TemperatureSeries, error) {
	// 参数在模拟开始前校验，不返回部分结果
	if err := p.Validate(rs.variant); err != nil {
		return model.TemperatureSeries{}, err
	}

	start := time.Now()
	samples := make([]float64, 0, p.TotalSeconds(rs.variant))
	bt := model.AmbientTemp
	for _, phase := range rs.policy.Phases(p) {
		// 各阶段从上一阶段实际结束的豆温开始
		step := phase.Enter(bt)
		for s := 0; s < phase.Steps; s++ {
			bt = step(bt, s)
			samples = append(samples, bt)
		}
	}

	log.WithFields(log.Fields{
		"variant": rs.variant.String(),
		"seconds": len(samples),
		"final":   bt,
		"elapsed": time.Since(start),
	}).Debug("模拟完成")
	return model.NewTemperatureSeries(samples), nil
}

// 按模型模拟一次
func Simulate(p model.RoastParameters, v model.Variant) (model.TemperatureSeries, error) {
	s, err := New(v)
	if err != nil {
		return model.TemperatureSeries{}, err
	}
	return s.Run(p)
}

// 曲线上的阶段分界线（秒）：干燥结束、美拉德结束
func PhaseMarkers(p model.RoastParameters, v model.Variant) []int {
	if v != model.PhaseBased {
		return nil
	}
	dry := p.DrySeconds()
	return []int{dry, dry + p.MaillardSeconds()}
}
