// 根据三段模型参数给出风味评估，每个维度按顺序匹配，先命中先返回
package flavor

import (
	"errors"
	"fmt"

	"roastsim/model"
)

// 阈值
const (
	BrightDropBelow   = 205.0 // ℃
	BalancedDropBelow = 212.0

	HeavyMaillardAbove = 4.0 // min
	LightMaillardBelow = 2.5

	UnderdevelopedDTRBelow = 12.0 // %
	BakedTotalAbove        = 14.0 // min
)

const (
	AcidityHigh     = "high/fresh (citrus, green apple)"
	AcidityBalanced = "balanced/ripe (stone fruit, berries)"
	AcidityLow      = "low/muted (cocoa, smoke)"

	BodyHeavy  = "heavy/creamy"
	BodyLight  = "light/tea-like"
	BodyMedium = "medium/syrupy"
)

var ErrUnsupportedVariant = errors.New("flavor assessment needs a phase-based roast")

// 评估一条已保存的记录，只有三段模型记录带阶段时长
func Evaluate(record *model.RoastRecord) (model.FlavorAssessment, error) {
	if record == nil {
		return model.FlavorAssessment{}, fmt.Errorf("nil record: %w", model.ErrInvalidParameter)
	}
	if record.Variant != model.PhaseBased {
		return model.FlavorAssessment{}, fmt.Errorf("%q is %s: %w", record.Name, record.Variant, ErrUnsupportedVariant)
	}
	return assess(record.Parameters, record.Metrics), nil
}

// 不经过记录，直接评估参数
func Assess(p model.RoastParameters) (model.FlavorAssessment, error) {
	if err := p.Validate(model.PhaseBased); err != nil {
		return model.FlavorAssessment{}, err
	}
	return assess(p, model.DeriveMetrics(p, model.PhaseBased)), nil
}

func assess(p model.RoastParameters, m model.Metrics) model.FlavorAssessment {
	return model.FlavorAssessment{
		Acidity:  Acidity(p.DropTempC),
		Body:     Body(p.MaillardTimeMin),
		Warnings: Warnings(m),
	}
}

func Acidity(dropTempC float64) string {
	if dropTempC < BrightDropBelow {
		return AcidityHigh
	}
	if dropTempC < BalancedDropBelow {
		return AcidityBalanced
	}
	return AcidityLow
}

func Body(maillardTimeMin float64) string {
	if maillardTimeMin > HeavyMaillardAbove {
		return BodyHeavy
	}
	if maillardTimeMin < LightMaillardBelow {
		return BodyLight
	}
	return BodyMedium
}

// 告警相互独立，为空表示风味均衡
func Warnings(m model.Metrics) []model.WarningKind {
	var out []model.WarningKind
	if m.DTR < UnderdevelopedDTRBelow {
		out = append(out, model.WarningUnderdeveloped)
	}
	if m.TotalTimeMin > BakedTotalAbove {
		out = append(out, model.WarningBaked)
	}
	return out
}
