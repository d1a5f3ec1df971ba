package model

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// 参数越界，模拟开始前返回
type ParameterError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// 分钟换算为整秒（步数）
func Seconds(minutes float64) int {
	return int(math.Round(minutes * SecondsPerMinute))
}

func (p RoastParameters) DrySeconds() int      { return Seconds(p.DryTimeMin) }
func (p RoastParameters) MaillardSeconds() int { return Seconds(p.MaillardTimeMin) }
func (p RoastParameters) DevSeconds() int      { return Seconds(p.DevTimeMin) }

// 模拟总步数
func (p RoastParameters) TotalSeconds(v Variant) int {
	if v == PhaseBased {
		return p.DrySeconds() + p.MaillardSeconds() + p.DevSeconds()
	}
	return Seconds(p.TotalTimeMin)
}

func (p RoastParameters) Validate(v Variant) error {
	// NaN 与任何值比较都为 false，按取反的区间写
	if !(p.BatchGrams >= MinBatchGrams && p.BatchGrams <= MaxBatchGrams) {
		return &ParameterError{Field: "batch_grams", Value: p.BatchGrams,
			Reason: fmt.Sprintf("want %d..%d", MinBatchGrams, MaxBatchGrams)}
	}
	if !(p.ChargeTempC >= MinChargeTemp && p.ChargeTempC <= MaxChargeTemp) {
		return &ParameterError{Field: "charge_temp_c", Value: p.ChargeTempC,
			Reason: fmt.Sprintf("want %d..%d", MinChargeTemp, MaxChargeTemp)}
	}
	if !validDensity(p.BeanDensity) {
		return &ParameterError{Field: "bean_density", Value: p.BeanDensity,
			Reason: fmt.Sprintf("want one of %v", BeanDensities)}
	}
	if !(p.Speed >= 0) || math.IsInf(float64(p.Speed), 0) {
		return &ParameterError{Field: "speed", Value: p.Speed, Reason: "want a positive multiplier or instant"}
	}

	switch v {
	case Empirical:
		return validDuration("total_time_min", p.TotalTimeMin)
	case PhaseBased:
		if err := validDuration("dry_time_min", p.DryTimeMin); err != nil {
			return err
		}
		if err := validDuration("maillard_time_min", p.MaillardTimeMin); err != nil {
			return err
		}
		if err := validDuration("dev_time_min", p.DevTimeMin); err != nil {
			return err
		}
		if !(p.DropTempC > 0) || math.IsInf(p.DropTempC, 0) {
			return &ParameterError{Field: "drop_temp_c", Value: p.DropTempC, Reason: "must be > 0"}
		}
		if p.DropTempC < p.ChargeTempC || p.DropTempC > MaxDropTemp {
			log.WithFields(log.Fields{
				"drop_temp_c":   p.DropTempC,
				"charge_temp_c": p.ChargeTempC,
			}).Debug("出豆温度不在 charge..250 范围内")
		}
		return nil
	}
	return &ParameterError{Field: "variant", Value: v, Reason: "unknown variant"}
}

// 时长必须为正且至少覆盖一个步长
func validDuration(field string, minutes float64) error {
	if !(minutes > 0) || math.IsInf(minutes, 0) {
		return &ParameterError{Field: field, Value: minutes, Reason: "must be > 0"}
	}
	if Seconds(minutes) < 1 {
		return &ParameterError{Field: field, Value: minutes, Reason: "shorter than one second"}
	}
	return nil
}

func validDensity(d float64) bool {
	for _, v := range BeanDensities {
		if d == v {
			return true
		}
	}
	return false
}
