package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 模拟模型
type Variant int

const (
	Empirical  Variant = iota // 单段经验模型
	PhaseBased                // 干燥 / 美拉德 / 发展 三段模型
)

func (v Variant) String() string {
	switch v {
	case Empirical:
		return "empirical"
	case PhaseBased:
		return "phase"
	default:
		return "variant(" + strconv.Itoa(int(v)) + ")"
	}
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empirical", "simple":
		return Empirical, nil
	case "phase", "phase-based", "phasebased":
		return PhaseBased, nil
	}
	return 0, &ParameterError{Field: "variant", Value: s, Reason: "unknown variant"}
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// 回放倍速，0 表示立即完成
type Speed float64

const Instant Speed = 0

func (s Speed) IsInstant() bool {
	return s == Instant
}

func (s Speed) String() string {
	if s.IsInstant() {
		return "instant"
	}
	return strconv.FormatFloat(float64(s), 'g', -1, 64)
}

func ParseSpeed(s string) (Speed, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "instant" {
		return Instant, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !(f >= 0) || math.IsInf(f, 0) {
		return 0, &ParameterError{Field: "speed", Value: s, Reason: "want a positive multiplier or \"instant\""}
	}
	return Speed(f), nil
}

func (s Speed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Speed) UnmarshalText(b []byte) error {
	parsed, err := ParseSpeed(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// 前端可能传数字也可能传 "instant"
func (s *Speed) UnmarshalJSON(b []byte) error {
	return s.UnmarshalText([]byte(strings.Trim(string(b), `"`)))
}

// 烘焙参数，由前端控件提供
type RoastParameters struct {
	BatchGrams  float64 `json:"batch_grams" yaml:"batch_grams"`
	ChargeTempC float64 `json:"charge_temp_c" yaml:"charge_temp_c"`
	BeanDensity float64 `json:"bean_density" yaml:"bean_density"`

	// 经验模型
	TotalTimeMin float64 `json:"total_time_min,omitempty" yaml:"total_time_min,omitempty"`

	// 三段模型
	DryTimeMin      float64 `json:"dry_time_min,omitempty" yaml:"dry_time_min,omitempty"`
	MaillardTimeMin float64 `json:"maillard_time_min,omitempty" yaml:"maillard_time_min,omitempty"`
	DevTimeMin      float64 `json:"dev_time_min,omitempty" yaml:"dev_time_min,omitempty"`
	DropTempC       float64 `json:"drop_temp_c,omitempty" yaml:"drop_temp_c,omitempty"`

	Speed Speed `json:"speed" yaml:"speed"`
}

// 派生指标
type Metrics struct {
	TotalTimeMin float64 `json:"total_time_min" yaml:"total_time_min"`
	DTR          float64 `json:"dtr,omitempty" yaml:"dtr,omitempty"` // 发展时间占比 %
}

// 风味告警
type WarningKind int

const (
	WarningUnderdeveloped WarningKind = iota + 1
	WarningBaked
)

func (w WarningKind) String() string {
	switch w {
	case WarningUnderdeveloped:
		return "risk of grassy/underdeveloped flavor"
	case WarningBaked:
		return "risk of baked flavor (flat sweetness)"
	default:
		return fmt.Sprintf("warning(%d)", int(w))
	}
}

func (w WarningKind) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

const BalancedNote = "profile appears balanced"

type FlavorAssessment struct {
	Acidity  string        `json:"acidity"`
	Body     string        `json:"body"`
	Warnings []WarningKind `json:"warnings"`
}

func (a FlavorAssessment) Has(w WarningKind) bool {
	for _, k := range a.Warnings {
		if k == w {
			return true
		}
	}
	return false
}

func (a FlavorAssessment) Notes() []string {
	if len(a.Warnings) == 0 {
		return []string{BalancedNote}
	}
	notes := make([]string, 0, len(a.Warnings))
	for _, w := range a.Warnings {
		notes = append(notes, w.String())
	}
	return notes
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// simulate 请求内容
type SimulateReq struct {
	Name       string          `json:"name"`
	Variant    Variant         `json:"variant"`
	Parameters RoastParameters `json:"parameters"`
}

// compare 请求内容
type CompareReq struct {
	Names []string `json:"names"`
}

// 单个采样点推送
type SamplePushData struct {
	Second      int     `json:"second"`
	Temperature float64 `json:"temperature"`
}
