package model

import (
	"time"

	"github.com/google/uuid"
)

// 烘焙记录，按 Name 唯一存储
type RoastRecord struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Variant    Variant           `json:"variant" yaml:"variant"`
	Parameters RoastParameters   `json:"parameters" yaml:"parameters"`
	Series     TemperatureSeries `json:"series" yaml:"series"`
	Metrics    Metrics           `json:"metrics" yaml:"metrics"`
	CreatedAt  time.Time         `json:"created_at" yaml:"created_at"`
}

func NewRecord(name string, v Variant, p RoastParameters, series TemperatureSeries) *RoastRecord {
	return &RoastRecord{
		ID:         uuid.New().String(),
		Name:       name,
		Variant:    v,
		Parameters: p,
		Series:     series,
		Metrics:    DeriveMetrics(p, v),
		CreatedAt:  time.Now().UTC(),
	}
}

func DeriveMetrics(p RoastParameters, v Variant) Metrics {
	if v != PhaseBased {
		return Metrics{TotalTimeMin: p.TotalTimeMin}
	}
	total := p.DryTimeMin + p.MaillardTimeMin + p.DevTimeMin
	m := Metrics{TotalTimeMin: total}
	if total > 0 {
		m.DTR = p.DevTimeMin / total * 100
	}
	return m
}
