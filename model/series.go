package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// 豆温曲线，每秒一个采样点
// samples[i] 为第 i+1 秒结束时的豆温，曲线起点固定为 start (室温)
// 生成后不可变，只能通过访问方法读取副本
type TemperatureSeries struct {
	start   float64
	samples []float64
}

// 序列化用的外形
type seriesDoc struct {
	Start   float64   `json:"start" yaml:"start"`
	Samples []float64 `json:"samples" yaml:"samples"`
}

func NewTemperatureSeries(samples []float64) TemperatureSeries {
	owned := make([]float64, len(samples))
	copy(owned, samples)
	return TemperatureSeries{start: AmbientTemp, samples: owned}
}

// 采样点个数，等于模拟总秒数
func (ts TemperatureSeries) Len() int {
	return len(ts.samples)
}

func (ts TemperatureSeries) Start() float64 {
	return ts.start
}

// 第 sec 秒的豆温，sec == 0 为起点
func (ts TemperatureSeries) At(sec int) float64 {
	if sec == 0 {
		return ts.start
	}
	return ts.samples[sec-1]
}

func (ts TemperatureSeries) Last() float64 {
	if len(ts.samples) == 0 {
		return ts.start
	}
	return ts.samples[len(ts.samples)-1]
}

// 复制一份，保证曲线不可变
func (ts TemperatureSeries) Values() []float64 {
	out := make([]float64, len(ts.samples))
	copy(out, ts.samples)
	return out
}

// 含起点的完整曲线，x 为秒
func (ts TemperatureSeries) Points() []float64 {
	out := make([]float64, 0, len(ts.samples)+1)
	out = append(out, ts.start)
	return append(out, ts.samples...)
}

func (ts TemperatureSeries) doc() seriesDoc {
	return seriesDoc{Start: ts.start, Samples: ts.Values()}
}

func (ts *TemperatureSeries) load(d seriesDoc) {
	ts.start, ts.samples = d.Start, d.Samples
}

func (ts TemperatureSeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.doc())
}

func (ts *TemperatureSeries) UnmarshalJSON(b []byte) error {
	var d seriesDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	ts.load(d)
	return nil
}

func (ts TemperatureSeries) MarshalYAML() (interface{}, error) {
	return ts.doc(), nil
}

func (ts *TemperatureSeries) UnmarshalYAML(node *yaml.Node) error {
	var d seriesDoc
	if err := node.Decode(&d); err != nil {
		return err
	}
	ts.load(d)
	return nil
}
