package server

import (
	"roastsim/flavor"
	"roastsim/library"
	"roastsim/model"
	"roastsim/simulator"
)

// 曲线图数据：x 为秒，y 为豆温，Markers 为阶段分界线（秒）
type ChartData struct {
	Name         string    `json:"name"`
	Temperatures []float64 `json:"temperatures"`
	Markers      []int     `json:"markers,omitempty"`
}

type AssessmentData struct {
	Acidity string   `json:"acidity"`
	Body    string   `json:"body"`
	Notes   []string `json:"notes"`
}

type FinishedPushData struct {
	Record     library.Detail  `json:"record"`
	Chart      ChartData       `json:"chart"`
	Assessment *AssessmentData `json:"assessment,omitempty"`
}

type ComparePushData struct {
	Details []library.Detail `json:"details"`
	Charts  []ChartData      `json:"charts"`
}

func buildChart(r *model.RoastRecord) ChartData {
	return ChartData{
		Name:         r.Name,
		Temperatures: r.Series.Points(),
		Markers:      simulator.PhaseMarkers(r.Parameters, r.Variant),
	}
}

// 三段模型才有风味评估
func buildAssessment(r *model.RoastRecord) (*AssessmentData, error) {
	if r.Variant != model.PhaseBased {
		return nil, nil
	}
	a, err := flavor.Evaluate(r)
	if err != nil {
		return nil, err
	}
	return &AssessmentData{Acidity: a.Acidity, Body: a.Body, Notes: a.Notes()}, nil
}

func buildFinished(r *model.RoastRecord) (FinishedPushData, error) {
	assessment, err := buildAssessment(r)
	if err != nil {
		return FinishedPushData{}, err
	}
	return FinishedPushData{
		Record:     library.Details([]*model.RoastRecord{r})[0],
		Chart:      buildChart(r),
		Assessment: assessment,
	}, nil
}

func buildCompare(records []*model.RoastRecord) ComparePushData {
	data := ComparePushData{
		Details: library.Details(records),
		Charts:  make([]ChartData, 0, len(records)),
	}
	for _, r := range records {
		data.Charts = append(data.Charts, buildChart(r))
	}
	return data
}
