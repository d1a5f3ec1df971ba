package library

import (
	"io"

	"gopkg.in/yaml.v3"

	"roastsim/model"
)

const DefaultCompareLimit = 4

// 技术参数对比表中的一行
type Detail struct {
	Name         string  `json:"name" yaml:"name"`
	Variant      string  `json:"variant" yaml:"variant"`
	BatchGrams   float64 `json:"batch_grams" yaml:"batch_grams"`
	ChargeTempC  float64 `json:"charge_temp_c" yaml:"charge_temp_c"`
	TotalTimeMin float64 `json:"total_time_min" yaml:"total_time_min"`
	DTR          float64 `json:"dtr,omitempty" yaml:"dtr,omitempty"`
	DropTempC    float64 `json:"drop_temp_c,omitempty" yaml:"drop_temp_c,omitempty"`
}

// 选出要对比的记录，未指定时取最早的 limit 条
// 没有选中任何记录时返回空结果，不算错误
func Compare(repo Repository, names []string, limit int) ([]*model.RoastRecord, error) {
	if limit <= 0 {
		limit = DefaultCompareLimit
	}
	if len(names) == 0 {
		all, err := repo.List()
		if err != nil {
			return nil, err
		}
		if len(all) > limit {
			all = all[:limit]
		}
		return all, nil
	}

	selected := make([]*model.RoastRecord, 0, limit)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if len(selected) == limit {
			break
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		record, err := repo.Get(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, record)
	}
	return selected, nil
}

func Details(records []*model.RoastRecord) []Detail {
	out := make([]Detail, 0, len(records))
	for _, r := range records {
		d := Detail{
			Name:         r.Name,
			Variant:      r.Variant.String(),
			BatchGrams:   r.Parameters.BatchGrams,
			ChargeTempC:  r.Parameters.ChargeTempC,
			TotalTimeMin: r.Metrics.TotalTimeMin,
		}
		if r.Variant == model.PhaseBased {
			d.DTR = r.Metrics.DTR
			d.DropTempC = r.Parameters.DropTempC
		}
		out = append(out, d)
	}
	return out
}

// 导出整个记录库
func Export(w io.Writer, records []*model.RoastRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Roasts []*model.RoastRecord `yaml:"roasts"`
	}{records}); err != nil {
		return err
	}
	return enc.Close()
}
