package model

// 全局常量
// 温度单位 ℃，时间单位 min，每个模拟步长为 1s

const (
	AmbientTemp = 20.0 // 入豆前的豆温

	MinBatchGrams = 100
	MaxBatchGrams = 1000

	MinChargeTemp = 150
	MaxChargeTemp = 250

	// 出豆温度的期望上限，超出时只记录告警
	MaxDropTemp = 250

	SecondsPerMinute = 60
)

// 可选的生豆密度 (0.8 软豆, 1.2 硬豆)
var BeanDensities = []float64{0.8, 1.0, 1.2}

// 前端提供的回放倍速
var PlaybackSpeeds = []Speed{1, 2, 5, 20, 60, Instant}
