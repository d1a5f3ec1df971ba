package simulator

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"roastsim/deque"
	"roastsim/model"
)

// 回放：按倍速把已经算好的曲线逐点推送给调用方
// 计算本身不等待，等待只发生在这里，且可以随时取消
type Player struct {
	mu     sync.Mutex
	window deque.Deque // 最近推送的采样点
}

func NewPlayer(window int) *Player {
	return &Player{window: deque.NewArrDeque(window)}
}

// 每个采样点之间的间隔 1/(60*speed) 秒，instant 不等待
func Delay(speed model.Speed) time.Duration {
	if speed.IsInstant() || speed < 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / (60 * float64(speed)))
}

func (p *Player) Play(ctx context.Context, series model.TemperatureSeries, speed model.Speed,
	emit func(point model.SamplePushData) error) error {
	p.mu.Lock()
	p.window.Clear()
	p.mu.Unlock()

	delay := Delay(speed)
	points := series.Points()
LOOP:
	for sec, temp := range points {
		if err := ctx.Err(); err != nil {
			return err
		}
		point := model.SamplePushData{Second: sec, Temperature: temp}
		if err := emit(point); err != nil {
			return err
		}
		p.mu.Lock()
		p.window.AddLast(point)
		p.mu.Unlock()

		if delay == 0 || sec == len(points)-1 {
			continue LOOP
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.WithField("second", sec).Info("回放已取消")
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// 最近推送的采样点，供中途加入的客户端补齐曲线
func (p *Player) Window() []model.SamplePushData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window.Slice()
}
