package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"roastsim/conf"
	"roastsim/library"
	"roastsim/model"
	"roastsim/simulator"
)

// 消息类型
const (
	// request
	TypeSimulate = "simulate"
	TypeReset    = "reset"
	TypeSnapshot = "snapshot"
	TypeList     = "list"
	TypeDelete   = "delete"
	TypeClear    = "clear"
	TypeCompare  = "compare"
	TypeAssess   = "assess"

	// response
	TypeSample   = "sample"
	TypeFinished = "finished"
	TypeDeleted  = "deleted"
	TypeCleared  = "cleared"
	TypeCompared = "compared"
	TypeAssessed = "assessed"
	TypeError    = "error"
)

const defaultRoastName = "unnamed roast"

// Hub 负责一个连接上的请求分发与回放推送
type Hub struct {
	conn   *websocket.Conn
	repo   library.Repository
	player *simulator.Player
	cfg    conf.SimulationConfig
	// request
	msg chan model.Msg
	// response
	send chan model.Msg

	mu     sync.Mutex
	cancel context.CancelFunc // 正在进行的回放
	wg     sync.WaitGroup
}

func NewHub(conn *websocket.Conn, repo library.Repository, cfg conf.SimulationConfig) *Hub {
	return &Hub{
		conn:   conn,
		repo:   repo,
		player: simulator.NewPlayer(cfg.WindowSize),
		cfg:    cfg,
		msg:    make(chan model.Msg, 10),
		send:   make(chan model.Msg, 256),
	}
}

// 唯一的写协程
func (h *Hub) handleResponse(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reply := <-h.send:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).WithField("type", reply.Type).Warn("write message failed")
				return
			}
		}
	}
}

func (h *Hub) handleRequest(ctx context.Context) {
	defer h.stopPlayback()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-h.msg:
			h.dispatch(ctx, msg)
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, msg model.Msg) {
	var err error
	switch msg.Type {
	case TypeSimulate:
		err = h.simulate(ctx, msg.Content)
	case TypeReset:
		h.stopPlayback()
		err = h.reply(ctx, TypeReset, "reset")
	case TypeSnapshot:
		err = h.replyJSON(ctx, TypeSnapshot, h.player.Window())
	case TypeList:
		err = h.list(ctx)
	case TypeDelete:
		err = h.delete(ctx, strings.TrimSpace(msg.Content))
	case TypeClear:
		if err = h.repo.Clear(); err == nil {
			log.Info("烘焙记录库已清空")
			err = h.reply(ctx, TypeCleared, "library cleared")
		}
	case TypeCompare:
		err = h.compare(ctx, msg.Content)
	case TypeAssess:
		err = h.assess(ctx, strings.TrimSpace(msg.Content))
	default:
		err = fmt.Errorf("no such type %q", msg.Type)
	}
	if err != nil {
		log.WithError(err).WithField("type", msg.Type).Warn("request failed")
		h.reply(ctx, TypeError, err.Error())
	}
}

// 计算在请求时同步完成，回放在单独的协程中进行，可被 reset 打断
func (h *Hub) simulate(ctx context.Context, content string) error {
	var req model.SimulateReq
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return fmt.Errorf("decode simulate request: %w", err)
	}
	if req.Name == "" {
		req.Name = defaultRoastName
	}
	series, err := simulator.Simulate(req.Parameters, req.Variant)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"name":    req.Name,
		"variant": req.Variant.String(),
		"speed":   req.Parameters.Speed.String(),
		"seconds": series.Len(),
	}).Info("开始回放")

	h.stopPlayback()
	playCtx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer cancel()
		err := h.player.Play(playCtx, series, req.Parameters.Speed, func(point model.SamplePushData) error {
			return h.replyJSON(playCtx, TypeSample, point)
		})
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.WithError(err).Warn("回放失败")
			}
			return
		}
		// 回放完成才保存
		record := model.NewRecord(req.Name, req.Variant, req.Parameters, series)
		if err := h.repo.Save(record); err != nil {
			log.WithError(err).Error("保存烘焙记录失败")
			h.reply(ctx, TypeError, err.Error())
			return
		}
		data, err := buildFinished(record)
		if err != nil {
			h.reply(ctx, TypeError, err.Error())
			return
		}
		h.replyJSON(ctx, TypeFinished, data)
	}()
	return nil
}

func (h *Hub) stopPlayback() {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	h.wg.Wait()
}

func (h *Hub) list(ctx context.Context) error {
	records, err := h.repo.List()
	if err != nil {
		return err
	}
	return h.replyJSON(ctx, TypeList, library.Details(records))
}

func (h *Hub) delete(ctx context.Context, name string) error {
	if err := h.repo.Delete(name); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return h.reply(ctx, TypeDeleted, name)
}

func (h *Hub) compare(ctx context.Context, content string) error {
	var req model.CompareReq
	if strings.TrimSpace(content) != "" {
		if err := json.Unmarshal([]byte(content), &req); err != nil {
			return fmt.Errorf("decode compare request: %w", err)
		}
	}
	records, err := library.Compare(h.repo, req.Names, h.cfg.CompareLimit)
	if err != nil {
		return err
	}
	return h.replyJSON(ctx, TypeCompared, buildCompare(records))
}

func (h *Hub) assess(ctx context.Context, name string) error {
	record, err := h.repo.Get(name)
	if err != nil {
		return fmt.Errorf("assess %q: %w", name, err)
	}
	data, err := buildFinished(record)
	if err != nil {
		return err
	}
	if data.Assessment == nil {
		return fmt.Errorf("assess %q: empirical roasts have no flavor profile", name)
	}
	return h.replyJSON(ctx, TypeAssessed, data.Assessment)
}

func (h *Hub) reply(ctx context.Context, typ, content string) error {
	select {
	case h.send <- model.Msg{Type: typ, Content: content}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) replyJSON(ctx context.Context, typ string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return h.reply(ctx, typ, string(data))
}
