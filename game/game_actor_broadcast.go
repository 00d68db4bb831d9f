// File: game/game_actor_broadcast.go
package game

import (
	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/render"
)

// GameState is the snapshot pushed to clients and returned by GetState.
type GameState struct {
	SessionID        string               `json:"sessionId"`
	Phase            Phase                `json:"phase"`
	ReadyRemainingMS int64                `json:"readyRemainingMs"`
	TimeRemainingMS  int64                `json:"timeRemainingMs"`
	Score            int                  `json:"score"`
	Broken           int                  `json:"broken"`
	Combo            int                  `json:"combo"`
	BestCombo        int                  `json:"bestCombo"`
	Width            float64              `json:"width"`
	Height           float64              `json:"height"`
	Chef             render.SpriteState   `json:"chef"`
	Hens             []render.SpriteState `json:"hens"`
	Eggs             []render.SpriteState `json:"eggs"`
}

func (a *EggGameActor) snapshot() GameState {
	return GameState{
		SessionID:        a.sessionID,
		Phase:            a.phase,
		ReadyRemainingMS: a.readyRemaining.Milliseconds(),
		TimeRemainingMS:  a.timeRemaining.Milliseconds(),
		Score:            a.score,
		Broken:           a.broken,
		Combo:            a.combo,
		BestCombo:        a.bestCombo,
		Width:            a.scene.Width,
		Height:           a.scene.Height,
		Chef:             a.chef.State(),
		Hens:             a.scene.Snapshot(render.KindHen),
		Eggs:             a.scene.Snapshot(render.KindEgg),
	}
}

func (a *EggGameActor) handleSubscribe(ctx bollywood.Context, pid *bollywood.PID) {
	if pid == nil {
		return
	}
	a.subscribers[pid.ID] = pid
	ctx.Send(pid, StateUpdate{State: a.snapshot()})
}

// handleBroadcastTick pushes a snapshot to subscribers while anything is changing.
// Sprites move inside animation actors, so live animations count as changes.
func (a *EggGameActor) handleBroadcastTick(ctx bollywood.Context) {
	moving := len(a.eggs) > 0 || a.chefAnimPID != nil
	if !a.dirty && !moving {
		return
	}
	a.dirty = false
	if len(a.subscribers) == 0 {
		return
	}
	update := StateUpdate{State: a.snapshot()}
	for _, sub := range a.subscribers {
		ctx.Send(sub, update)
	}
}
