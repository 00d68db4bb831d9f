// File: game/game_actor_handlers.go
package game

import (
	"fmt"
	"math"

	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/render"
	"github.com/lguibr/eggchef/utils"
)

// armLayTimer schedules the next egg.
func (a *EggGameActor) armLayTimer(ctx bollywood.Context) {
	if a.layTimerPID != nil {
		return
	}
	props, err := NewTimerProps(TimerInput{ID: layTimerID, Duration: a.cfg.EggLayInterval})
	if err != nil {
		ctx.Logger().Error("EggGameActor: cannot create lay timer", "error", err)
		return
	}
	a.layTimerPID = ctx.Spawn(props)
}

func (a *EggGameActor) handleLayTimer(ctx bollywood.Context, m TimerDone) {
	if m.ID != layTimerID || !ctx.Sender().Equal(a.layTimerPID) {
		return
	}
	a.layTimerPID = nil
	if a.phase != PhasePlaying {
		return
	}
	a.layEgg(ctx)
	a.armLayTimer(ctx)
}

// layEgg drops an egg from the next hen, round-robin.
func (a *EggGameActor) layEgg(ctx bollywood.Context) {
	hen := a.hens[a.nextHen%len(a.hens)]
	a.nextHen++
	a.eggSeq++

	start := hen.Transform()
	egg := render.NewSprite(fmt.Sprintf("egg-%d", a.eggSeq), render.KindEgg, start)
	a.scene.Add(egg)

	props, err := NewAnimationProps(AnimationInput{
		ID:   egg.ID(),
		Node: egg,
		Target: render.Target{
			X:        start.X,
			Y:        a.cfg.ChefY,
			Rotation: start.Rotation + a.cfg.EggSpin,
			Duration: a.cfg.EggFallDuration,
		},
		Ease:          a.eggEase,
		FrameInterval: a.cfg.FrameInterval,
	})
	if err != nil {
		ctx.Logger().Error("EggGameActor: cannot animate egg", "egg", egg.ID(), "error", err)
		a.scene.Remove(egg.ID())
		return
	}
	a.eggs[egg.ID()] = ctx.Spawn(props)
	a.dirty = true
}

func (a *EggGameActor) handleAnimationDone(ctx bollywood.Context, m AnimationDone) {
	if m.ID == a.chefAnimID {
		a.chefAnimPID = nil
		a.dirty = true
		return
	}
	if _, ok := a.eggs[m.ID]; !ok {
		return
	}
	delete(a.eggs, m.ID)

	node := a.scene.Get(m.ID)
	a.scene.Remove(m.ID)
	a.dirty = true
	if node == nil || a.phase == PhaseOver {
		return
	}

	if math.Abs(a.chef.Transform().X-node.Transform().X) <= a.cfg.CatchRadius {
		a.score++
		a.combo++
		if a.combo > a.bestCombo {
			a.bestCombo = a.combo
		}
		if a.comboPID != nil {
			ctx.Send(a.comboPID, Trigger{Payload: a.combo})
		}
		a.playSound(ctx, audio.SoundCatch)
		return
	}
	a.broken++
	a.playSound(ctx, audio.SoundSplat)
}

// handleComboEnded closes a catch streak once no egg was caught for the combo window.
func (a *EggGameActor) handleComboEnded(ctx bollywood.Context, m DebounceFired) {
	if m.Key != comboKey {
		return
	}
	if a.combo > a.bestCombo {
		a.bestCombo = a.combo
	}
	ctx.Logger().Debug("EggGameActor: combo ended", "combo", a.combo)
	a.combo = 0
	a.dirty = true
}

// handleMoveChef tweens the chef one step. A new move takes the chef's lease,
// which cuts short any move still in flight.
func (a *EggGameActor) handleMoveChef(ctx bollywood.Context, m MoveChef) {
	if a.phase != PhasePlaying {
		return
	}
	var delta float64
	switch utils.DirectionFromString(m.Direction) {
	case "left":
		delta = -a.cfg.ChefStep
	case "right":
		delta = a.cfg.ChefStep
	default:
		return
	}
	target := utils.Clamp(a.chefTargetX+delta, 0, a.cfg.CanvasWidth)
	if target == a.chefTargetX {
		return
	}
	a.chefTargetX = target

	a.chefMoveSeq++
	id := fmt.Sprintf("chef-move-%d", a.chefMoveSeq)
	props, err := NewAnimationProps(AnimationInput{
		ID:   id,
		Node: a.chef,
		Target: render.Target{
			X:        target,
			Y:        a.cfg.ChefY,
			Duration: a.cfg.ChefMoveDuration,
		},
		Ease:          a.chefEase,
		FrameInterval: a.cfg.FrameInterval,
	})
	if err != nil {
		ctx.Logger().Error("EggGameActor: cannot animate chef", "error", err)
		return
	}
	a.stopChild(ctx, &a.chefAnimPID)
	a.chefAnimID = id
	a.chefAnimPID = ctx.Spawn(props)
	a.dirty = true
}

func (a *EggGameActor) handlePause(ctx bollywood.Context) {
	if a.phase != PhaseReady && a.phase != PhasePlaying {
		return
	}
	a.pausedFrom = a.phase
	a.phase = PhasePaused

	if a.countdownPID != nil {
		ctx.Send(a.countdownPID, PauseCountdown{})
	}
	if a.gameTimerPID != nil {
		ctx.Send(a.gameTimerPID, PauseGameTimer{})
	}
	a.stopChild(ctx, &a.layTimerPID)
	for _, pid := range a.eggs {
		ctx.Send(pid, PauseAnimation{})
	}
	if a.chefAnimPID != nil {
		ctx.Send(a.chefAnimPID, PauseAnimation{})
	}
	a.dirty = true
	ctx.Logger().Debug("EggGameActor: paused", "session", a.sessionID)
}

func (a *EggGameActor) handleResume(ctx bollywood.Context) {
	if a.phase != PhasePaused {
		return
	}
	a.phase = a.pausedFrom
	if a.roundPending {
		a.startRound(ctx)
		ctx.Logger().Debug("EggGameActor: resumed", "session", a.sessionID)
		return
	}

	if a.countdownPID != nil {
		ctx.Send(a.countdownPID, ResumeCountdown{})
	}
	if a.gameTimerPID != nil {
		ctx.Send(a.gameTimerPID, ResumeGameTimer{})
	}
	for _, pid := range a.eggs {
		ctx.Send(pid, ResumeAnimation{})
	}
	if a.chefAnimPID != nil {
		ctx.Send(a.chefAnimPID, ResumeAnimation{})
	}
	if a.phase == PhasePlaying {
		a.armLayTimer(ctx)
	}
	a.dirty = true
	ctx.Logger().Debug("EggGameActor: resumed", "session", a.sessionID)
}
