// File: game/game_actor.go
package game

import (
	"fmt"
	"time"

	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/render"
	"github.com/lguibr/eggchef/utils"
)

// Phase is the coarse state of a session.
type Phase string

const (
	PhaseReady   Phase = "ready"
	PhasePlaying Phase = "playing"
	PhasePaused  Phase = "paused"
	PhaseOver    Phase = "over"
)

const (
	layTimerID = "lay"
	comboKey   = "combo"
)

// EggGameActor runs one session: a ready countdown, then a timed round in
// which hens lay eggs that the chef has to catch.
type EggGameActor struct {
	sessionID string
	cfg       utils.Config
	player    audio.Player
	eggEase   render.EaseFunc
	chefEase  render.EaseFunc

	scene *render.Scene
	chef  *render.Sprite
	hens  []*render.Sprite

	phase        Phase
	pausedFrom   Phase
	roundPending bool // Ready ran out while paused

	// Children
	countdownPID *bollywood.PID
	gameTimerPID *bollywood.PID
	layTimerPID  *bollywood.PID
	soundPID     *bollywood.PID
	comboPID     *bollywood.PID
	chefAnimPID  *bollywood.PID
	chefAnimID   string
	eggs         map[string]*bollywood.PID // Egg sprite ID -> falling animation

	eggSeq      int
	chefMoveSeq int
	nextHen     int
	chefTargetX float64

	readyRemaining time.Duration
	timeRemaining  time.Duration
	score          int
	broken         int
	combo          int
	bestCombo      int

	subscribers     map[string]*bollywood.PID
	dirty           bool
	broadcastCancel bollywood.Cancel
}

// NewEggGameProps validates cfg and returns props for a session actor.
func NewEggGameProps(sessionID string, cfg utils.Config, player audio.Player) (*bollywood.Props, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if player == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNoPlayer)
	}
	eggEase, _ := render.EaseByName(cfg.EggEase)
	chefEase, _ := render.EaseByName(cfg.ChefEase)

	return bollywood.NewProps(func() bollywood.Actor {
		a := &EggGameActor{
			sessionID:      sessionID,
			cfg:            cfg,
			player:         player,
			eggEase:        eggEase,
			chefEase:       chefEase,
			phase:          PhaseReady,
			eggs:           make(map[string]*bollywood.PID),
			subscribers:    make(map[string]*bollywood.PID),
			readyRemaining: cfg.ReadyCountdown,
			timeRemaining:  cfg.GameDuration,
		}
		a.buildScene()
		return a
	}).WithName("game"), nil
}

// buildScene places the hens along the top and the chef in the middle of the floor.
func (a *EggGameActor) buildScene() {
	a.scene = render.NewScene(a.cfg.CanvasWidth, a.cfg.CanvasHeight)
	for i, x := range utils.Spread(a.cfg.HenCount, a.cfg.CanvasWidth) {
		hen := render.NewSprite(fmt.Sprintf("hen-%d", i), render.KindHen, render.Transform{X: x, Y: a.cfg.HenY})
		a.hens = append(a.hens, hen)
		a.scene.Add(hen)
	}
	a.chefTargetX = a.cfg.CanvasWidth / 2
	a.chef = render.NewSprite("chef", render.KindChef, render.Transform{X: a.chefTargetX, Y: a.cfg.ChefY})
	a.scene.Add(a.chef)
}

// Receive is the main message handler for the EggGameActor.
func (a *EggGameActor) Receive(ctx bollywood.Context) {
	switch m := ctx.Message().(type) {
	case bollywood.Started:
		a.handleStart(ctx)

	// Children
	case CountdownTimerTick:
		a.readyRemaining = m.Remaining
		a.dirty = true
	case CountdownTimerFinished:
		a.handleReadyFinished(ctx)
	case GameTimerTick:
		a.timeRemaining = m.Remaining
		a.dirty = true
	case GameTimerExpired:
		a.handleGameOver(ctx)
	case TimerDone:
		a.handleLayTimer(ctx, m)
	case AnimationDone:
		a.handleAnimationDone(ctx, m)
	case DebounceFired:
		a.handleComboEnded(ctx, m)
	case SoundPlayed:
		// Nothing to fold; cues are fire-and-forget.
	case bollywood.Terminated:
		a.handleChildTerminated(ctx, m.Who)

	// Player input
	case MoveChef:
		a.handleMoveChef(ctx, m)
	case PauseGame:
		a.handlePause(ctx)
	case ResumeGame:
		a.handleResume(ctx)

	// Observers
	case Subscribe:
		a.handleSubscribe(ctx, m.PID)
	case Unsubscribe:
		if m.PID != nil {
			delete(a.subscribers, m.PID.ID)
		}
	case broadcastTick:
		a.handleBroadcastTick(ctx)
	case GetState:
		ctx.Reply(a.snapshot())
	case GetASCII:
		ctx.Reply(render.RenderToASCII(a.scene, m.Resolution, false))

	case bollywood.Stopping:
		a.handleStopping(ctx)
	}
}
