// File: game/game_actor_lifecycle.go
package game

import (
	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
)

// handleStart spawns the ready countdown, the sound actor and the broadcast ticker.
func (a *EggGameActor) handleStart(ctx bollywood.Context) {
	soundProps, err := NewSoundProps(SoundInput{Player: a.player, Delay: a.cfg.SoundDebounce})
	if err != nil {
		ctx.Logger().Error("EggGameActor: cannot create sound actor", "error", err)
		ctx.Stop(ctx.Self())
		return
	}
	a.soundPID = ctx.Spawn(soundProps)

	countdownProps, err := NewCountdownTimerProps(CountdownInput{Total: a.cfg.ReadyCountdown, Tick: a.cfg.ReadyTick})
	if err != nil {
		ctx.Logger().Error("EggGameActor: cannot create ready countdown", "error", err)
		ctx.Stop(ctx.Self())
		return
	}
	a.countdownPID = ctx.Spawn(countdownProps)
	a.broadcastCancel = ctx.Every(a.cfg.BroadcastPeriod, broadcastTick{})
	a.dirty = true

	ctx.Logger().Info("EggGameActor: session started", "session", a.sessionID)
}

// handleReadyFinished starts the round. If the session was paused while the
// last ready tick was in flight, the round starts on resume instead.
func (a *EggGameActor) handleReadyFinished(ctx bollywood.Context) {
	switch {
	case a.phase == PhaseReady:
		a.stopChild(ctx, &a.countdownPID)
		a.readyRemaining = 0
		a.startRound(ctx)
	case a.phase == PhasePaused && a.pausedFrom == PhaseReady:
		a.stopChild(ctx, &a.countdownPID)
		a.readyRemaining = 0
		a.roundPending = true
		a.dirty = true
		ctx.Logger().Debug("EggGameActor: ready finished while paused", "session", a.sessionID)
	}
}

// startRound spawns the round's timers and starts laying eggs.
func (a *EggGameActor) startRound(ctx bollywood.Context) {
	a.roundPending = false
	timerProps, err := NewGameTimerProps(GameTimerInput{Duration: a.cfg.GameDuration, Tick: a.cfg.GameTick})
	if err != nil {
		ctx.Logger().Error("EggGameActor: cannot create game timer", "error", err)
		ctx.Stop(ctx.Self())
		return
	}
	comboProps, err := NewDebounceProps(DebounceInput{Key: comboKey, Delay: a.cfg.ComboWindow})
	if err != nil {
		ctx.Logger().Error("EggGameActor: cannot create combo debounce", "error", err)
		ctx.Stop(ctx.Self())
		return
	}

	a.phase = PhasePlaying
	a.gameTimerPID = ctx.Spawn(timerProps)
	a.comboPID = ctx.Spawn(comboProps)
	a.armLayTimer(ctx)
	a.playSound(ctx, audio.SoundCountdown)
	a.dirty = true

	ctx.Logger().Info("EggGameActor: round started", "session", a.sessionID, "duration", a.cfg.GameDuration)
}

// handleGameOver ends the round and reports the result.
func (a *EggGameActor) handleGameOver(ctx bollywood.Context) {
	if a.phase == PhaseOver {
		return
	}
	a.phase = PhaseOver
	a.gameTimerPID = nil
	a.timeRemaining = 0

	a.stopChild(ctx, &a.layTimerPID)
	a.stopChild(ctx, &a.chefAnimPID)
	a.stopChild(ctx, &a.comboPID)
	for id, pid := range a.eggs {
		ctx.Stop(pid)
		a.scene.Remove(id)
		delete(a.eggs, id)
	}
	if a.combo > a.bestCombo {
		a.bestCombo = a.combo
	}
	a.combo = 0
	a.playSound(ctx, audio.SoundGameOver)

	result := GameOver{SessionID: a.sessionID, Score: a.score, Broken: a.broken, BestCombo: a.bestCombo}
	ctx.Logger().Info("EggGameActor: game over", "session", a.sessionID, "score", a.score, "broken", a.broken, "bestCombo", a.bestCombo)

	a.dirty = true
	a.handleBroadcastTick(ctx)
	for _, sub := range a.subscribers {
		ctx.Send(sub, result)
	}
	ctx.SendParent(result)
}

func (a *EggGameActor) handleStopping(ctx bollywood.Context) {
	if a.broadcastCancel != nil {
		a.broadcastCancel()
		a.broadcastCancel = nil
	}
	ctx.Logger().Info("EggGameActor: stopping", "session", a.sessionID)
}

// handleChildTerminated clears references to children that stopped on their own.
func (a *EggGameActor) handleChildTerminated(ctx bollywood.Context, who *bollywood.PID) {
	switch {
	case who.Equal(a.chefAnimPID):
		a.chefAnimPID = nil
	case who.Equal(a.layTimerPID):
		a.layTimerPID = nil
	case who.Equal(a.countdownPID):
		a.countdownPID = nil
	case who.Equal(a.gameTimerPID):
		a.gameTimerPID = nil
	case who.Equal(a.soundPID):
		a.soundPID = nil
	case who.Equal(a.comboPID):
		a.comboPID = nil
	default:
		for id, pid := range a.eggs {
			if who.Equal(pid) {
				// Stopped without landing.
				a.scene.Remove(id)
				delete(a.eggs, id)
				a.dirty = true
				return
			}
		}
	}
}

func (a *EggGameActor) stopChild(ctx bollywood.Context, pid **bollywood.PID) {
	if *pid != nil {
		ctx.Stop(*pid)
		*pid = nil
	}
}

func (a *EggGameActor) playSound(ctx bollywood.Context, id audio.SoundID) {
	if a.soundPID != nil {
		ctx.Send(a.soundPID, PlaySound{ID: id})
	}
}
