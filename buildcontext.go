package xtree

import (
	"fmt"
	"time"
)

// LogCategory classifies a BuildContext log entry.
type LogCategory int

// Log categories, mirroring the progress/warning/error split every
// logging-capable build stage in this module uses.
const (
	LogProgress LogCategory = 1 + iota
	LogWarning
	LogError
)

const maxLogMessages = 1000

// TimerLabel identifies one phase of Render that BuildContext can time.
type TimerLabel int

// Render's timed phases.
const (
	TimerSubdivide TimerLabel = iota
	TimerFinalize
	TimerWalk
	TimerTotal

	numTimers
)

func (l TimerLabel) String() string {
	switch l {
	case TimerSubdivide:
		return "subdivide"
	case TimerFinalize:
		return "finalize"
	case TimerWalk:
		return "walk"
	case TimerTotal:
		return "total"
	default:
		return "unknown"
	}
}

// BuildContext carries logging and performance timers through a Render
// call. The zero value works; use NewBuildContext to control whether
// logging/timing is enabled up front.
type BuildContext struct {
	logEnabled   bool
	timerEnabled bool

	startTime [numTimers]time.Time
	accTime   [numTimers]time.Duration

	messages    []string
	numMessages int
}

// NewBuildContext returns a BuildContext with logging and timers enabled
// or disabled together, per state.
func NewBuildContext(state bool) *BuildContext {
	return &BuildContext{logEnabled: state, timerEnabled: state}
}

// EnableLog enables or disables logging.
func (ctx *BuildContext) EnableLog(state bool) { ctx.logEnabled = state }

// EnableTimer enables or disables the performance timers.
func (ctx *BuildContext) EnableTimer(state bool) { ctx.timerEnabled = state }

// ResetLog clears all log entries.
func (ctx *BuildContext) ResetLog() {
	if ctx.logEnabled {
		ctx.numMessages = 0
		ctx.messages = ctx.messages[:0]
	}
}

// ResetTimers clears all performance timers.
func (ctx *BuildContext) ResetTimers() {
	if ctx.timerEnabled {
		for i := range ctx.accTime {
			ctx.accTime[i] = 0
		}
	}
}

// Log records a formatted message under category, if logging is enabled.
func (ctx *BuildContext) Log(category LogCategory, format string, v ...interface{}) {
	if !ctx.logEnabled || ctx.numMessages >= maxLogMessages {
		return
	}
	var prefix string
	switch category {
	case LogProgress:
		prefix = "PROG "
	case LogWarning:
		prefix = "WARN "
	case LogError:
		prefix = "ERR "
	}
	ctx.messages = append(ctx.messages, prefix+fmt.Sprintf(format, v...))
	ctx.numMessages++
}

// Progressf logs a progress message.
func (ctx *BuildContext) Progressf(format string, v ...interface{}) {
	ctx.Log(LogProgress, format, v...)
}

// Warningf logs a warning message.
func (ctx *BuildContext) Warningf(format string, v ...interface{}) {
	ctx.Log(LogWarning, format, v...)
}

// Errorf logs an error message.
func (ctx *BuildContext) Errorf(format string, v ...interface{}) {
	ctx.Log(LogError, format, v...)
}

// DumpLog prints header then every recorded message to stdout.
func (ctx *BuildContext) DumpLog(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
	for _, msg := range ctx.messages {
		fmt.Println(msg)
	}
}

// LogCount returns the number of recorded log messages.
func (ctx *BuildContext) LogCount() int { return ctx.numMessages }

// StartTimer starts the timer for label, if timers are enabled.
func (ctx *BuildContext) StartTimer(label TimerLabel) {
	if ctx.timerEnabled {
		ctx.startTime[label] = time.Now()
	}
}

// StopTimer stops the timer for label and accumulates the elapsed time.
func (ctx *BuildContext) StopTimer(label TimerLabel) {
	if !ctx.timerEnabled {
		return
	}
	ctx.accTime[label] += time.Since(ctx.startTime[label])
}

// AccumulatedTime returns the total time recorded for label, or 0 if
// timers are disabled.
func (ctx *BuildContext) AccumulatedTime(label TimerLabel) time.Duration {
	if !ctx.timerEnabled {
		return 0
	}
	return ctx.accTime[label]
}

// merge folds another BuildContext's timers and log messages into ctx.
// Used to combine the per-worker BuildContexts a parallel Render spawns
// back into the caller's one, after the worker goroutines have joined --
// never call this while other goroutines may still touch other.
func (ctx *BuildContext) merge(other *BuildContext) {
	for i := range ctx.accTime {
		ctx.accTime[i] += other.accTime[i]
	}
	for _, msg := range other.messages {
		if ctx.numMessages >= maxLogMessages {
			break
		}
		ctx.messages = append(ctx.messages, msg)
		ctx.numMessages++
	}
}
