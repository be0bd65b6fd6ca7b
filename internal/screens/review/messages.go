package review

import (
	"github.com/kokostudy/koko/internal/rewards"
	sess "github.com/kokostudy/koko/internal/session"
)

// dueLoadedMsg carries the controller built from today's due set.
type dueLoadedMsg struct {
	Ctrl *sess.Controller
	Err  error
}

// ratedMsg reports the outcome of a rating write-back.
type ratedMsg struct {
	Result sess.Result
	Awards []rewards.Award
	Err    error
}

// finishedMsg carries everything the summary screen shows.
type finishedMsg struct {
	Summary *sess.Summary
	Awards  []rewards.Award
	Mood    rewards.Mood
}
