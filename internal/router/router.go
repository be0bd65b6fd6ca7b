// Package router keeps the stack of screens the app navigates through.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/kokostudy/koko/internal/screen"
)

// PushScreenMsg opens Screen on top of the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the active screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen for Screen. A finished review
// is replaced by its summary so that going back lands on home.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a stack of screens. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the active screen. The screen underneath is resumed if it
// implements screen.Resumer.
func (r *Router) Pop() tea.Cmd {
	n := len(r.stack)
	if n < 2 {
		return nil
	}
	r.stack[n-1] = nil
	r.stack = r.stack[:n-1]

	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace swaps the active screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Breadcrumb joins the titles on the stack, bottom first, skipping
// screens without one.
func (r *Router) Breadcrumb() string {
	titles := make([]string, 0, len(r.stack))
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return strings.Join(titles, " › ")
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	top := len(r.stack) - 1
	if top < 0 {
		return nil
	}
	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}

// Pop, Push and Replace below wrap the navigation messages as commands
// for screens to return.

func Pop() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}
