// Package command is the request/response channel external collaborators use
// to drive the annotation engine.
package command

import (
	"errors"

	"LocalAnnotate/internal/engine"
	"LocalAnnotate/internal/state"
)

// Request types.
const (
	TypeCycleMode     = "cycleMode"
	TypeSetMode       = "setMode"
	TypeGetState      = "getState"
	TypeSetColor      = "setColor"
	TypeSetSize       = "setSize"
	TypeSetTool       = "setTool"
	TypeUndo          = "undo"
	TypeClear         = "clear"
	TypeToggleToolbar = "toggleToolbar"
)

// ErrUnknownType is returned by Validate for request types the channel does
// not handle.
var ErrUnknownType = errors.New("command: unknown request type")

// Request is an inbound message. ID is optional and echoed in the response.
type Request struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type"`
	Mode  string `json:"mode,omitempty"`
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
	Tool  string `json:"tool,omitempty"`
}

// Response describes the state after a handled request. Only the fields
// relevant to the request type are set.
type Response struct {
	ID    string `json:"id,omitempty"`
	Mode  string `json:"mode,omitempty"`
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
	Tool  string `json:"tool,omitempty"`
	OK    bool   `json:"ok,omitempty"`
}

// Validate reports whether the request type is one the channel handles.
func (r Request) Validate() error {
	switch r.Type {
	case TypeCycleMode, TypeSetMode, TypeGetState, TypeSetColor, TypeSetSize,
		TypeSetTool, TypeUndo, TypeClear, TypeToggleToolbar:
		return nil
	}
	return ErrUnknownType
}

// Channel dispatches requests to an engine. Handle must run on the engine's
// goroutine.
type Channel struct {
	engine *engine.Engine
}

func NewChannel(e *engine.Engine) *Channel {
	return &Channel{engine: e}
}

// Handle applies req and returns the response. ok is false for unknown
// request types, which get no response. Invalid field values leave the
// engine unchanged and the response carries the current value.
func (c *Channel) Handle(req Request) (resp Response, ok bool) {
	e := c.engine
	switch req.Type {
	case TypeCycleMode:
		e.CycleMode()
		resp.Mode = e.Mode().String()
	case TypeSetMode:
		if m, valid := state.ParseMode(req.Mode); valid {
			e.SetMode(m)
		}
		resp.Mode = e.Mode().String()
	case TypeGetState:
		resp.Mode = e.Mode().String()
		resp.Color = e.Color().String()
		resp.Size = e.Size()
		resp.Tool = e.Tool().String()
	case TypeSetColor:
		if col, err := state.ParseColor(req.Color); err == nil {
			e.SetColor(col)
		}
		resp.Color = e.Color().String()
	case TypeSetSize:
		if req.Size > 0 {
			e.SetSize(req.Size)
		}
		resp.Size = e.Size()
	case TypeSetTool:
		if t, valid := state.ParseTool(req.Tool); valid {
			e.SetTool(t)
		}
		resp.Tool = e.Tool().String()
	case TypeUndo:
		e.Undo()
		resp.OK = true
	case TypeClear:
		e.Clear()
		resp.OK = true
	case TypeToggleToolbar:
		e.ToggleToolbar()
		resp.OK = true
	default:
		return Response{}, false
	}
	resp.ID = req.ID
	return resp, true
}
