/*
Package handler provides the HTTP handlers for the presence room API.

This file implements the four room operations: position write, position
read, message write, and message read. Identity is mandatory for writes;
reads also require identity so only authenticated members can observe the
room.
*/
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"plaza/internal/app/arena"
	"plaza/internal/app/room"
	"plaza/internal/pkg/auth/jwt"
	"plaza/internal/pkg/errs"
	"plaza/internal/pkg/req"
	"plaza/internal/pkg/resp"
)

// identity resolves the request's member identity, or nil when anonymous.
func identity(r *http.Request) *room.Identity {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return nil
	}

	return &room.Identity{
		ID:          payload.ID,
		DisplayName: payload.DisplayName,
		Nickname:    payload.Nickname,
	}
}

type ReportPositionInput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandleReportPosition upserts the caller's position. Out-of-bounds
// coordinates come back clamped in the response, so a drifting client can
// resynchronize its local position.
func HandleReportPosition(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := identity(r)
		if id == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input ReportPositionInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		rec, err := deps.Room.ReportPosition(*id, arena.Point{X: input.X, Y: input.Y})
		if err != nil {
			if errors.Is(err, room.ErrPositionInvalid) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPositionInvalid))
				return
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, r, rec)
	}
}

// HandleListPositions returns the current position of every member.
func HandleListPositions(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity(r) == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		data := map[string]any{
			"positions": deps.Room.Positions(),
		}
		resp.RespondSuccess(w, r, data)
	}
}

type SendMessageInput struct {
	Text string `json:"text"`
}

// HandleSendMessage appends a chat message from the caller. A
// whitespace-only text succeeds with no message created; a send during the
// cooldown window is rejected with the remaining wait in the payload.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := identity(r)
		if id == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input SendMessageInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		msg, err := deps.Room.Send(*id, input.Text)
		if err != nil {
			switch {
			case errors.Is(err, room.ErrCooldownActive):
				remaining := deps.Room.CooldownRemaining(id.ID)
				res := resp.JSONResponse{
					Code:    errs.ErrCooldownActive,
					Message: errs.NewError(errs.ErrCooldownActive).Message,
					Data:    map[string]any{"remainingMs": remaining.Milliseconds()},
				}
				resp.RespondJSON(w, r, http.StatusTooManyRequests, res)
			case errors.Is(err, room.ErrMessageTooLong):
				resp.RespondError(w, r, errs.NewError(errs.ErrMessageTooLong))
			default:
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			}
			return
		}

		data := map[string]any{
			"message": msg,
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandleListMessages returns the message log, CreatedAt ascending. The
// optional ?since=<unix ms> parameter restricts the read to newer
// messages; without it the whole log is returned, which is what the
// polling client fetches each tick.
func HandleListMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity(r) == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var cutoff time.Time
		if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
			sinceMs, err := strconv.ParseInt(sinceStr, 10, 64)
			if err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
			cutoff = time.UnixMilli(sinceMs)
		}

		data := map[string]any{
			"messages": deps.Room.Messages(cutoff),
		}
		resp.RespondSuccess(w, r, data)
	}
}
