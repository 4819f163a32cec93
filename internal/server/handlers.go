package server

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/ascii-chess-go/internal/output"
)

type handlers struct {
	manager *Manager
}

type createRequest struct {
	FEN       string `json:"fen"`
	ArchiveID string `json:"archiveId"`
}

type moveRequest struct {
	Move string `json:"move"`
}

func (h *handlers) createGame(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
	}

	var (
		snap *output.JSONGame
		err  error
	)
	if req.ArchiveID != "" {
		snap, err = h.manager.Restore(req.ArchiveID)
	} else {
		snap, err = h.manager.Create(strings.TrimSpace(req.FEN))
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

func (h *handlers) getGame(c *fiber.Ctx) error {
	snap, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

func (h *handlers) playMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(req.Move) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing move")
	}

	snap, err := h.manager.Play(c.Params("id"), req.Move)
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

func (h *handlers) archiveGame(c *fiber.Ctx) error {
	id, err := h.manager.Archive(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id})
}

func (h *handlers) listArchive(c *fiber.Ctx) error {
	games, err := h.manager.Archived()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"games": games})
}

func (h *handlers) deleteGame(c *fiber.Ctx) error {
	if err := h.manager.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) deleteArchived(c *fiber.Ctx) error {
	if err := h.manager.DeleteArchived(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// requireUpgrade rejects plain HTTP requests to websocket routes.
func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// watchGame streams session snapshots over a websocket. Text messages of
// the form {"move":"e4"} are played on the session; the resulting
// snapshot reaches every watcher, and a rejected move is answered with
// {"error": ..., "status": ...} on this connection only.
func (h *handlers) watchGame(conn *websocket.Conn) {
	id := conn.Params("id")
	updates, stop, err := h.manager.Watch(id)
	if err != nil {
		conn.WriteJSON(fiber.Map{"error": err.Error(), "status": statusFor(err)}) //nolint:errcheck // connection is closing
		return
	}

	var writeMu sync.Mutex
	send := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for snap := range updates {
			if err := send(snap); err != nil {
				return
			}
		}
		// Session deleted: unblock the read loop.
		conn.Close()
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		var req moveRequest
		if err := json.Unmarshal(data, &req); err != nil || strings.TrimSpace(req.Move) == "" {
			send(fiber.Map{"error": "expected {\"move\": ...}", "status": fiber.StatusBadRequest}) //nolint:errcheck // reported by the next read
			continue
		}
		if _, err := h.manager.Play(id, req.Move); err != nil {
			send(fiber.Map{"error": err.Error(), "status": statusFor(err)}) //nolint:errcheck // reported by the next read
		}
	}

	stop()
	<-done
}
