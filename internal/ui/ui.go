// Package ui provides the main entry point for the UI.
package ui

import (
	"github.com/boneekim/Dalmuni-game/internal/config"
	"github.com/boneekim/Dalmuni-game/internal/storage"
	"github.com/boneekim/Dalmuni-game/internal/ui/input"
	"github.com/boneekim/Dalmuni-game/internal/ui/model"
	"github.com/boneekim/Dalmuni-game/internal/ui/view"
)

// NewModel creates the root model for a local game with its view and
// keyboard handling wired in.
func NewModel(cfg *config.Config, recorder storage.Recorder, player model.SoundPlayer) *model.AppModel {
	m := model.NewAppModel(cfg, recorder, player)
	m.SetViewRenderer(view.CreateViewRenderer())
	m.SetKeyHandler(input.HandleKeyPress)
	return m
}
