package handler

import (
	"plaza/internal/app/room"
	"plaza/internal/configs"
)

// AppDeps bundles the dependencies shared by all HTTP handlers.
type AppDeps struct {
	Room   *room.Service
	Config *configs.AppConfig
}
