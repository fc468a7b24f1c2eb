package handler

import (
	"relaychat/internal/app/chat"
	"relaychat/internal/configs"
)

// AppDeps bundles what the HTTP layer needs from the rest of the relay.
type AppDeps struct {
	Coordinator *chat.Coordinator
	Config      *configs.AppConfig
}
