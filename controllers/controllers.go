package controllers

import (
	"github.com/akhil-8601/JobNest/auth"
	"github.com/akhil-8601/JobNest/config"
)

var (
	appConfig  *config.Config
	sessionSvc *auth.SessionService
)

// Init wires the controllers to the application config and the auth core.
// Called once from main before the router is set up.
func Init(cfg *config.Config, session *auth.SessionService) {
	appConfig = cfg
	sessionSvc = session
}
