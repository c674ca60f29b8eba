//go:generate swag init --dir ../.. --generalInfo cmd/server/main.go --output ../../docs --outputTypes go --exclude ../../_examples

package main

import (
	"go.uber.org/fx"

	"github.com/infernalwolves/clan-dashboard/internal/app"
)

// @title                       Clan Dashboard API
// @version                     1.0
// @description                 Team rosters, clan statistics and officer authentication for the clan dashboard.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	fx.New(
		app.Module,
		fx.Invoke(app.RunServer),
	).Run()
}
