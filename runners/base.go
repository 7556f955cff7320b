package runners

import (
	"context"

	"gitlab.com/BIC_Dev/reaction-role-manager/configs"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/storage"
)

// Runners struct
type Runners struct {
	Discord *discordapi.Client
	Config  *configs.Config
	Storage *storage.Storage
}

// Error struct
type Error struct {
	Message string `json:"message"`
	Err     error  `json:"error"`
}

// Error func
func (e *Error) Error() string {
	return e.Err.Error()
}

// StartRunners func
func (r *Runners) StartRunners() {
	ctx := context.Background()

	if r.Config.Runners.Reconcile.Enabled {
		go r.ReconcileReactions(ctx, r.Config.Runners.Reconcile.Delay)
	}
}
