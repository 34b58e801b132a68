package handlers

import (
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/state"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handlers serves slash commands and the text steps of dialogs
type Handlers struct {
	deps         *callbacktypes.Handler
	stateManager *state.Manager
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewHandlers shares the callback dependencies so commands render the same screens
func NewHandlers(
	deps *callbacktypes.Handler,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		deps:         deps,
		stateManager: stateManager,
		validate:     validator.New(),
		logger:       logger,
	}
}
