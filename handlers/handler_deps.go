package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"certcraft/api-gateway/internal/generate"
	"certcraft/api-gateway/internal/store"
)

// ApplicationHandler holds the shared dependencies for all handlers. The
// application root constructs it once and registers its methods as routes;
// nothing here is a package-level singleton.
type ApplicationHandler struct {
	Logger   *logrus.Logger
	Store    store.Gateway
	Sessions *generate.Manager
	Validate *validator.Validate
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(log *logrus.Logger, gateway store.Gateway) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:   log,
		Store:    gateway,
		Sessions: generate.NewManager(),
		Validate: validator.New(),
	}
}
