package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bmarinov/gym_go_server/internal/pkg/drive"
	"github.com/bmarinov/gym_go_server/internal/pkg/response"
	"github.com/bmarinov/gym_go_server/internal/service"
)

type BackupHandler struct {
	backupService *service.BackupService
}

func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Status reports provider and authentication state
// GET /api/v1/backup/status
func (h *BackupHandler) Status(c *gin.Context) {
	response.Success(c, h.backupService.Status())
}

// Auth starts the Drive OAuth flow; returns the URL to open in a browser
// POST /api/v1/backup/auth
func (h *BackupHandler) Auth(c *gin.Context) {
	authURL, err := h.backupService.Authenticate(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDriveNotConfigured):
			response.ParamError(c, err.Error())
		case errors.Is(err, drive.ErrAuthInProgress):
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, gin.H{"authUrl": authURL})
}

// Run triggers a backup immediately
// POST /api/v1/backup/run
func (h *BackupHandler) Run(c *gin.Context) {
	result, err := h.backupService.RunBackup(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBackupUnsupported),
			errors.Is(err, service.ErrDriveNotConfigured),
			errors.Is(err, service.ErrDriveNotAuthenticated):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, err.Error())
		}
		return
	}

	response.Success(c, result)
}
