package worker

import (
	"context"

	"github.com/spec-kit/portfolio-backend/internal/service"
)

// StartNotificationWorker registers notification handlers and starts
// delivering queued alerts until ctx is cancelled.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	go notificationService.Run(ctx)
}
