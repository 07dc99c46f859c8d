// Package worker starts background consumers.
package worker

import (
	"context"

	"github.com/travault/crm-service/internal/events"
	"github.com/travault/crm-service/internal/service"
)

// runnable is implemented by dispatchers that consume from an external
// queue, such as the Redis-backed one.
type runnable interface {
	Run(ctx context.Context)
}

// StartNotificationWorker registers notification handlers and, when
// the dispatcher is queue-backed, starts its consumer loop.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, notificationService *service.NotificationService) {
	if notificationService == nil || dispatcher == nil {
		return
	}
	notificationService.RegisterHandlers(dispatcher)
	if consumer, ok := dispatcher.(runnable); ok {
		go consumer.Run(ctx)
	}
}
