// Package push defines the external push-notification gateway collaborator.
// Delivery through it is always best-effort; failures are logged by the
// caller and never retried synchronously.
package push

import (
	"context"

	"go.uber.org/zap"
)

// Gateway delivers a push notification to a user's registered devices and
// returns the number of devices that accepted it.
type Gateway interface {
	Send(ctx context.Context, userID int64, title, body string, data map[string]string) (int, error)
}

// LogGateway is the stand-in gateway used when no mobile/desktop push
// provider is configured. It records the hand-off and delivers to zero
// devices.
type LogGateway struct {
	logger *zap.Logger
}

// NewLogGateway creates a gateway that only logs hand-offs.
func NewLogGateway(logger *zap.Logger) *LogGateway {
	return &LogGateway{logger: logger.Named("push_gateway")}
}

// Send implements Gateway.
func (g *LogGateway) Send(
	_ context.Context, userID int64, title, body string, _ map[string]string,
) (int, error) {
	g.logger.Debug("Push notification hand-off",
		zap.Int64("userID", userID),
		zap.String("title", title),
		zap.String("body", body))

	return 0, nil
}
