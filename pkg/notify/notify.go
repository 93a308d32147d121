package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/trailwatch/trailwatch/pkg/structs"
)

// Notifier delivers an alert to one outbound channel.
type Notifier interface {
	Send(ctx context.Context, a *structs.Alert) error
}

// Multi fans an alert out to every notifier. A failing notifier does
// not stop delivery to the others.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, a *structs.Alert) error {
	errs := []string{}

	for _, n := range m {
		if err := n.Send(ctx, a); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %s", strings.Join(errs, "; "))
	}

	return nil
}

var severityColors = map[string]string{
	"info":     "#439FE0",
	"warning":  "#FFA500",
	"critical": "#FF0000",
}

func severityColor(severity string) string {
	if c, ok := severityColors[severity]; ok {
		return c
	}
	return severityColors["info"]
}
