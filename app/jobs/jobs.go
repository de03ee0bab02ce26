// Package jobs defines the background jobs dispatched through pkg/queue.
package jobs

import "github.com/pawmart/pawmart/pkg/queue"

// RegisterAll makes every job type known to the queue for deserialization.
// Call once at boot.
func RegisterAll() {
	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
	queue.Register("*jobs.AppointmentReminderJob", func() queue.Job { return &AppointmentReminderJob{} })
}
