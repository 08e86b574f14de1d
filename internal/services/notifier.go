package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/clique77/job-portal-sub001/internal/domain/events"
	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/clique77/job-portal-sub001/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const lookupTimeout = 5 * time.Second

// Notifier turns domain events into outbound notices and metrics. Delivery
// itself happens outside this process; here the notice is only logged.
type Notifier struct {
	users userLookup
}

func NewNotifier(bus EventBus.Bus, users userLookup) (*Notifier, error) {
	if bus == nil || users == nil {
		return nil, errors.New("notifier requires bus and users")
	}

	n := &Notifier{users: users}

	subscriptions := map[string]any{
		events.ApplicationSubmittedTopic:     n.onApplicationSubmitted,
		events.ApplicationStatusChangedTopic: n.onApplicationStatusChanged,
		events.ApplicationWithdrawnTopic:     n.onApplicationWithdrawn,
		events.CompanyCreatedTopic:           n.onCompanyCreated,
	}
	for topic, handler := range subscriptions {
		if err := bus.Subscribe(topic, handler); err != nil {
			return nil, errors.Wrapf(err, "failed to subscribe to %s", topic)
		}
	}

	return n, nil
}

func (n *Notifier) onApplicationSubmitted(event events.ApplicationSubmitted) {
	metrics.ApplicationEvents.WithLabelValues("submitted").Inc()
	n.notify(event.EmployerID, "new application for %q", event.JobTitle)
}

func (n *Notifier) onApplicationStatusChanged(event events.ApplicationStatusChanged) {
	metrics.ApplicationEvents.WithLabelValues("status_changed").Inc()
	metrics.StatusTransitions.WithLabelValues(string(event.From), string(event.To)).Inc()
	n.notify(event.ApplicantID, "your application for %q is now %s", event.JobTitle, event.To)
}

func (n *Notifier) onApplicationWithdrawn(event events.ApplicationWithdrawn) {
	metrics.ApplicationEvents.WithLabelValues("withdrawn").Inc()
	log.Infof("application of %s to job %s withdrawn from %s", event.ApplicantID, event.JobID, event.Status)
}

func (n *Notifier) onCompanyCreated(event events.CompanyCreated) {
	n.notify(event.OwnerID, "company %q created, you are its owner", event.Name)
}

func (n *Notifier) notify(userID string, format string, args ...any) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	user, err := n.users.GetByID(ctx, userID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeEvent).Errorf("can't resolve recipient %s: %v", userID, err)
		return
	}

	log.WithField("recipient", user.Email).Infof(format, args...)
}
