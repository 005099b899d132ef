// Package notify publishes volunteer-facing events to Kafka. Delivery is
// best-effort: registration outcomes never depend on the broker.
package notify

import (
	"context"
	"time"

	"festivol/pkg/kafka"
	"festivol/pkg/logger"
	"festivol/pkg/model"
)

const (
	EventRegistrationConfirmed = "registration.confirmed"
	EventRegistrationCancelled = "registration.cancelled"
	EventMissionCancelled      = "mission.cancelled"
	EventAssignmentMoved       = "assignment.moved"

	eventSource = "missions-service"
)

type Notifier interface {
	RegistrationConfirmed(missionID, volunteerID string, mission *model.Mission)
	RegistrationCancelled(missionID, volunteerID string)
	MissionCancelled(mission *model.Mission)
	AssignmentMoved(sourceID, targetID, volunteerID string)
	Close() error
}

type registrationEvent struct {
	MissionID   string     `json:"mission_id"`
	VolunteerID string     `json:"volunteer_id,omitempty"`
	Title       string     `json:"title,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

type moveEvent struct {
	SourceMissionID string    `json:"source_mission_id"`
	TargetMissionID string    `json:"target_mission_id"`
	VolunteerID     string    `json:"volunteer_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type kafkaNotifier struct {
	producer *kafka.Producer
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaNotifier(producer *kafka.Producer, timeout time.Duration, log *logger.Logger) Notifier {
	return &kafkaNotifier{producer: producer, timeout: timeout, log: log}
}

func (n *kafkaNotifier) RegistrationConfirmed(missionID, volunteerID string, mission *model.Mission) {
	event := registrationEvent{
		MissionID:   missionID,
		VolunteerID: volunteerID,
		OccurredAt:  time.Now().UTC(),
	}
	if mission != nil {
		event.Title = mission.Title
		event.StartTime = mission.StartTime
	}
	n.publish(missionID, EventRegistrationConfirmed, event)
}

func (n *kafkaNotifier) RegistrationCancelled(missionID, volunteerID string) {
	n.publish(missionID, EventRegistrationCancelled, registrationEvent{
		MissionID:   missionID,
		VolunteerID: volunteerID,
		OccurredAt:  time.Now().UTC(),
	})
}

func (n *kafkaNotifier) MissionCancelled(mission *model.Mission) {
	n.publish(mission.ID, EventMissionCancelled, registrationEvent{
		MissionID:  mission.ID,
		Title:      mission.Title,
		StartTime:  mission.StartTime,
		OccurredAt: time.Now().UTC(),
	})
}

func (n *kafkaNotifier) AssignmentMoved(sourceID, targetID, volunteerID string) {
	n.publish(targetID, EventAssignmentMoved, moveEvent{
		SourceMissionID: sourceID,
		TargetMissionID: targetID,
		VolunteerID:     volunteerID,
		OccurredAt:      time.Now().UTC(),
	})
}

// publish runs in its own goroutine with a background context so a slow
// broker never holds the caller's request open.
func (n *kafkaNotifier) publish(key, eventType string, payload any) {
	msg, err := kafka.NewMessage(key, eventType, eventSource, payload)
	if err != nil {
		n.log.Error("Failed to encode notification event", "event_type", eventType, "error", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.producer.Publish(ctx, msg); err != nil {
			n.log.Error("Failed to publish notification event",
				"event_type", eventType,
				"event_id", msg.EventID(),
				"key", key,
				"error", err,
			)
		}
	}()
}

func (n *kafkaNotifier) Close() error {
	return n.producer.Close()
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) RegistrationConfirmed(string, string, *model.Mission) {}
func (NopNotifier) RegistrationCancelled(string, string)                 {}
func (NopNotifier) MissionCancelled(*model.Mission)                      {}
func (NopNotifier) AssignmentMoved(string, string, string)               {}
func (NopNotifier) Close() error                                         { return nil }
