package service

import (
	"context"
	"time"

	"conference-central/config"
	"conference-central/database"
	"conference-central/errors"
	"conference-central/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const workshopSessionType = "Workshop"
const lateSessionStart = "19:00:00"

type SessionInput struct {
	Name          string `json:"name"`
	Highlights    string `json:"highlights"`
	Speaker       string `json:"speaker"`
	Duration      int    `json:"duration"`
	TypeOfSession string `json:"type_of_session"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
}

// CreateSession adds a session under a conference. Only the organizer may
// create sessions, and the session date must fall inside the conference date
// range, boundaries included. A speaker reaching a second session triggers
// the deferred featured-speaker rebuild.
func (s *Service) CreateSession(ctx context.Context, userId, confKey string, input SessionInput) (*model.Session, error) {
	confId, err := primitive.ObjectIDFromHex(confKey)
	if err != nil {
		return nil, errors.NotFound("no conference found with key: %v", confKey)
	}
	conf, err := s.store.GetConference(ctx, confId)
	if err != nil {
		return nil, err
	}
	if conf == nil {
		return nil, errors.NotFound("no conference found with key: %v", confKey)
	}
	if conf.OrganizerId != userId {
		return nil, errors.Unauthorized("only the organizer of this event may create a new session")
	}

	if input.Name == "" {
		return nil, errors.BadRequest("session 'name' field required")
	}
	if err := validateSessionDate(input.Date, conf); err != nil {
		return nil, err
	}
	if input.StartTime != "" {
		if _, err := time.Parse(config.TIME_LAYOUT, input.StartTime); err != nil {
			return nil, errors.BadRequest("unacceptable session start time: %v", err)
		}
	}

	priorBySpeaker := int64(0)
	if input.Speaker != "" {
		q := database.Query{}.WithFilter(model.SessionFieldSpeaker, database.OpEq, input.Speaker)
		priorBySpeaker, err = s.store.CountSessions(ctx, q)
		if err != nil {
			return nil, err
		}
	}

	sess := &model.Session{
		Id:            primitive.NewObjectID(),
		ConferenceId:  conf.Id,
		Name:          input.Name,
		Highlights:    input.Highlights,
		Speaker:       input.Speaker,
		Duration:      input.Duration,
		TypeOfSession: input.TypeOfSession,
		Date:          input.Date,
		StartTime:     input.StartTime,
	}
	if err := s.store.PutSession(ctx, sess); err != nil {
		return nil, err
	}

	if priorBySpeaker >= 1 {
		s.queue.Enqueue(TaskRebuildFeaturedSpeaker, map[string]string{"speaker": input.Speaker})
	}
	return sess, nil
}

func validateSessionDate(date string, conf *model.Conference) error {
	if date == "" {
		return errors.BadRequest("session 'date' field required")
	}
	parsed, err := time.Parse(config.DATE_LAYOUT, date)
	if err != nil {
		return errors.BadRequest("unacceptable session date: %v", err)
	}
	if conf.StartDate == "" || conf.EndDate == "" {
		return errors.BadRequest("conference has no date range to schedule sessions in")
	}
	start, err := time.Parse(config.DATE_LAYOUT, conf.StartDate)
	if err != nil {
		return errors.BadRequest("conference start date is unreadable: %v", err)
	}
	end, err := time.Parse(config.DATE_LAYOUT, conf.EndDate)
	if err != nil {
		return errors.BadRequest("conference end date is unreadable: %v", err)
	}
	if parsed.Before(start) || parsed.After(end) {
		return errors.BadRequest("session can only exist between conference start and end dates")
	}
	return nil
}

// ConferenceSessions lists a conference's sessions.
func (s *Service) ConferenceSessions(ctx context.Context, confKey string) ([]model.Session, error) {
	confId, err := primitive.ObjectIDFromHex(confKey)
	if err != nil {
		return nil, errors.NotFound("no conference found with key: %v", confKey)
	}
	conf, err := s.store.GetConference(ctx, confId)
	if err != nil {
		return nil, err
	}
	if conf == nil {
		return nil, errors.NotFound("no conference found with key: %v", confKey)
	}

	q := database.Query{Sort: []string{model.SessionFieldName}}.
		WithFilter(model.SessionFieldConferenceId, database.OpEq, confId)
	return s.fetchSessions(ctx, q, "no sessions found for conference key: %v", confKey)
}

// ConferenceSessionsByType lists a conference's sessions of one type.
func (s *Service) ConferenceSessionsByType(ctx context.Context, confKey, sessionType string) ([]model.Session, error) {
	confId, err := primitive.ObjectIDFromHex(confKey)
	if err != nil {
		return nil, errors.NotFound("no conference found with key: %v", confKey)
	}
	conf, err := s.store.GetConference(ctx, confId)
	if err != nil {
		return nil, err
	}
	if conf == nil {
		return nil, errors.NotFound("no conference found with key: %v", confKey)
	}

	q := database.Query{Sort: []string{model.SessionFieldName}}.
		WithFilter(model.SessionFieldConferenceId, database.OpEq, confId).
		WithFilter(model.SessionFieldTypeOfSession, database.OpEq, sessionType)
	return s.fetchSessions(ctx, q, "no %v sessions found for conference key: %v", sessionType, confKey)
}

// SessionsBySpeaker lists a speaker's sessions across all conferences.
func (s *Service) SessionsBySpeaker(ctx context.Context, speaker string) ([]model.Session, error) {
	q := database.Query{Sort: []string{model.SessionFieldName}}.
		WithFilter(model.SessionFieldSpeaker, database.OpEq, speaker)
	return s.fetchSessions(ctx, q, "no sessions found for speaker: %v", speaker)
}

// SessionsByName lists sessions matching a name across all conferences.
func (s *Service) SessionsByName(ctx context.Context, name string) ([]model.Session, error) {
	q := database.Query{Sort: []string{model.SessionFieldDate}}.
		WithFilter(model.SessionFieldName, database.OpEq, name)
	return s.fetchSessions(ctx, q, "no sessions found with name: %v", name)
}

// SessionsStartingFrom lists sessions on or after the given date.
func (s *Service) SessionsStartingFrom(ctx context.Context, date string) ([]model.Session, error) {
	if _, err := time.Parse(config.DATE_LAYOUT, date); err != nil {
		return nil, errors.BadRequest("unacceptable date: %v", err)
	}
	q := database.Query{Sort: []string{model.SessionFieldDate, model.SessionFieldName}}.
		WithFilter(model.SessionFieldDate, database.OpGtEq, date)
	return s.fetchSessions(ctx, q, "no sessions found on or after: %v", date)
}

// EarlyNonWorkshopSessions lists sessions starting before 19:00 that are not
// workshops. The store takes the start-time inequality; the session-type
// exclusion is a second inequality the store cannot compose, so it is
// applied here over the fetched set.
func (s *Service) EarlyNonWorkshopSessions(ctx context.Context) ([]model.Session, error) {
	q := database.Query{Sort: []string{model.SessionFieldStartTime, model.SessionFieldName}}.
		WithFilter(model.SessionFieldStartTime, database.OpLt, lateSessionStart)
	sessions, err := s.store.QuerySessions(ctx, q)
	if err != nil {
		return nil, err
	}

	kept := []model.Session{}
	for _, sess := range sessions {
		if sess.TypeOfSession != workshopSessionType {
			kept = append(kept, sess)
		}
	}
	if len(kept) == 0 && s.cfg.EmptyQueryIsError {
		return nil, errors.NotFound("no early non-workshop sessions found")
	}
	return kept, nil
}

func (s *Service) fetchSessions(ctx context.Context, q database.Query, emptyMsg string, args ...interface{}) ([]model.Session, error) {
	sessions, err := s.store.QuerySessions(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 && s.cfg.EmptyQueryIsError {
		return nil, errors.NotFound(emptyMsg, args...)
	}
	return sessions, nil
}
