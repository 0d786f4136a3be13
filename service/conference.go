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

var conferenceDefaults = model.Conference{
	City:   "Default City",
	Topics: []string{"Default", "Topic"},
}

// ConferenceInput carries the client-settable conference fields. Dates use
// the "2006-01-02" layout.
type ConferenceInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Topics       []string `json:"topics"`
	City         string   `json:"city"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// ConferenceView is a conference plus its organizer's display name.
type ConferenceView struct {
	model.Conference     `bson:",inline"`
	OrganizerDisplayName string `json:"organizer_display_name"`
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(config.DATE_LAYOUT, value)
}

// CreateConference creates a conference owned by the caller. Seats start out
// equal to maxAttendees and month derives from the start date.
func (s *Service) CreateConference(ctx context.Context, userId string, input ConferenceInput) (*model.Conference, error) {
	if input.Name == "" {
		return nil, errors.BadRequest("conference 'name' field required")
	}

	conf := &model.Conference{
		Id:           primitive.NewObjectID(),
		Name:         input.Name,
		Description:  input.Description,
		OrganizerId:  userId,
		Topics:       input.Topics,
		City:         input.City,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		MaxAttendees: input.MaxAttendees,
	}
	if conf.City == "" {
		conf.City = conferenceDefaults.City
	}
	if len(conf.Topics) == 0 {
		conf.Topics = append([]string{}, conferenceDefaults.Topics...)
	}

	if conf.StartDate != "" {
		start, err := parseDate(conf.StartDate)
		if err != nil {
			return nil, errors.BadRequest("unacceptable start date: %v", err)
		}
		conf.Month = int(start.Month())
	}
	if conf.EndDate != "" {
		if _, err := parseDate(conf.EndDate); err != nil {
			return nil, errors.BadRequest("unacceptable end date: %v", err)
		}
	}
	if conf.MaxAttendees < 0 {
		return nil, errors.BadRequest("maximum attendees cannot be negative")
	}
	conf.SeatsAvailable = conf.MaxAttendees

	prof, err := s.getOrCreateProfile(ctx, userId)
	if err != nil {
		return nil, err
	}

	if err := s.store.PutConference(ctx, conf); err != nil {
		return nil, err
	}

	s.queue.Enqueue(TaskSendConfirmationEmail, map[string]string{
		"email":           prof.MainEmail,
		"conference_name": conf.Name,
	})
	return conf, nil
}

// UpdateConference applies the provided fields (zero values leave fields
// untouched) after an owner check. Lowering maxAttendees clamps the seats
// left so the seat invariant keeps holding.
func (s *Service) UpdateConference(ctx context.Context, userId, confKey string, input ConferenceInput) (*model.Conference, error) {
	confId, err := primitive.ObjectIDFromHex(confKey)
	if err != nil {
		return nil, errors.NotFound("no conference found with key: %v", confKey)
	}

	var updated *model.Conference
	txErr := s.store.InTransaction(ctx, func(ctx context.Context) error {
		conf, err := s.store.GetConference(ctx, confId)
		if err != nil {
			return err
		}
		if conf == nil {
			return errors.NotFound("no conference found with key: %v", confKey)
		}
		if conf.OrganizerId != userId {
			return errors.Forbidden("only the owner can update the conference")
		}

		if input.Name != "" {
			conf.Name = input.Name
		}
		if input.Description != "" {
			conf.Description = input.Description
		}
		if len(input.Topics) > 0 {
			conf.Topics = input.Topics
		}
		if input.City != "" {
			conf.City = input.City
		}
		if input.StartDate != "" {
			start, err := parseDate(input.StartDate)
			if err != nil {
				return errors.BadRequest("unacceptable start date: %v", err)
			}
			conf.StartDate = input.StartDate
			conf.Month = int(start.Month())
		}
		if input.EndDate != "" {
			if _, err := parseDate(input.EndDate); err != nil {
				return errors.BadRequest("unacceptable end date: %v", err)
			}
			conf.EndDate = input.EndDate
		}
		if input.MaxAttendees > 0 {
			booked := conf.MaxAttendees - conf.SeatsAvailable
			if input.MaxAttendees < booked {
				return errors.BadRequest("cannot assign %v as maximum attendees, %v seats already taken",
					input.MaxAttendees, booked)
			}
			conf.MaxAttendees = input.MaxAttendees
			conf.SeatsAvailable = input.MaxAttendees - booked
		}

		if err := s.store.PutConference(ctx, conf); err != nil {
			return err
		}
		updated = conf
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.queue.Enqueue(TaskRebuildAnnouncement, nil)
	return updated, nil
}

func (s *Service) GetConference(ctx context.Context, confKey string) (*ConferenceView, error) {
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

	views, err := s.withOrganizerNames(ctx, []model.Conference{*conf})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// QueryConferences runs client-supplied filter triples through the query
// engine.
func (s *Service) QueryConferences(ctx context.Context, filters []FilterSpec) ([]ConferenceView, error) {
	q, err := buildConferenceQuery(filters)
	if err != nil {
		return nil, err
	}

	confs, err := s.store.QueryConferences(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.withOrganizerNames(ctx, confs)
}

// ConferencesCreated lists conferences the user organizes.
func (s *Service) ConferencesCreated(ctx context.Context, userId string) ([]ConferenceView, error) {
	q := database.Query{Sort: []string{model.ConfFieldName}}.
		WithFilter(model.ConfFieldOrganizerId, database.OpEq, userId)
	confs, err := s.store.QueryConferences(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.withOrganizerNames(ctx, confs)
}

// ConferencesToAttend resolves the user's attendance list in order. Keys
// that no longer resolve are skipped.
func (s *Service) ConferencesToAttend(ctx context.Context, userId string) ([]ConferenceView, error) {
	prof, err := s.getOrCreateProfile(ctx, userId)
	if err != nil {
		return nil, err
	}

	resolved, err := s.store.GetConferencesByKeys(ctx, prof.ConferenceKeysToAttend)
	if err != nil {
		return nil, err
	}
	confs := []model.Conference{}
	for _, conf := range resolved {
		if conf != nil {
			confs = append(confs, *conf)
		}
	}
	return s.withOrganizerNames(ctx, confs)
}

// FilterPlayground demonstrates a fixed all-equality query.
func (s *Service) FilterPlayground(ctx context.Context) ([]ConferenceView, error) {
	q := database.Query{Sort: []string{model.ConfFieldName}}.
		WithFilter(model.ConfFieldCity, database.OpEq, "London").
		WithFilter(model.ConfFieldTopics, database.OpEq, "Medical Innovations").
		WithFilter(model.ConfFieldMonth, database.OpEq, 6)
	confs, err := s.store.QueryConferences(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.withOrganizerNames(ctx, confs)
}

func (s *Service) withOrganizerNames(ctx context.Context, confs []model.Conference) ([]ConferenceView, error) {
	names := map[string]string{}
	for _, conf := range confs {
		names[conf.OrganizerId] = conf.OrganizerId
	}
	for organizerId := range names {
		prof, err := s.store.GetProfile(ctx, organizerId)
		if err != nil {
			return nil, err
		}
		if prof != nil {
			names[organizerId] = prof.DisplayName
		}
	}

	views := make([]ConferenceView, len(confs))
	for i, conf := range confs {
		views[i] = ConferenceView{Conference: conf, OrganizerDisplayName: names[conf.OrganizerId]}
	}
	return views, nil
}
