package service

import (
	"strconv"

	"conference-central/database"
	"conference-central/errors"
	"conference-central/model"
)

// FilterSpec is one client-supplied filter triple with symbolic field and
// operator names.
type FilterSpec struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

var operators = map[string]string{
	"EQ":   database.OpEq,
	"GT":   database.OpGt,
	"GTEQ": database.OpGtEq,
	"LT":   database.OpLt,
	"LTEQ": database.OpLtEq,
	"NE":   database.OpNotEq,
}

var conferenceFields = map[string]string{
	"CITY":          model.ConfFieldCity,
	"TOPIC":         model.ConfFieldTopics,
	"MONTH":         model.ConfFieldMonth,
	"MAX_ATTENDEES": model.ConfFieldMaxAttendees,
}

var intConferenceFields = map[string]bool{
	model.ConfFieldMonth:        true,
	model.ConfFieldMaxAttendees: true,
}

// buildConferenceQuery translates filter triples into a store query. At most
// one distinct field may carry a non-equality operator; when one does, it
// becomes the primary sort field, with name as the tie break.
func buildConferenceQuery(specs []FilterSpec) (database.Query, error) {
	q := database.Query{}
	inequalityField := ""

	for _, spec := range specs {
		field, fieldKnown := conferenceFields[spec.Field]
		op, opKnown := operators[spec.Operator]
		if !fieldKnown || !opKnown {
			return database.Query{}, errors.BadRequest("Filter contains invalid field or operator.")
		}

		if op != database.OpEq {
			if inequalityField != "" && inequalityField != field {
				return database.Query{}, errors.BadRequest("Inequality filter is allowed on only one field.")
			}
			inequalityField = field
		}

		var value interface{} = spec.Value
		if intConferenceFields[field] {
			parsed, err := strconv.Atoi(spec.Value)
			if err != nil {
				return database.Query{}, errors.BadRequest("Filter value for %v must be a number.", spec.Field)
			}
			value = parsed
		}
		q = q.WithFilter(field, op, value)
	}

	if inequalityField != "" {
		q.Sort = []string{inequalityField, model.ConfFieldName}
	} else {
		q.Sort = []string{model.ConfFieldName}
	}
	return q, nil
}
