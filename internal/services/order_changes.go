package services

import (
	"bytes"
	"encoding/json"
	"sort"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/policy"
)

// OrderChanges is a parsed order update request. Fields lists every key the client sent,
// including ones the policy will refuse.
type OrderChanges struct {
	Fields []string

	Status *models.OrderStatus

	// DeliveryCrewSet is true when delivery_crew was sent; a nil DeliveryCrewID then unassigns.
	DeliveryCrewSet bool
	DeliveryCrewID  *string

	invalid error
}

// Err reports the first malformed value found while parsing.
func (c OrderChanges) Err() error {
	return c.invalid
}

// ParseOrderChanges decodes a JSON object of order fields. Values of immutable or unknown
// keys are not decoded; their names are kept so the policy can reject them.
//
// A malformed value does not stop parsing: every key is still listed in Fields and the
// returned error is also kept in Err, so the caller can authorize the request before
// reporting it.
func ParseOrderChanges(body []byte) (OrderChanges, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		invalid := apperr.Validation("request body must be a JSON object")
		return OrderChanges{invalid: invalid}, invalid
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	changes := OrderChanges{Fields: keys}
	for _, key := range keys {
		var err error
		switch key {
		case policy.FieldStatus:
			err = changes.parseStatus(raw[key])
		case policy.FieldDeliveryCrew:
			err = changes.parseDeliveryCrew(raw[key])
		}
		if err != nil && changes.invalid == nil {
			changes.invalid = err
		}
	}
	return changes, changes.invalid
}

func (c *OrderChanges) parseStatus(value json.RawMessage) error {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return apperr.Validation("status must be a string")
	}
	status, err := models.ParseOrderStatus(s)
	if err != nil {
		return apperr.Validation("%s", err.Error())
	}
	c.Status = &status
	return nil
}

func (c *OrderChanges) parseDeliveryCrew(value json.RawMessage) error {
	c.DeliveryCrewSet = true
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return nil
	}
	var id string
	if err := json.Unmarshal(value, &id); err != nil || id == "" {
		return apperr.Validation("delivery_crew must be a user id or null")
	}
	c.DeliveryCrewID = &id
	return nil
}

// columns maps the changes to order table columns.
func (c OrderChanges) columns() map[string]interface{} {
	cols := make(map[string]interface{}, 2)
	if c.Status != nil {
		cols["status"] = *c.Status
	}
	if c.DeliveryCrewSet {
		if c.DeliveryCrewID == nil {
			cols["delivery_crew_id"] = nil
		} else {
			cols["delivery_crew_id"] = *c.DeliveryCrewID
		}
	}
	return cols
}
