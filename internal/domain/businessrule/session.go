// internal/domain/businessrule/session.go
package businessrule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// selectionTTL bounds how long an idle terminal keeps its selections
const selectionTTL = 24 * time.Hour

// Selection is the per-terminal rule state: which business type is
// active and what has been chosen under it
type Selection struct {
	BusinessType      BusinessType      `json:"business_type"`
	OrderType         OrderType         `json:"order_type"`
	LocationID        string            `json:"location_id,omitempty"`
	CustomFieldValues map[string]string `json:"custom_field_values,omitempty"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ApplyBusinessType switches the selection to a new business type.
// Order type resets to the config's first allowed type; location and
// custom field values are cleared because they are config-dependent.
func (s *Selection) ApplyBusinessType(cfg *BusinessConfig) {
	s.BusinessType = cfg.BusinessType
	s.OrderType = cfg.DefaultOrderType()
	s.LocationID = ""
	s.CustomFieldValues = map[string]string{}
	s.UpdatedAt = time.Now().UTC()
}

// SessionStore persists per-terminal selections in Redis
type SessionStore struct {
	redisClient *redis.Client
	registry    *Registry
	defaultType BusinessType
}

// NewSessionStore creates a new session store
func NewSessionStore(redisClient *redis.Client, registry *Registry, defaultType BusinessType) *SessionStore {
	return &SessionStore{
		redisClient: redisClient,
		registry:    registry,
		defaultType: defaultType,
	}
}

// Get retrieves the selection for a terminal, initializing it from the
// default business type when none exists yet
func (s *SessionStore) Get(ctx context.Context, terminalID string) (*Selection, error) {
	if terminalID == "" {
		return nil, fmt.Errorf("terminal ID required")
	}

	data, err := s.redisClient.Get(ctx, s.key(terminalID)).Result()
	if err == redis.Nil {
		cfg, err := s.registry.Get(s.defaultType)
		if err != nil {
			return nil, err
		}
		sel := &Selection{}
		sel.ApplyBusinessType(cfg)
		return sel, nil
	} else if err != nil {
		return nil, err
	}

	var sel Selection
	if err := json.Unmarshal([]byte(data), &sel); err != nil {
		return nil, err
	}
	if sel.CustomFieldValues == nil {
		sel.CustomFieldValues = map[string]string{}
	}

	return &sel, nil
}

// ActiveConfig returns the business configuration the terminal operates under
func (s *SessionStore) ActiveConfig(ctx context.Context, terminalID string) (*BusinessConfig, *Selection, error) {
	sel, err := s.Get(ctx, terminalID)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := s.registry.Get(sel.BusinessType)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sel, nil
}

// SelectBusinessType switches the terminal to a new business type,
// resetting the dependent selections
func (s *SessionStore) SelectBusinessType(ctx context.Context, terminalID string, businessType BusinessType) (*Selection, error) {
	cfg, err := s.registry.Get(businessType)
	if err != nil {
		return nil, err
	}

	sel, err := s.Get(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	sel.ApplyBusinessType(cfg)
	if err := s.save(ctx, terminalID, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// SetOrderType selects an order type allowed by the active config
func (s *SessionStore) SetOrderType(ctx context.Context, terminalID string, orderType OrderType) (*Selection, error) {
	cfg, sel, err := s.ActiveConfig(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	if !IsOrderTypeAllowed(cfg, orderType) {
		return nil, fmt.Errorf("order type %q not allowed for %s", orderType, cfg.BusinessType)
	}

	sel.OrderType = orderType
	// Location only makes sense where the order type requires one
	if !RequiresLocationFor(cfg, orderType) {
		sel.LocationID = ""
	}
	sel.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, terminalID, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// SetLocation selects one of the active config's locations
func (s *SessionStore) SetLocation(ctx context.Context, terminalID, locationID string) (*Selection, error) {
	cfg, sel, err := s.ActiveConfig(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, loc := range cfg.Locations {
		if loc.ID == locationID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown location %q for %s", locationID, cfg.BusinessType)
	}

	sel.LocationID = locationID
	sel.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, terminalID, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// SetCustomFieldValue records a custom field value for the terminal
func (s *SessionStore) SetCustomFieldValue(ctx context.Context, terminalID, fieldID, value string) (*Selection, error) {
	cfg, sel, err := s.ActiveConfig(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	var field *CustomField
	for i := range cfg.CustomFields {
		if cfg.CustomFields[i].ID == fieldID {
			field = &cfg.CustomFields[i]
			break
		}
	}
	if field == nil {
		return nil, fmt.Errorf("unknown custom field %q for %s", fieldID, cfg.BusinessType)
	}

	if field.Type == FieldTypeSelect && value != "" {
		valid := false
		for _, opt := range field.Options {
			if opt == value {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("invalid option %q for field %q", value, fieldID)
		}
	}

	if sel.CustomFieldValues == nil {
		sel.CustomFieldValues = map[string]string{}
	}
	if value == "" {
		delete(sel.CustomFieldValues, fieldID)
	} else {
		sel.CustomFieldValues[fieldID] = value
	}
	sel.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, terminalID, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// ClearSelections resets the dependent selections after an order is
// finalized, keeping the active business type
func (s *SessionStore) ClearSelections(ctx context.Context, terminalID string) error {
	cfg, sel, err := s.ActiveConfig(ctx, terminalID)
	if err != nil {
		return err
	}
	sel.ApplyBusinessType(cfg)
	return s.save(ctx, terminalID, sel)
}

func (s *SessionStore) key(terminalID string) string {
	return fmt.Sprintf("pos:rules:%s", terminalID)
}

func (s *SessionStore) save(ctx context.Context, terminalID string, sel *Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, s.key(terminalID), data, selectionTTL).Err()
}
