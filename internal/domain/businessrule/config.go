// internal/domain/businessrule/config.go
package businessrule

import (
	"fmt"
)

// BusinessType identifies a business category with its own rule set
type BusinessType string

const (
	BusinessTypeRestaurant  BusinessType = "restaurant"
	BusinessTypeBookshop    BusinessType = "bookshop"
	BusinessTypeHardware    BusinessType = "hardware"
	BusinessTypeSupermarket BusinessType = "supermarket"
	BusinessTypePharmacy    BusinessType = "pharmacy"
	BusinessTypeElectronics BusinessType = "electronics"
	BusinessTypeClothing    BusinessType = "clothing"
	BusinessTypeCafe        BusinessType = "cafe"
	BusinessTypeRetail      BusinessType = "retail"
)

// OrderType identifies how an order is fulfilled
type OrderType string

const (
	OrderTypeDineIn     OrderType = "Dine in"
	OrderTypeTakeaway   OrderType = "Takeaway"
	OrderTypeDelivery   OrderType = "Delivery"
	OrderTypePickup     OrderType = "Pickup"
	OrderTypeInStore    OrderType = "In-store"
	OrderTypeOnline     OrderType = "Online"
	OrderTypeCurbside   OrderType = "Curbside"
	OrderTypeShipToHome OrderType = "Ship to home"
)

// CustomFieldType enumerates the supported custom field input types
type CustomFieldType string

const (
	FieldTypeText   CustomFieldType = "text"
	FieldTypeSelect CustomFieldType = "select"
	FieldTypeNumber CustomFieldType = "number"
	FieldTypeDate   CustomFieldType = "date"
)

// CustomField describes an extra per-order input a business collects
type CustomField struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Type        CustomFieldType `json:"type"`
	Required    bool            `json:"required"`
	Options     []string        `json:"options,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

// LocationOption is one selectable location (table, counter, pickup spot)
type LocationOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// BusinessConfig is the immutable rule set for one business type
type BusinessConfig struct {
	BusinessType        BusinessType     `json:"business_type"`
	Name                string           `json:"name"`
	OrderTypes          []OrderType      `json:"order_types"`
	RequiresLocation    bool             `json:"requires_location"`
	LocationLabel       string           `json:"location_label,omitempty"`
	Locations           []LocationOption `json:"locations,omitempty"`
	RequiresCustomer    bool             `json:"requires_customer"`
	ShowLoyaltyPoints   bool             `json:"show_loyalty_points"`
	DefaultDiscountRate float64          `json:"default_discount_rate"`
	TaxLabel            string           `json:"tax_label,omitempty"`
	CustomFields        []CustomField    `json:"custom_fields,omitempty"`
	PaymentButtonText   string           `json:"payment_button_text,omitempty"`
	ShowItemVariants    bool             `json:"show_item_variants"`
	ShowItemAdditions   bool             `json:"show_item_additions"`
}

// DefaultOrderType returns the first allowed order type
func (c *BusinessConfig) DefaultOrderType() OrderType {
	return c.OrderTypes[0]
}

// noLocationOrderTypes are exempt from the location requirement even
// when the business generally requires one
var noLocationOrderTypes = map[OrderType]bool{
	OrderTypeShipToHome: true,
	OrderTypeOnline:     true,
}

// IsOrderTypeAllowed reports whether the order type is valid under the config
func IsOrderTypeAllowed(cfg *BusinessConfig, orderType OrderType) bool {
	for _, t := range cfg.OrderTypes {
		if t == orderType {
			return true
		}
	}
	return false
}

// RequiresLocationFor reports whether a location must be selected for
// the given order type under the config
func RequiresLocationFor(cfg *BusinessConfig, orderType OrderType) bool {
	if !cfg.RequiresLocation {
		return false
	}
	return !noLocationOrderTypes[orderType]
}

// MissingRequiredFields returns the labels of required custom fields
// that have no value
func MissingRequiredFields(cfg *BusinessConfig, values map[string]string) []string {
	var missing []string
	for _, field := range cfg.CustomFields {
		if field.Required && values[field.ID] == "" {
			missing = append(missing, field.ID)
		}
	}
	return missing
}

// Registry holds the known business configurations. It is an explicit
// value handed to whoever needs it, never a process-wide singleton, so
// tests can run multiple registries side by side.
type Registry struct {
	configs map[BusinessType]*BusinessConfig
}

// NewRegistry creates a registry with the built-in business configurations
func NewRegistry() *Registry {
	configs := make(map[BusinessType]*BusinessConfig, len(builtinConfigs))
	for i := range builtinConfigs {
		cfg := builtinConfigs[i]
		configs[cfg.BusinessType] = &cfg
	}
	return &Registry{configs: configs}
}

// Get returns the configuration for a business type
func (r *Registry) Get(businessType BusinessType) (*BusinessConfig, error) {
	cfg, ok := r.configs[businessType]
	if !ok {
		return nil, fmt.Errorf("unknown business type: %s", businessType)
	}
	return cfg, nil
}

// Types returns all known business types
func (r *Registry) Types() []BusinessType {
	types := make([]BusinessType, 0, len(r.configs))
	for _, cfg := range builtinConfigs {
		if _, ok := r.configs[cfg.BusinessType]; ok {
			types = append(types, cfg.BusinessType)
		}
	}
	return types
}

// builtinConfigs defines the rule sets per business category
var builtinConfigs = []BusinessConfig{
	{
		BusinessType:     BusinessTypeRestaurant,
		Name:             "Restaurant",
		OrderTypes:       []OrderType{OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery},
		RequiresLocation: true,
		LocationLabel:    "Table location",
		Locations: []LocationOption{
			{ID: "table_1a", Label: "Table 1A"},
			{ID: "table_1b", Label: "Table 1B"},
			{ID: "table_2a", Label: "Table 2A"},
			{ID: "table_2b", Label: "Table 2B"},
			{ID: "table_3a", Label: "Table 3A"},
			{ID: "table_3b", Label: "Table 3B"},
			{ID: "table_4a", Label: "Table 4A"},
			{ID: "table_4b", Label: "Table 4B"},
			{ID: "table_5a", Label: "Table 5A"},
		},
		RequiresCustomer:    false,
		ShowLoyaltyPoints:   true,
		DefaultDiscountRate: 0.10,
		PaymentButtonText:   "Proceed payment",
		ShowItemVariants:    true,
		ShowItemAdditions:   true,
	},
	{
		BusinessType:        BusinessTypeBookshop,
		Name:                "Bookshop",
		OrderTypes:          []OrderType{OrderTypeInStore, OrderTypePickup, OrderTypeShipToHome},
		RequiresLocation:    false,
		RequiresCustomer:    true,
		ShowLoyaltyPoints:   true,
		DefaultDiscountRate: 0.05,
		CustomFields: []CustomField{
			{
				ID:          "gift_wrap",
				Label:       "Gift wrapping",
				Type:        FieldTypeSelect,
				Options:     []string{"None", "Standard", "Premium"},
				Placeholder: "Select gift wrap option",
			},
			{
				ID:          "special_instructions",
				Label:       "Special instructions",
				Type:        FieldTypeText,
				Placeholder: "Any special handling instructions",
			},
		},
		PaymentButtonText: "Complete purchase",
	},
	{
		BusinessType:     BusinessTypeHardware,
		Name:             "Hardware Store",
		OrderTypes:       []OrderType{OrderTypeInStore, OrderTypePickup, OrderTypeDelivery},
		RequiresLocation: true,
		LocationLabel:    "Pickup location",
		Locations: []LocationOption{
			{ID: "main_counter", Label: "Main Counter"},
			{ID: "lumber_yard", Label: "Lumber Yard"},
			{ID: "tool_rental", Label: "Tool Rental Center"},
			{ID: "garden_center", Label: "Garden Center"},
		},
		RequiresCustomer:    false,
		DefaultDiscountRate: 0,
		CustomFields: []CustomField{
			{
				ID:          "project_type",
				Label:       "Project type",
				Type:        FieldTypeSelect,
				Options:     []string{"Home Repair", "Construction", "DIY Project", "Professional Use"},
				Placeholder: "Select project type",
			},
		},
		PaymentButtonText: "Complete purchase",
		ShowItemVariants:  true,
	},
	{
		BusinessType:     BusinessTypeSupermarket,
		Name:             "Supermarket",
		OrderTypes:       []OrderType{OrderTypeInStore, OrderTypePickup, OrderTypeDelivery, OrderTypeCurbside},
		RequiresLocation: true,
		LocationLabel:    "Pickup/Delivery location",
		Locations: []LocationOption{
			{ID: "main_entrance", Label: "Main Entrance"},
			{ID: "grocery_pickup", Label: "Grocery Pickup Area"},
			{ID: "curbside_1", Label: "Curbside Spot 1"},
			{ID: "curbside_2", Label: "Curbside Spot 2"},
			{ID: "curbside_3", Label: "Curbside Spot 3"},
		},
		RequiresCustomer:    true,
		ShowLoyaltyPoints:   true,
		DefaultDiscountRate: 0,
		CustomFields: []CustomField{
			{
				ID:          "delivery_time",
				Label:       "Preferred delivery time",
				Type:        FieldTypeSelect,
				Options:     []string{"ASAP", "Within 2 hours", "Today evening", "Tomorrow morning", "Tomorrow evening"},
				Placeholder: "Select delivery time",
			},
			{
				ID:          "special_requests",
				Label:       "Special requests",
				Type:        FieldTypeText,
				Placeholder: "Substitutions, ripeness preferences, etc.",
			},
		},
		PaymentButtonText: "Place order",
	},
	{
		BusinessType:        BusinessTypePharmacy,
		Name:                "Pharmacy",
		OrderTypes:          []OrderType{OrderTypeInStore, OrderTypePickup},
		RequiresLocation:    false,
		RequiresCustomer:    true,
		DefaultDiscountRate: 0,
		CustomFields: []CustomField{
			{
				ID:          "prescription_number",
				Label:       "Prescription number",
				Type:        FieldTypeText,
				Placeholder: "Enter prescription number if applicable",
			},
			{
				ID:          "insurance_info",
				Label:       "Insurance information",
				Type:        FieldTypeText,
				Placeholder: "Insurance details",
			},
		},
		PaymentButtonText: "Complete purchase",
	},
	{
		BusinessType:        BusinessTypeElectronics,
		Name:                "Electronics Store",
		OrderTypes:          []OrderType{OrderTypeInStore, OrderTypePickup, OrderTypeShipToHome},
		RequiresLocation:    false,
		RequiresCustomer:    true,
		ShowLoyaltyPoints:   true,
		DefaultDiscountRate: 0.02,
		CustomFields: []CustomField{
			{
				ID:          "warranty_plan",
				Label:       "Extended warranty",
				Type:        FieldTypeSelect,
				Options:     []string{"None", "1 Year Extended", "2 Year Extended", "3 Year Extended"},
				Placeholder: "Select warranty option",
			},
			{
				ID:          "installation_service",
				Label:       "Installation service",
				Type:        FieldTypeSelect,
				Options:     []string{"None", "Basic Setup", "Professional Installation"},
				Placeholder: "Select installation option",
			},
		},
		PaymentButtonText: "Complete purchase",
		ShowItemVariants:  true,
		ShowItemAdditions: true,
	},
	{
		BusinessType:        BusinessTypeClothing,
		Name:                "Clothing Store",
		OrderTypes:          []OrderType{OrderTypeInStore, OrderTypeShipToHome, OrderTypePickup},
		RequiresLocation:    false,
		RequiresCustomer:    false,
		ShowLoyaltyPoints:   true,
		DefaultDiscountRate: 0.15,
		CustomFields: []CustomField{
			{
				ID:          "gift_receipt",
				Label:       "Include gift receipt",
				Type:        FieldTypeSelect,
				Options:     []string{"No", "Yes"},
				Placeholder: "Include gift receipt?",
			},
		},
		PaymentButtonText: "Complete purchase",
		ShowItemVariants:  true,
	},
	{
		BusinessType:     BusinessTypeCafe,
		Name:             "Cafe",
		OrderTypes:       []OrderType{OrderTypeDineIn, OrderTypeTakeaway, OrderTypePickup},
		RequiresLocation: true,
		LocationLabel:    "Table or pickup area",
		Locations: []LocationOption{
			{ID: "table_1", Label: "Table 1"},
			{ID: "table_2", Label: "Table 2"},
			{ID: "table_3", Label: "Table 3"},
			{ID: "counter_pickup", Label: "Counter Pickup"},
			{ID: "drive_through", Label: "Drive Through"},
		},
		RequiresCustomer:    false,
		ShowLoyaltyPoints:   true,
		DefaultDiscountRate: 0,
		CustomFields: []CustomField{
			{
				ID:          "customer_name",
				Label:       "Name for order",
				Type:        FieldTypeText,
				Required:    true,
				Placeholder: "Enter name for order",
			},
		},
		PaymentButtonText: "Place order",
		ShowItemVariants:  true,
		ShowItemAdditions: true,
	},
	{
		BusinessType:        BusinessTypeRetail,
		Name:                "Retail Store",
		OrderTypes:          []OrderType{OrderTypeInStore, OrderTypePickup, OrderTypeShipToHome},
		RequiresLocation:    false,
		RequiresCustomer:    false,
		ShowLoyaltyPoints:   true,
		DefaultDiscountRate: 0.05,
		PaymentButtonText:   "Complete purchase",
	},
}
