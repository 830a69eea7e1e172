package validation

import (
	"fmt"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
)

const deliveryDateLayout = "2006-01-02"

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for SubscriptionRequest to ensure
	// the delivery date parses and is not already in the past.
	v.RegisterStructValidation(subscriptionStructValidation, SubscriptionRequest{})

	return v
}

// subscriptionStructValidation verifies the delivery date is a parseable
// future (or today) date.
func subscriptionStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(SubscriptionRequest)

	d, err := time.Parse(deliveryDateLayout, req.DeliveryDate)
	if err != nil {
		sl.ReportError(req.DeliveryDate, "delivery_date", "DeliveryDate", "delivery_date_format", fmt.Sprintf("want %s", deliveryDateLayout))
		return
	}
	today := time.Now().Truncate(24 * time.Hour)
	if d.Before(today) {
		sl.ReportError(req.DeliveryDate, "delivery_date", "DeliveryDate", "delivery_date_past", req.DeliveryDate)
	}
}
