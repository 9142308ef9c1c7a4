package booking

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/renjoshini/hereforyou/models"

	"github.com/go-playground/validator/v10"
)

var indianPhonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// RegisterValidations adds the booking-specific tags (indianphone, hhmm,
// servicecategory) to v. It is also applied to gin's binding engine.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("indianphone", func(fl validator.FieldLevel) bool {
		return indianPhonePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, _, ok := parseHHMM(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	return v.RegisterValidation("servicecategory", func(fl validator.FieldLevel) bool {
		return models.ServiceCategory(fl.Field().String()).Valid()
	})
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// validateStruct runs struct tags and converts failures into a
// ValidationError keyed by JSON field path.
func (s *DefaultBookingService) validateStruct(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return validationError(err.Error(), nil)
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldPath(fe.Namespace())] = describe(fe)
	}
	return validationError("validation failed", details)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "indianphone":
		return "must be a valid 10-digit Indian mobile number"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "servicecategory":
		return "is not a supported service"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}

// validateCreate checks the create input and returns the normalised schedule.
func (s *DefaultBookingService) validateCreate(input models.CreateBookingInput) (models.Schedule, error) {
	if err := s.validateStruct(input); err != nil {
		return models.Schedule{}, err
	}

	parsed, err := parseScheduleDate(input.Schedule.Date)
	if err != nil {
		return models.Schedule{}, validationError("invalid schedule", map[string]string{"schedule.date": err.Error()})
	}

	slot := input.Schedule.TimeSlot
	date, start := parsed.inLocation(s.Policy.Location, slot.Start)
	slot.Start = start
	if slot.Start != "" && slot.End != "" && slot.End <= slot.Start {
		return models.Schedule{}, validationError("invalid schedule", map[string]string{
			"schedule.timeSlot.end": "must be after start",
		})
	}

	return models.Schedule{
		Date:       date,
		TimeSlot:   slot,
		IsFlexible: input.Schedule.IsFlexible,
	}, nil
}

func validCoordinates(lat, lng float64) error {
	details := map[string]string{}
	if lat < -90 || lat > 90 {
		details["latitude"] = "must be between -90 and 90"
	}
	if lng < -180 || lng > 180 {
		details["longitude"] = "must be between -180 and 180"
	}
	if len(details) > 0 {
		return validationError("invalid coordinates", details)
	}
	return nil
}
