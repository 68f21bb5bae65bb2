package content

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate enforces the front-matter contract: title and date are always
// present, date is a real calendar date, the slug is URL-safe.
func (p Post) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error("title is required")),
		validation.Field(&p.Date,
			validation.Required.Error("date is required"),
			validation.By(validDate),
		),
		validation.Field(&p.Slug,
			validation.Required.Error("slug is required"),
			validation.Match(slugRe).Error("slug must be lowercase letters, digits and hyphens"),
		),
		validation.Field(&p.Kind, validation.In(KindPost, KindPage).Error("kind must be post or page")),
	)
}

func validDate(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("date %q is not a valid YYYY-MM-DD date", s)
	}
	return nil
}
