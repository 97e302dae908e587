package providers

import (
	"errors"

	"github.com/gookit/validate"

	"exportlens/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks every config section against its struct tags.
func (cv *CnfValidator) Validate() error {
	sections := []interface{}{
		&cv.conf.WebServer,
		&cv.conf.Logger,
		&cv.conf.Upload,
		&cv.conf.Session,
	}
	for _, s := range sections {
		v := validate.Struct(s)
		if !v.Validate() {
			return errors.New(v.Errors.String())
		}
	}
	if cv.conf.Aggregation.TopN < 0 || cv.conf.Aggregation.PreviewRows < 0 {
		return errors.New("aggregation: topN and previewRows must not be negative")
	}
	return nil
}
