package core

import "github.com/pkg/errors"

func errorsCause(err error) error {
	if err == nil {
		return nil
	}
	return errors.Cause(err)
}
