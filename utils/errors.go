package utils

import "fmt"

// RunAndWrapOnError runs runnable and, if it fails, wraps its error together with existingErr.
func RunAndWrapOnError(runnable func() error, existingErr error) error {
	if runnable == nil {
		return existingErr
	}

	if err := runnable(); err != nil {
		if existingErr == nil {
			return err
		}
		return fmt.Errorf(`failed to run "%w" while handling error "%w"`, err, existingErr)
	}

	return existingErr
}
