package tracking

import "errors"

// notConfigurableError signals that the root layout has neither settings
// nor a configurator while commands are pending.
type notConfigurableError struct{ layout string }

func (e notConfigurableError) Error() string {
	msg := "there are pending commands for a tracker that isn't initialized and cannot be initialized automatically; " +
		"register Settings or a Configure callback on the root layout"
	if e.layout != "" {
		msg += " (root layout: " + e.layout + ")"
	}
	return msg
}

// IsNotConfigurable reports whether err is a missing-configuration error.
func IsNotConfigurable(err error) bool {
	var e notConfigurableError
	return errors.As(err, &e)
}

// missingTrackingIDError signals a resolved configuration without tracking id.
type missingTrackingIDError struct{}

func (missingTrackingIDError) Error() string { return "no tracking id has been defined" }

// IsMissingTrackingID reports whether err is an empty tracking id error.
func IsMissingTrackingID(err error) bool {
	var e missingTrackingIDError
	return errors.As(err, &e)
}

// emptyChainError signals initialization without an active route.
type emptyChainError struct{}

func (emptyChainError) Error() string { return "cannot initialize when no router target is active" }

// IsEmptyChain reports whether err is an empty layout chain error.
func IsEmptyChain(err error) bool {
	var e emptyChainError
	return errors.As(err, &e)
}

// IsConfigurationError reports whether err is any of the fatal
// initialization errors. None of them is retried.
func IsConfigurationError(err error) bool {
	return IsNotConfigurable(err) || IsMissingTrackingID(err) || IsEmptyChain(err)
}
