package handler

import "github.com/go-playground/validator/v10"

// Level ranges and required fields are enforced here, at the delivery tier.
// The usecase layer stays permissive on purpose.
var validate = validator.New(validator.WithRequiredStructEnabled())
