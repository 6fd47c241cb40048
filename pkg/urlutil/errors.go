package urlutil

import "errors"

var ErrInvalidURL = errors.New("invalid URL")
