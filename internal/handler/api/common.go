package api

import "lastbite/internal/pkg/errs"

var errInvalidQuery = errs.New("invalid query parameter")
