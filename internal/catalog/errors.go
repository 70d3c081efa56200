package catalog

import "errors"

var (
	ErrStoreNotFound      = errors.New("store not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available right now")
	ErrInvalidSelection   = errors.New("invalid product selection")
)
