package board

import "errors"

var (
	ErrAlreadyPlaced = errors.New("instrument already on the table")
	ErrNotPlaced     = errors.New("instrument is not on the table")
)
