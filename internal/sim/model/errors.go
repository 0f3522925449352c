package model

import "errors"

var (
	ErrDuplicateMap     = errors.New("map id already exists")
	ErrDuplicateOffice  = errors.New("office id already exists")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrNoRoads          = errors.New("map has no roads")
)
