package entities

// SKUID represents a unique stock keeping unit identifier
type SKUID string

// Quantity represents an integer quantity value for discrete manufacturing units
type Quantity int64
